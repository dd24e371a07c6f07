// Package golden compares values against JSON files kept in testdata
package golden

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Update rewrites every golden file instead of comparing against it
var Update = os.Getenv("HOLDEM_UPDATE_GOLDEN") != ""

// Assert compares obj, encoded as indented JSON, against testdata/<name>.json
// A missing file is written and the assertion passes.
func Assert(t *testing.T, name string, obj interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()

	filename := filepath.Join("testdata", name+".json")
	objJSON, err := json.MarshalIndent(obj, "", "  ")
	require.NoError(t, err)

	expects, err := os.ReadFile(filename)
	if Update || os.IsNotExist(err) {
		write(t, filename, objJSON)
		return true
	}
	require.NoError(t, err)

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("golden file %s", filename)
		return false
	}

	return true
}

func write(t *testing.T, filename string, b []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing golden file")
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0o755))
	require.NoError(t, os.WriteFile(filename, append(b, '\n'), 0o644))
}
