package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-server/internal/rng"
)

type sequence []int

func (s *sequence) Intn(n int) int {
	v := (*s)[0] % n
	*s = (*s)[1:]
	return v
}

func TestRandomName(t *testing.T) {
	assert.Equal(t, "Fast Dog", RandomName(&sequence{0, 0}))
	assert.Equal(t, "Quick Mouse", RandomName(&sequence{2, 2}))

	name := RandomName(rng.Crypto{})
	parts := strings.Split(name, " ")
	assert.Len(t, parts, 2)
	assert.Contains(t, adjectives, parts[0])
	assert.Contains(t, animals, parts[1])

	assert.Equal(t, RandomName(rng.NewSeeded(3)), RandomName(rng.NewSeeded(3)))
}
