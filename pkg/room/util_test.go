package room

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"holdem-server/internal/rng"
	"holdem-server/pkg/ai"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/rank"
	"holdem-server/pkg/store"
)

const thinkDelay = time.Second

type fixture struct {
	pitBoss *PitBoss
	store   *store.Memory
	clock   *quartz.Mock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	f := &fixture{
		store: store.NewMemory(),
		clock: quartz.NewMock(t),
	}

	f.pitBoss = NewPitBoss(Services{
		Store:         f.store,
		Oracle:        rank.Treys{},
		Actor:         ai.New(rank.Treys{}, rng.Fixed(0.99)),
		Clock:         f.clock,
		Rand:          rng.NewSeeded(1),
		Logger:        logger,
		ThinkDelay:    thinkDelay,
		MaxSeats:      4,
		StartingStack: 1000,
	})

	t.Cleanup(f.pitBoss.EndShift)
	return f
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// receive returns the next message with the key, skipping others
func receive(t *testing.T, c *Client, key string) *Response {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			res, ok := msg.(*Response)
			require.True(t, ok)
			if res.Key == key {
				return res
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for message", key)
			return nil
		}
	}
}

func automated(snap *holdem.Snapshot) string {
	for _, p := range snap.Participants {
		if p.Tier != "" {
			return p.ID
		}
	}

	return ""
}
