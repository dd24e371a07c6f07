package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"holdem-server/internal/rng"
	"holdem-server/pkg/card"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/rank"
)

type spot struct {
	hole       string
	community  string
	pot        int
	currentBet int
	bet        int
	stack      int
}

// session returns a heads-up session where "ai" is to act against "villain", who has bet the current bet
func (s spot) session(t *testing.T) *holdem.Session {
	t.Helper()

	community := card.Cards{}
	if s.community != "" {
		community = card.MustParseCards(s.community)
	}

	street := holdem.Preflop
	switch len(community) {
	case 3:
		street = holdem.Flop
	case 4:
		street = holdem.Turn
	case 5:
		street = holdem.River
	}

	stack := s.stack
	if stack == 0 {
		stack = 1000
	}

	hole := card.MustParseCards(s.hole)
	require.Len(t, hole, 2)

	return &holdem.Session{
		Players:         []string{"ai", "villain"},
		AllParticipants: []string{"ai", "villain"},
		HoleCards: map[string]card.Cards{
			"ai":      hole,
			"villain": {},
		},
		Community:     community,
		Stacks:        map[string]int{"ai": stack, "villain": 1000},
		BetsThisRound: map[string]int{"ai": s.bet, "villain": s.currentBet},
		Contributed:   map[string]int{},
		CurrentBet:    s.currentBet,
		Pot:           s.pot,
		Street:        street,
		ActionLog:     map[string][]holdem.Action{},
	}
}

func scripted(category rank.Category) rank.Oracle {
	return rank.OracleFunc(func(cards card.Cards) (rank.Strength, error) {
		return rank.Strength{Category: category, Value: int(category)}, nil
	})
}

// countingSource records how many times a random number was drawn
type countingSource struct {
	rng.Source
	calls int
}

func (c *countingSource) Float64() float64 {
	c.calls++
	return c.Source.Float64()
}
