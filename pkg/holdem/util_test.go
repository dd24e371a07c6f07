package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/pkg/card"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/rank"
)

// stackDeck returns a deck that deals the hole cards to each participant and the board in order
// Burn cards are taken from the cards not otherwise used.
func stackDeck(t *testing.T, board string, holes ...string) *deck.Deck {
	t.Helper()

	used := make(map[card.Card]bool)
	parsedHoles := make([]card.Cards, len(holes))
	for i, h := range holes {
		parsedHoles[i] = card.MustParseCards(h)
		require.Len(t, parsedHoles[i], 2)
		for _, c := range parsedHoles[i] {
			used[c] = true
		}
	}

	parsedBoard := card.MustParseCards(board)
	require.Len(t, parsedBoard, 5)
	for _, c := range parsedBoard {
		used[c] = true
	}

	spare := make(card.Cards, 0, card.NumCards)
	for c := card.Card(0); c < card.NumCards; c++ {
		if !used[c] {
			spare = append(spare, c)
		}
	}

	cards := make(card.Cards, 0, card.NumCards)
	for pass := 0; pass < 2; pass++ {
		for _, h := range parsedHoles {
			cards = append(cards, h[pass])
		}
	}

	cards = append(cards, spare[0], parsedBoard[0], parsedBoard[1], parsedBoard[2])
	cards = append(cards, spare[1], parsedBoard[3])
	cards = append(cards, spare[2], parsedBoard[4])
	cards = append(cards, spare[3:]...)

	d, err := deck.NewStacked(cards)
	require.NoError(t, err)
	return d
}

func ids(n int) []string {
	s := make([]string, n)
	for i := range s {
		s[i] = string(rune('a' + i))
	}

	return s
}

// newSession deals a hand to participants a, b, c, ... with the given stacks
func newSession(t *testing.T, d *deck.Deck, stacks ...int) *Session {
	t.Helper()

	participants := ids(len(stacks))
	stackMap := make(map[string]int, len(stacks))
	for i, id := range participants {
		stackMap[id] = stacks[i]
	}

	if d == nil {
		d = deck.NewShuffled(1)
	}

	s, err := NewHand(Options{
		TableID:      "table",
		HandID:       "hand",
		Participants: participants,
		Stacks:       stackMap,
		Button:       -1,
		Deck:         d,
	})
	require.NoError(t, err)
	return s
}

func mustApply(t *testing.T, s *Session, participant string, a Action) (*Session, *Result) {
	t.Helper()

	next, result, err := Apply(s, rank.Treys{}, participant, a)
	require.NoError(t, err, "%s: %s", participant, a)
	require.NotNil(t, next)
	assertConserved(t, next)
	return next, result
}

func assertRejected(t *testing.T, s *Session, participant string, a Action, expected error) {
	t.Helper()

	before := s.Clone()
	next, result, err := Apply(s, rank.Treys{}, participant, a)
	assert.ErrorIs(t, err, expected)
	assert.Nil(t, next)
	assert.Nil(t, result)
	assert.Equal(t, before, s, "session must be unchanged")
}

func assertConserved(t *testing.T, s *Session) {
	t.Helper()
	assert.NoError(t, s.Validate())
}

// checkDown checks every remaining street until the hand is over
func checkDown(t *testing.T, s *Session) *Session {
	t.Helper()

	for i := 0; !s.IsOver(); i++ {
		require.Less(t, i, 100, "hand did not finish")
		s, _ = mustApply(t, s, s.Actor(), CheckAction())
	}

	return s
}

func failingOracle(t *testing.T) rank.Oracle {
	return rank.OracleFunc(func(cards card.Cards) (rank.Strength, error) {
		t.Error("oracle must not be called")
		return rank.Strength{}, nil
	})
}
