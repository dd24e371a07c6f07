// Package rank compares poker hands
//
// An Oracle maps a set of 2-7 cards to a Strength. Strengths are totally ordered: a higher Value is a
// stronger hand. Values are only comparable between hands made from the same number of cards, which is
// always the case at showdown (two hole cards plus the same board).
package rank

import (
	"errors"
	"fmt"

	"holdem-server/pkg/card"
)

// ErrInvalidHand is returned when the cards cannot be evaluated
var ErrInvalidHand = errors.New("invalid hand")

// Category is the class of a poker hand, i.e., "Two Pair"
type Category int

// category constants, ordered from weakest to strongest
const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = map[Category]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes the category from its name
func (c *Category) UnmarshalText(b []byte) error {
	for cat, name := range categoryNames {
		if name == string(b) {
			*c = cat
			return nil
		}
	}

	return fmt.Errorf("unknown category: %s", string(b))
}

// Strength is the comparable value of a hand
type Strength struct {
	Category Category `json:"category"`
	Value    int      `json:"value"`
}

// Compare returns -1, 0, or 1 if s is weaker, equal, or stronger than o
func (s Strength) Compare(o Strength) int {
	switch {
	case s.Value < o.Value:
		return -1
	case s.Value > o.Value:
		return 1
	}

	return 0
}

// Oracle evaluates the strength of a set of cards
type Oracle interface {
	Strength(cards card.Cards) (Strength, error)
}

// OracleFunc adapts a function to an Oracle
type OracleFunc func(cards card.Cards) (Strength, error)

// Strength calls f(cards)
func (f OracleFunc) Strength(cards card.Cards) (Strength, error) {
	return f(cards)
}

// Hand is an evaluated hand belonging to a participant
type Hand struct {
	ID       string     `json:"id"`
	Cards    card.Cards `json:"cards"`
	Strength Strength   `json:"strength"`
}

// Evaluate returns the evaluated hand for the participant
func Evaluate(o Oracle, id string, cards card.Cards) (Hand, error) {
	s, err := o.Strength(cards)
	if err != nil {
		return Hand{}, fmt.Errorf("evaluate %s: %w", id, err)
	}

	return Hand{
		ID:       id,
		Cards:    cards,
		Strength: s,
	}, nil
}

// Winners returns every hand that achieves the maximal strength
// Ties are preserved in the order the hands were provided
func Winners(hands []Hand) []Hand {
	wm := NewWinManager()
	for _, h := range hands {
		wm.AddHand(h)
	}

	tiers := wm.GetSortedTiers()
	if len(tiers) == 0 {
		return nil
	}

	return tiers[0]
}

func validate(cards card.Cards) error {
	if len(cards) < 2 || len(cards) > 7 {
		return fmt.Errorf("%w: expected 2-7 cards, got %d", ErrInvalidHand, len(cards))
	}

	seen := make(map[card.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: %w", ErrInvalidHand, card.ErrInvalidCard)
		}

		if seen[c] {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}

		seen[c] = true
	}

	return nil
}
