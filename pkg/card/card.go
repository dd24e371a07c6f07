package card

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a card identifier is outside of 0-51
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit
type Suit int

// suit constants
// The order is load-bearing: suit = id / 13
const (
	Hearts Suit = iota
	Spades
	Clubs
	Diamonds
)

// rank constants
// The order is load-bearing: rank = id mod 13
const (
	Two = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumCards is the number of cards in a standard deck
const NumCards = 52

const ranks = "23456789TJQKA"
const suits = "hscd"

// Card is a card identifier from 0-51
type Card int

// New returns the card for the rank (0=Two ... 12=Ace) and suit
func New(rank int, suit Suit) (Card, error) {
	if rank < Two || rank > Ace || suit < Hearts || suit > Diamonds {
		return 0, fmt.Errorf("%w: rank %d, suit %d", ErrInvalidCard, rank, suit)
	}

	return Card(int(suit)*13 + rank), nil
}

// Rank returns the rank of the card, 0 (Two) through 12 (Ace)
func (c Card) Rank() int {
	return int(c) % 13
}

// Suit returns the suit of the card
func (c Card) Suit() Suit {
	return Suit(int(c) / 13)
}

// Valid returns true if the identifier is in range
func (c Card) Valid() bool {
	return c >= 0 && c < NumCards
}

// String returns a two-character representation, i.e., "Ah" or "Td"
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}

	return string([]byte{ranks[c.Rank()], suits[c.Suit()]})
}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	}

	return ""
}

// Parse returns a card from the two-character representation
func Parse(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rank := strings.IndexByte(ranks, strings.ToUpper(s[:1])[0])
	suit := strings.IndexByte(suits, strings.ToLower(s[1:])[0])
	if rank < 0 || suit < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	return New(rank, Suit(suit))
}

// MustParse is like Parse, but panics on an error
// Intended for tests and constants
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

// Cards is an ordered collection of cards
type Cards []Card

// ParseCards parses a comma or space separated list of cards
func ParseCards(s string) (Cards, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})

	cards := make(Cards, len(fields))
	for i, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}

		cards[i] = c
	}

	return cards, nil
}

// MustParseCards is like ParseCards, but panics on an error
func MustParseCards(s string) Cards {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}

	return cards
}

func (c Cards) String() string {
	s := make([]string, len(c))
	for i, card := range c {
		s[i] = card.String()
	}

	return strings.Join(s, ",")
}

// Clone returns a copy of the cards
func (c Cards) Clone() Cards {
	if c == nil {
		return nil
	}

	c2 := make(Cards, len(c))
	copy(c2, c)
	return c2
}

// Contains returns true if the card is in the collection
func (c Cards) Contains(card Card) bool {
	for _, cc := range c {
		if cc == card {
			return true
		}
	}

	return false
}
