package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"holdem-server/pkg/card"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// ErrDuplicateCard is an error when a stacked deck repeats a card identifier
var ErrDuplicateCard = errors.New("deck contains a duplicate card")

// Deck is the sequence of undealt cards for a hand
// The deck is consumed from the front. Cards is exported so the deck can be persisted alongside the hand.
type Deck struct {
	Cards card.Cards `json:"cards"`
	Seed  int64      `json:"seed"`
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{Seed: -1}
	d.buildDeck()
	return d
}

// NewShuffled returns a deck shuffled with the seed
// A seed of zero will use the current time
func NewShuffled(seed int64) *Deck {
	d := New()
	d.Shuffle(seed)
	return d
}

// NewStacked returns a deck which will deal the provided cards in order
// Intended for tests and replays. Every card must be valid and unique.
func NewStacked(cards card.Cards) (*Deck, error) {
	seen := make(map[card.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return nil, card.ErrInvalidCard
		}

		if seen[c] {
			return nil, ErrDuplicateCard
		}

		seen[c] = true
	}

	return &Deck{
		Cards: cards.Clone(),
		Seed:  -1,
	}, nil
}

func (d *Deck) buildDeck() {
	cards := make(card.Cards, card.NumCards)
	for i := range cards {
		cards[i] = card.Card(i)
	}

	d.Cards = cards
}

// Shuffle will shuffle the deck of cards
// You can manually specify the seed, or you can leave it as 0
func (d *Deck) Shuffle(seed int64) {
	if seed < 0 {
		panic("seed cannot be < 0")
	}

	// we always want to shuffle from an unshuffled deck so the same seed yields the same order
	d.buildDeck()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d.Seed = seed
	rng := rand.New(rand.NewSource(seed)) // nolint:gosec

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, c := range d.Cards {
		_, _ = hash.Write([]byte(strconv.Itoa(int(c))))
		_, _ = hash.Write([]byte{','})
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned.
func (d *Deck) Draw() (card.Card, error) {
	if len(d.Cards) <= 0 {
		return 0, ErrEndOfDeck
	}

	c := d.Cards[0]
	d.Cards = d.Cards[1:]

	return c, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// Clone returns a deep copy of the deck
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}

	return &Deck{
		Cards: d.Cards.Clone(),
		Seed:  d.Seed,
	}
}
