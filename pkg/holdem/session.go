// Package holdem runs a single hand of no-limit Texas Hold'em
//
// A Session is the authoritative record of one hand. It is only changed through Apply, which validates an
// action against a copy of the session and returns the new session. A rejected action never changes anything.
package holdem

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"holdem-server/pkg/card"
	"holdem-server/pkg/deck"
)

// Session is the state of one hand at a table
type Session struct {
	TableID string `json:"tableId"`
	HandID  string `json:"handId"`

	// Players are the participants still contesting the hand, in turn order
	Players []string `json:"players"`
	// AllParticipants is every participant dealt into the hand, in seat order
	AllParticipants []string `json:"allParticipants"`

	HoleCards map[string]card.Cards `json:"holeCards"`
	Community card.Cards            `json:"community"`
	Deck      *deck.Deck            `json:"deck"`

	Stacks        map[string]int `json:"stacks"`
	BetsThisRound map[string]int `json:"betsThisRound"`
	// Contributed is what each participant has had swept into the pot
	Contributed map[string]int `json:"contributed"`
	CurrentBet  int            `json:"currentBet"`
	Pot         int            `json:"pot"`

	TurnIndex int                 `json:"turnIndex"`
	ActionLog map[string][]Action `json:"actionLog"`
	History   []ActionRecord      `json:"history"`

	AIParticipants map[string]Tier `json:"aiParticipants"`
	// Button is an index into AllParticipants
	Button        int         `json:"button"`
	StartingChips int         `json:"startingChips"`
	Street        Street      `json:"street"`
	Settlement    *Settlement `json:"settlement,omitempty"`
	// Seq increments with every accepted action
	Seq int `json:"seq"`
}

// Options configures a new hand
type Options struct {
	TableID string
	// HandID is generated when empty
	HandID string
	// Participants are in seat order
	Participants []string
	Stacks       map[string]int
	// AIParticipants are the automated participants and their tiers
	AIParticipants map[string]Tier
	// Button is the seat of the button. A seat outside of the table selects the last seat.
	Button int
	// Deck must already be shuffled
	Deck *deck.Deck
}

// NewHand deals a new hand
// Two cards are dealt to each participant one at a time, starting to the left of the button.
func NewHand(opts Options) (*Session, error) {
	if len(opts.Participants) < 2 {
		return nil, errors.New("there must be at least two participants")
	}

	if opts.Deck == nil {
		return nil, errors.New("a deck is required")
	}

	n := len(opts.Participants)
	s := &Session{
		TableID:         opts.TableID,
		HandID:          opts.HandID,
		Players:         make([]string, n),
		AllParticipants: make([]string, n),
		HoleCards:       make(map[string]card.Cards, n),
		Community:       make(card.Cards, 0, 5),
		Deck:            opts.Deck.Clone(),
		Stacks:          make(map[string]int, n),
		BetsThisRound:   make(map[string]int, n),
		Contributed:     make(map[string]int, n),
		ActionLog:       make(map[string][]Action),
		History:         make([]ActionRecord, 0),
		AIParticipants:  make(map[string]Tier),
		Button:          opts.Button,
		Street:          Preflop,
	}

	if s.HandID == "" {
		s.HandID = uuid.NewString()
	}

	if s.Button < 0 || s.Button >= n {
		s.Button = n - 1
	}

	for i, id := range opts.Participants {
		if id == "" {
			return nil, errors.New("participant id cannot be empty")
		}

		if _, ok := s.Stacks[id]; ok {
			return nil, fmt.Errorf("participant %s is seated twice", id)
		}

		stack := opts.Stacks[id]
		if stack <= 0 {
			return nil, fmt.Errorf("participant %s does not have any chips", id)
		}

		s.Players[i] = id
		s.AllParticipants[i] = id
		s.Stacks[id] = stack
		s.BetsThisRound[id] = 0
		s.Contributed[id] = 0
		s.HoleCards[id] = make(card.Cards, 0, 2)
		s.StartingChips += stack
	}

	// the first to act sits to the left of the button
	first := (s.Button + 1) % n
	s.Players = append(s.Players[first:], s.Players[:first]...)

	for id, tier := range opts.AIParticipants {
		if _, ok := s.Stacks[id]; !ok {
			return nil, fmt.Errorf("automated participant %s is not seated", id)
		}

		s.AIParticipants[id] = tier
	}

	for i := 0; i < 2; i++ {
		for _, id := range s.Players {
			c, err := s.Deck.Draw()
			if err != nil {
				return nil, err
			}

			s.HoleCards[id] = append(s.HoleCards[id], c)
		}
	}

	return s, nil
}

// NextHand deals the next hand at the table
// Stacks carry over from this hand, participants without chips sit out, and the button moves one seat
// clockwise.
func (s *Session) NextHand(handID string, d *deck.Deck) (*Session, error) {
	if !s.IsOver() {
		return nil, errors.New("the current hand is not over")
	}

	participants := make([]string, 0, len(s.AllParticipants))
	for _, id := range s.AllParticipants {
		if s.Stacks[id] > 0 {
			participants = append(participants, id)
		}
	}

	if len(participants) < 2 {
		return nil, errors.New("there must be at least two participants with chips")
	}

	n := len(s.AllParticipants)
	button := len(participants) - 1
	for i := 1; i <= n; i++ {
		id := s.AllParticipants[(s.Button+i)%n]
		if idx := indexOf(participants, id); idx >= 0 {
			button = idx
			break
		}
	}

	ai := make(map[string]Tier)
	for id, tier := range s.AIParticipants {
		if s.Stacks[id] > 0 {
			ai[id] = tier
		}
	}

	return NewHand(Options{
		TableID:        s.TableID,
		HandID:         handID,
		Participants:   participants,
		Stacks:         s.Stacks,
		AIParticipants: ai,
		Button:         button,
		Deck:           d,
	})
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	c.Players = cloneStrings(s.Players)
	c.AllParticipants = cloneStrings(s.AllParticipants)
	c.Community = s.Community.Clone()
	c.Stacks = cloneInts(s.Stacks)
	c.BetsThisRound = cloneInts(s.BetsThisRound)
	c.Contributed = cloneInts(s.Contributed)

	if s.Deck != nil {
		c.Deck = s.Deck.Clone()
	}

	c.HoleCards = make(map[string]card.Cards, len(s.HoleCards))
	for id, cards := range s.HoleCards {
		c.HoleCards[id] = cards.Clone()
	}

	c.ActionLog = make(map[string][]Action, len(s.ActionLog))
	for id, actions := range s.ActionLog {
		c.ActionLog[id] = append([]Action(nil), actions...)
	}

	c.History = append(make([]ActionRecord, 0, len(s.History)+1), s.History...)

	c.AIParticipants = make(map[string]Tier, len(s.AIParticipants))
	for id, tier := range s.AIParticipants {
		c.AIParticipants[id] = tier
	}

	if s.Settlement != nil {
		c.Settlement = s.Settlement.clone()
	}

	return &c
}

// Actor returns the participant who must act next
// An empty string is returned once the hand is over.
func (s *Session) Actor() string {
	if s.IsOver() || s.TurnIndex < 0 || s.TurnIndex >= len(s.Players) {
		return ""
	}

	return s.Players[s.TurnIndex]
}

// IsOver returns true once the hand has been settled
func (s *Session) IsOver() bool {
	return s.Settlement != nil
}

// IsAI returns the tier of the participant if it is automated
func (s *Session) IsAI(id string) (Tier, bool) {
	tier, ok := s.AIParticipants[id]
	return tier, ok
}

// IsSeated returns true if the participant was dealt into the hand
func (s *Session) IsSeated(id string) bool {
	return indexOf(s.AllParticipants, id) >= 0
}

// IsContending returns true if the participant has not folded
func (s *Session) IsContending(id string) bool {
	return indexOf(s.Players, id) >= 0
}

// IsAllIn returns true if the participant is contending with an empty stack
func (s *Session) IsAllIn(id string) bool {
	return s.IsContending(id) && s.Stacks[id] == 0
}

// ToCall returns how much the participant owes to match the current bet
func (s *Session) ToCall(id string) int {
	owed := s.CurrentBet - s.BetsThisRound[id]
	if owed < 0 {
		return 0
	}

	return owed
}

// TotalChips returns every chip on the table: stacks, the pot, and bets not yet swept
func (s *Session) TotalChips() int {
	total := s.Pot
	for _, id := range s.AllParticipants {
		total += s.Stacks[id] + s.BetsThisRound[id]
	}

	return total
}

// Validate checks that the session is consistent
func (s *Session) Validate() error {
	if total := s.TotalChips(); total != s.StartingChips {
		return fmt.Errorf("chips are not conserved: %d on the table, started with %d", total, s.StartingChips)
	}

	for _, id := range s.AllParticipants {
		if s.Stacks[id] < 0 {
			return fmt.Errorf("participant %s has a negative stack", id)
		}

		if len(s.HoleCards[id]) != 2 {
			return fmt.Errorf("participant %s has %d hole cards", id, len(s.HoleCards[id]))
		}
	}

	switch len(s.Community) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("invalid number of community cards: %d", len(s.Community))
	}

	if s.IsOver() {
		return nil
	}

	if s.TurnIndex < 0 || s.TurnIndex >= len(s.Players) {
		return fmt.Errorf("turn index %d is out of range", s.TurnIndex)
	}

	for _, id := range s.Players {
		if s.BetsThisRound[id] > s.CurrentBet {
			return fmt.Errorf("participant %s has bet more than the current bet", id)
		}
	}

	return nil
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}

	return -1
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}

	return append(make([]string, 0, len(s)), s...)
}

func cloneInts(m map[string]int) map[string]int {
	c := make(map[string]int, len(m))
	for k, v := range m {
		c[k] = v
	}

	return c
}
