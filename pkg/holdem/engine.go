package holdem

import (
	"fmt"

	"holdem-server/pkg/rank"
)

// Result describes what an accepted action did
type Result struct {
	Record ActionRecord `json:"record"`
	// RoundClosed is true if the action closed the betting round
	RoundClosed bool `json:"roundClosed"`
	// Street is the street being played after the action
	Street Street `json:"street"`
	// Settlement is set when the action ended the hand
	Settlement *Settlement `json:"settlement,omitempty"`
}

// Apply validates and applies an action by the participant
// The session passed in is never modified. On success the new session is returned. The oracle is only consulted
// when the hand reaches showdown.
func Apply(s *Session, oracle rank.Oracle, participant string, a Action) (*Session, *Result, error) {
	committed, err := validate(s, participant, a)
	if err != nil {
		return nil, nil, err
	}

	next := s.Clone()
	result, err := next.apply(oracle, participant, a, committed)
	if err != nil {
		return nil, nil, err
	}

	return next, result, nil
}

// validate returns how many chips the action moves from the participant's stack
func validate(s *Session, participant string, a Action) (int, error) {
	if s == nil {
		return 0, ErrGameNotFound
	}

	if s.IsOver() {
		return 0, ErrHandOver
	}

	if !s.IsSeated(participant) {
		return 0, ErrUnknownParticipant
	}

	if s.Actor() != participant {
		return 0, ErrOutOfTurn
	}

	stack := s.Stacks[participant]
	bet := s.BetsThisRound[participant]

	switch a.Kind {
	case Fold:
		return 0, nil
	case Check:
		if bet != s.CurrentBet {
			return 0, ErrIllegalCheck
		}

		return 0, nil
	case Call:
		// an under-funded call puts the participant all-in
		return min(s.ToCall(participant), stack), nil
	case Raise:
		if a.Amount <= s.CurrentBet {
			return 0, ErrIllegalRaise
		}

		cost := a.Amount - bet
		if cost > stack {
			return 0, ErrInsufficientFunds
		}

		return cost, nil
	}

	return 0, ErrUnknownAction
}

func (s *Session) apply(oracle rank.Oracle, participant string, a Action, committed int) (*Result, error) {
	s.Seq++
	record := ActionRecord{
		Seq:         s.Seq,
		Participant: participant,
		Action:      a,
		Committed:   committed,
		Street:      s.Street,
	}

	s.Stacks[participant] -= committed
	s.BetsThisRound[participant] += committed
	if a.Kind == Raise {
		s.CurrentBet = a.Amount
	}

	record.AllIn = a.Kind != Fold && s.Stacks[participant] == 0
	s.ActionLog[participant] = append(s.ActionLog[participant], a)
	s.History = append(s.History, record)

	result := &Result{Record: record}

	if a.Kind == Fold {
		s.Players = append(s.Players[:s.TurnIndex], s.Players[s.TurnIndex+1:]...)
		if len(s.Players) == 1 {
			result.Settlement = s.settleFoldOut()
			result.Street = s.Street
			return result, nil
		}

		// the participant after the one who folded now sits at the same index
		s.TurnIndex %= len(s.Players)
		if !s.isRoundClosed() {
			s.TurnIndex = s.nextActor(0)
			result.Street = s.Street
			return result, nil
		}
	} else if !s.isRoundClosed() {
		s.TurnIndex = s.nextActor(1)
		result.Street = s.Street
		return result, nil
	}

	result.RoundClosed = true
	settlement, err := s.closeRound(oracle)
	if err != nil {
		return nil, err
	}

	result.Settlement = settlement
	result.Street = s.Street
	return result, nil
}

// isRoundClosed returns true when every contender who can still bet has matched the current bet and acted
// Participants who are all-in are treated as matched.
func (s *Session) isRoundClosed() bool {
	for _, id := range s.Players {
		if s.Stacks[id] == 0 {
			continue
		}

		if s.BetsThisRound[id] != s.CurrentBet || len(s.ActionLog[id]) == 0 {
			return false
		}
	}

	return true
}

// nextActor returns the index of the next contender who still has chips, starting offset seats after the turn
func (s *Session) nextActor(offset int) int {
	n := len(s.Players)
	for i := 0; i < n; i++ {
		idx := (s.TurnIndex + offset + i) % n
		if s.Stacks[s.Players[idx]] > 0 {
			return idx
		}
	}

	return s.TurnIndex % n
}

// actorsRemaining returns how many contenders still have chips to bet
func (s *Session) actorsRemaining() int {
	n := 0
	for _, id := range s.Players {
		if s.Stacks[id] > 0 {
			n++
		}
	}

	return n
}

// closeRound sweeps the bets into the pot and moves to the next street
// If nobody can bet any further, the remaining streets are dealt and the hand goes to showdown.
func (s *Session) closeRound(oracle rank.Oracle) (*Settlement, error) {
	s.sweep()

	if len(s.Community) == 5 {
		return s.settleShowdown(oracle)
	}

	if err := s.dealStreet(); err != nil {
		return nil, err
	}

	if s.actorsRemaining() <= 1 {
		for len(s.Community) < 5 {
			if err := s.dealStreet(); err != nil {
				return nil, err
			}
		}

		return s.settleShowdown(oracle)
	}

	s.TurnIndex = 0
	s.TurnIndex = s.nextActor(0)
	return nil, nil
}

func (s *Session) sweep() {
	for _, id := range s.AllParticipants {
		s.Contributed[id] += s.BetsThisRound[id]
		s.Pot += s.BetsThisRound[id]
		s.BetsThisRound[id] = 0
	}

	s.CurrentBet = 0
	s.ActionLog = make(map[string][]Action)
}

// dealStreet burns a card and deals the flop, turn, or river
func (s *Session) dealStreet() error {
	if _, err := s.Deck.Draw(); err != nil {
		return fmt.Errorf("could not burn a card: %w", err)
	}

	n := 1
	if len(s.Community) == 0 {
		n = 3
	}

	for i := 0; i < n; i++ {
		c, err := s.Deck.Draw()
		if err != nil {
			return fmt.Errorf("could not deal community card: %w", err)
		}

		s.Community = append(s.Community, c)
	}

	s.Street = streetForBoard(len(s.Community))
	return nil
}
