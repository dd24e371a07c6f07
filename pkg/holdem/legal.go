package holdem

// LegalActions are the actions available to the participant on the clock
type LegalActions struct {
	Actions []Kind `json:"actions"`
	ToCall  int    `json:"toCall"`
	// MinRaiseTo and MaxRaiseTo bound the raise-to amount, when a raise is possible
	MinRaiseTo int `json:"minRaiseTo,omitempty"`
	MaxRaiseTo int `json:"maxRaiseTo,omitempty"`
}

// LegalActions returns what the participant may do, or nil if it is not their turn
func (s *Session) LegalActions(id string) *LegalActions {
	if s.Actor() != id || id == "" {
		return nil
	}

	stack := s.Stacks[id]
	bet := s.BetsThisRound[id]
	legal := &LegalActions{
		Actions: make([]Kind, 0, 3),
		ToCall:  min(s.ToCall(id), stack),
	}

	if bet == s.CurrentBet {
		legal.Actions = append(legal.Actions, Check)
	} else {
		legal.Actions = append(legal.Actions, Call)
	}

	if maxRaiseTo := bet + stack; maxRaiseTo > s.CurrentBet {
		legal.Actions = append(legal.Actions, Raise)
		legal.MinRaiseTo = s.CurrentBet + 1
		legal.MaxRaiseTo = maxRaiseTo
	}

	legal.Actions = append(legal.Actions, Fold)
	return legal
}
