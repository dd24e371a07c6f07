package holdem

import (
	"fmt"
)

// Kind is the kind of action a player can take
type Kind string

// action constants
const (
	Fold  Kind = "fold"
	Check Kind = "check"
	Call  Kind = "call"
	Raise Kind = "raise"
)

var allowedKinds = map[Kind]bool{
	Fold:  true,
	Check: true,
	Call:  true,
	Raise: true,
}

// KindFromString returns the kind for the given string
func KindFromString(s string) (Kind, error) {
	if _, ok := allowedKinds[Kind(s)]; ok {
		return Kind(s), nil
	}

	return "", ErrUnknownAction
}

func (k Kind) String() string {
	switch k {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	}

	return string(k)
}

// Action is a single decision by a participant
// Amount is the raise-to amount and is only set for a raise
type Action struct {
	Kind   Kind `json:"kind"`
	Amount int  `json:"amount,omitempty"`
}

// FoldAction returns a fold
func FoldAction() Action {
	return Action{Kind: Fold}
}

// CheckAction returns a check
func CheckAction() Action {
	return Action{Kind: Check}
}

// CallAction returns a call
func CallAction() Action {
	return Action{Kind: Call}
}

// RaiseAction returns a raise to the amount
func RaiseAction(amount int) Action {
	return Action{Kind: Raise, Amount: amount}
}

// ParseAction builds an action from untrusted input
// A raise must carry an amount. An amount on any other kind is ignored.
func ParseAction(kind string, amount *int) (Action, error) {
	k, err := KindFromString(kind)
	if err != nil {
		return Action{}, err
	}

	if k != Raise {
		return Action{Kind: k}, nil
	}

	if amount == nil {
		return Action{}, ErrMissingAmount
	}

	return RaiseAction(*amount), nil
}

func (a Action) String() string {
	if a.Kind == Raise {
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	}

	return a.Kind.String()
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(committed int) string {
	switch a.Kind {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called %d", committed)
	case Raise:
		return fmt.Sprintf("raised to %d", a.Amount)
	}

	return ""
}

// ActionRecord is an entry in the audit trail of a hand
type ActionRecord struct {
	Seq         int    `json:"seq"`
	Participant string `json:"participant"`
	Action
	// Committed is how many chips moved from the stack into the round
	Committed int    `json:"committed"`
	Street    Street `json:"street"`
	AllIn     bool   `json:"allIn,omitempty"`
}
