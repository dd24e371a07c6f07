package holdem

import (
	"fmt"
)

// ActionError is a rejection of an action that is safe to show to the participant
// The session is left unchanged when one is returned.
type ActionError string

func (a ActionError) Error() string {
	return string(a)
}

// action errors
const (
	ErrOutOfTurn          ActionError = "it is not your turn"
	ErrIllegalCheck       ActionError = "you cannot check when facing a bet"
	ErrIllegalRaise       ActionError = "raise must be greater than the current bet"
	ErrInsufficientFunds  ActionError = "you do not have enough chips"
	ErrGameNotFound       ActionError = "no hand is in progress at this table"
	ErrHandOver           ActionError = "the hand is over"
	ErrUnknownParticipant ActionError = "participant is not seated at this table"
	ErrMissingAmount      ActionError = "a raise requires an amount"
	ErrUnknownAction      ActionError = "unknown action"
)

// Code returns a stable identifier for the error
func (a ActionError) Code() string {
	switch a {
	case ErrOutOfTurn:
		return "out_of_turn"
	case ErrIllegalCheck:
		return "illegal_check"
	case ErrIllegalRaise:
		return "illegal_raise"
	case ErrInsufficientFunds:
		return "insufficient_funds"
	case ErrGameNotFound:
		return "game_not_found"
	case ErrHandOver:
		return "hand_over"
	case ErrUnknownParticipant:
		return "unknown_participant"
	case ErrMissingAmount:
		return "missing_amount"
	case ErrUnknownAction:
		return "unknown_action"
	}

	return "action_error"
}

// SettlementError is returned when the pot cannot be awarded
// The hand cannot continue, and the pot must not be distributed again.
type SettlementError struct {
	HandID string
	Err    error
}

func (s *SettlementError) Error() string {
	return fmt.Sprintf("could not settle hand %s: %v", s.HandID, s.Err)
}

// Unwrap returns the underlying error
func (s *SettlementError) Unwrap() error {
	return s.Err
}
