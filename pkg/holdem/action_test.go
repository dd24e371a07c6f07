package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	a := assert.New(t)

	amount := 120
	act, err := ParseAction("raise", &amount)
	a.NoError(err)
	a.Equal(RaiseAction(120), act)

	act, err = ParseAction("call", &amount)
	a.NoError(err)
	a.Equal(CallAction(), act, "amount is only kept for a raise")

	_, err = ParseAction("raise", nil)
	a.ErrorIs(err, ErrMissingAmount)

	_, err = ParseAction("bet", nil)
	a.ErrorIs(err, ErrUnknownAction)
}

func TestAction_LogMessage(t *testing.T) {
	a := assert.New(t)
	a.Equal("folded", FoldAction().LogMessage(0))
	a.Equal("checked", CheckAction().LogMessage(0))
	a.Equal("called 40", CallAction().LogMessage(40))
	a.Equal("raised to 80", RaiseAction(80).LogMessage(60))
}

func TestActionError_Code(t *testing.T) {
	a := assert.New(t)
	a.Equal("out_of_turn", ErrOutOfTurn.Code())
	a.Equal("illegal_check", ErrIllegalCheck.Code())
	a.Equal("illegal_raise", ErrIllegalRaise.Code())
	a.Equal("insufficient_funds", ErrInsufficientFunds.Code())
	a.Equal("game_not_found", ErrGameNotFound.Code())
	a.Equal("missing_amount", ErrMissingAmount.Code())
	a.Equal("action_error", ActionError("other").Code())
}

func TestStreet_Text(t *testing.T) {
	b, err := Turn.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "turn", string(b))

	var s Street
	assert.NoError(t, s.UnmarshalText([]byte("river")))
	assert.Equal(t, River, s)
	assert.Error(t, s.UnmarshalText([]byte("fifth")))
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("hard")
	assert.NoError(t, err)
	assert.Equal(t, Hard, tier)

	tier, err = ParseTier("")
	assert.NoError(t, err)
	assert.Equal(t, Medium, tier)

	_, err = ParseTier("expert")
	assert.EqualError(t, err, "unknown tier: expert")
}
