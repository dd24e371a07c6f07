package room

import (
	"errors"

	"holdem-server/pkg/holdem"
)

// message keys
const (
	keyGameState = "gameState"
	keyHandEnded = "handEnded"
	keyError     = "error"
	keyStatus    = "status"
)

// Response is a message sent to a connected client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   keyStatus,
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	// Action is fold, check, call, raise or state
	Action string `json:"action"`
	Amount *int   `json:"amount"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// stateData is the data of a gameState message
type stateData struct {
	*holdem.Snapshot
	Log []*LogMessage `json:"log"`
}

func newErrorResponse(ctx string, err error) *Response {
	res := &Response{
		Key:     keyError,
		Value:   err.Error(),
		Context: ctx,
	}

	var actionErr holdem.ActionError
	if errors.As(err, &actionErr) {
		res.Code = actionErr.Code()
	}

	return res
}
