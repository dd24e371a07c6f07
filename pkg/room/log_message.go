package room

import (
	"time"

	"github.com/google/uuid"

	"holdem-server/pkg/holdem"
)

const logMessageLimit = 25

// LogMessage is a line in the table's running log
type LogMessage struct {
	UUID        string        `json:"uuid"`
	Participant string        `json:"participant"`
	Street      holdem.Street `json:"street"`
	Message     string        `json:"message"`
	Time        time.Time     `json:"time"`
}

func newLogMessage(record holdem.ActionRecord, now time.Time) *LogMessage {
	return &LogMessage{
		UUID:        uuid.New().String(),
		Participant: record.Participant,
		Street:      record.Street,
		Message:     record.LogMessage(record.Committed),
		Time:        now,
	}
}

// addLogMessages adds log messages, keeping only the most recent
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages ...*LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
