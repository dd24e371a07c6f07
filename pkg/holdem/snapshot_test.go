package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/internal/golden"
)

func TestSession_LegalActions(t *testing.T) {
	a := assert.New(t)

	s := newSession(t, nil, 100, 60)
	a.Nil(s.LegalActions("b"))
	a.Equal(&LegalActions{
		Actions:    []Kind{Check, Raise, Fold},
		MinRaiseTo: 1,
		MaxRaiseTo: 100,
	}, s.LegalActions("a"))

	s, _ = mustApply(t, s, "a", RaiseAction(80))
	a.Equal(&LegalActions{
		Actions: []Kind{Call, Fold},
		ToCall:  60,
	}, s.LegalActions("b"), "b can only call all-in")
}

func TestSession_SnapshotFor(t *testing.T) {
	a := assert.New(t)

	d := stackDeck(t, "2c,7d,9s,Jc,4h", "Ah,Ad", "Kh,Kd", "Qh,Qd")
	s := newSession(t, d, 100, 100, 100)
	s.AIParticipants["c"] = Easy

	snap := s.SnapshotFor("a")
	a.Equal("a", snap.CurrentTurn)
	a.Equal("Ah,Ad", snap.Participants[0].HoleCards.String())
	a.Nil(snap.Participants[1].HoleCards)
	a.Nil(snap.Participants[2].HoleCards)
	a.Equal(Easy, snap.Participants[2].Tier)
	a.True(snap.Participants[2].Button)
	a.NotNil(snap.Legal)
	a.Nil(snap.LastAction)

	snap = s.SnapshotFor("b")
	a.Nil(snap.Legal)
	a.Equal("Kh,Kd", snap.Participants[1].HoleCards.String())

	snap = s.SnapshotFor("")
	for _, p := range snap.Participants {
		a.Nil(p.HoleCards)
	}

	full := s.Snapshot()
	for _, p := range full.Participants {
		a.Len(p.HoleCards, 2)
	}

	s, _ = mustApply(t, s, "a", RaiseAction(100))
	s, _ = mustApply(t, s, "b", CallAction())
	s, _ = mustApply(t, s, "c", FoldAction())
	require.True(t, s.IsOver())

	snap = s.SnapshotFor("")
	a.Equal("Ah,Ad", snap.Participants[0].HoleCards.String(), "shown down")
	a.Equal("Kh,Kd", snap.Participants[1].HoleCards.String(), "shown down")
	a.Nil(snap.Participants[2].HoleCards, "folded hands stay hidden")
	a.Equal(0, snap.Participants[1].Stack)
	a.Equal(Complete, snap.Street)
	require.NotNil(t, snap.Settlement)
	a.Equal(map[string]int{"a": 200}, snap.Settlement.Payouts)
	a.Equal(3, snap.LastAction.Seq)
	a.Equal("", snap.CurrentTurn)

	golden.Assert(t, "showdown_snapshot", snap)
}
