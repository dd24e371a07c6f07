package holdem

import (
	"holdem-server/pkg/card"
)

// ParticipantView is the public view of a participant
type ParticipantView struct {
	ID          string `json:"id"`
	Seat        int    `json:"seat"`
	Stack       int    `json:"stack"`
	Bet         int    `json:"bet"`
	Contributed int    `json:"contributed"`
	Folded      bool   `json:"folded"`
	AllIn       bool   `json:"allIn"`
	Button      bool   `json:"button"`
	Tier        Tier   `json:"tier,omitempty"`
	// HoleCards is nil when they are hidden from the viewer
	HoleCards card.Cards `json:"holeCards"`
}

// Snapshot is a read-only view of the hand
type Snapshot struct {
	TableID      string              `json:"tableId"`
	HandID       string              `json:"handId"`
	Street       Street              `json:"street"`
	Participants []ParticipantView   `json:"participants"`
	Players      []string            `json:"players"`
	Community    card.Cards          `json:"community"`
	Pot          int                 `json:"pot"`
	CurrentBet   int                 `json:"currentBet"`
	CurrentTurn  string              `json:"currentTurn"`
	ActionLog    map[string][]Action `json:"actionLog"`
	LastAction   *ActionRecord       `json:"lastAction,omitempty"`
	Legal        *LegalActions       `json:"legal,omitempty"`
	Settlement   *Settlement         `json:"settlement,omitempty"`
	Seq          int                 `json:"seq"`
}

// Snapshot returns a view with every hole card visible
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot("", true)
}

// SnapshotFor returns the view of the hand for the viewer
// The viewer sees its own hole cards. Other participants' cards are hidden unless they were shown down.
// An empty viewer is a spectator.
func (s *Session) SnapshotFor(viewer string) *Snapshot {
	return s.snapshot(viewer, false)
}

func (s *Session) snapshot(viewer string, revealAll bool) *Snapshot {
	shown := make(map[string]bool)
	if s.Settlement != nil {
		for _, h := range s.Settlement.Hands {
			shown[h.Participant] = true
		}
	}

	views := make([]ParticipantView, len(s.AllParticipants))
	for i, id := range s.AllParticipants {
		v := ParticipantView{
			ID:          id,
			Seat:        i,
			Stack:       s.Stacks[id],
			Bet:         s.BetsThisRound[id],
			Contributed: s.Contributed[id],
			Folded:      !s.IsContending(id),
			AllIn:       s.IsAllIn(id),
			Button:      i == s.Button,
			Tier:        s.AIParticipants[id],
		}

		if revealAll || id == viewer || shown[id] {
			v.HoleCards = s.HoleCards[id].Clone()
		}

		views[i] = v
	}

	actionLog := make(map[string][]Action, len(s.ActionLog))
	for id, actions := range s.ActionLog {
		actionLog[id] = append([]Action(nil), actions...)
	}

	snap := &Snapshot{
		TableID:      s.TableID,
		HandID:       s.HandID,
		Street:       s.Street,
		Participants: views,
		Players:      cloneStrings(s.Players),
		Community:    s.Community.Clone(),
		Pot:          s.Pot,
		CurrentBet:   s.CurrentBet,
		CurrentTurn:  s.Actor(),
		ActionLog:    actionLog,
		Seq:          s.Seq,
	}

	if len(s.History) > 0 {
		last := s.History[len(s.History)-1]
		snap.LastAction = &last
	}

	if viewer != "" {
		snap.Legal = s.LegalActions(viewer)
	}

	if s.Settlement != nil {
		snap.Settlement = s.Settlement.clone()
	}

	return snap
}
