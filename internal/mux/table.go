package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"holdem-server/pkg/holdem"
	"holdem-server/pkg/room"
)

type postTableResponse struct {
	TableID string `json:"tableId"`
	HandID  string `json:"handId"`
	// Tokens are the seat tokens of the participants who are not automated
	Tokens map[string]string `json:"tokens,omitempty"`
	State  *holdem.Snapshot  `json:"state"`
}

func (m *Mux) postTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload room.HandOptions
		if !decodeRequest(w, r, &payload) {
			return
		}

		d, s, err := m.pitBoss.CreateTable(r.Context(), payload)
		if err != nil {
			writeError(w, err)
			return
		}

		tokens, err := m.signSeats(s)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		logrus.WithField("table", d.TableID()).Info("created table")
		writeJSON(w, http.StatusCreated, postTableResponse{
			TableID: d.TableID(),
			HandID:  s.HandID,
			Tokens:  tokens,
			State:   s.SnapshotFor(""),
		})
	}
}

func (m *Mux) signSeats(s *holdem.Session) (map[string]string, error) {
	if m.keys == nil {
		return nil, nil
	}

	tokens := make(map[string]string, len(s.AllParticipants))
	for _, id := range s.AllParticipants {
		if _, ok := s.IsAI(id); ok {
			continue
		}

		token, err := m.keys.Sign(s.TableID, id)
		if err != nil {
			return nil, err
		}

		tokens[id] = token
	}

	return tokens, nil
}

// viewer returns who the state is being shown to
func (m *Mux) viewer(r *http.Request) string {
	if m.keys != nil {
		participant, _ := seat(r)
		return participant
	}

	return r.FormValue("viewer")
}

func (m *Mux) getTableID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := m.pitBoss.Dealer(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}

		snap, err := d.State(r.Context(), m.viewer(r))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snap)
	}
}

type postTableIDHandPayload struct {
	Seed int64 `json:"seed"`
}

type postTableIDHandResponse struct {
	TableID string           `json:"tableId"`
	HandID  string           `json:"handId"`
	State   *holdem.Snapshot `json:"state"`
}

func (m *Mux) postTableIDHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postTableIDHandPayload
		if r.ContentLength != 0 && !decodeRequest(w, r, &payload) {
			return
		}

		// with seat tokens in use, only a seated participant may deal the next hand
		if _, ok := seat(r); m.keys != nil && !ok {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		d, err := m.pitBoss.Dealer(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}

		s, err := d.NextHand(r.Context(), payload.Seed)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postTableIDHandResponse{
			TableID: s.TableID,
			HandID:  s.HandID,
			State:   s.SnapshotFor(m.viewer(r)),
		})
	}
}

type postTableIDActionPayload struct {
	PlayerID string `json:"playerId"`
	Action   string `json:"action"`
	Amount   *int   `json:"amount"`
}

func (m *Mux) postTableIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postTableIDActionPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		participant, status := m.actingParticipant(r, payload.PlayerID)
		if status != 0 {
			writeJSONError(w, status, nil)
			return
		}

		action, err := holdem.ParseAction(payload.Action, payload.Amount)
		if err != nil {
			writeError(w, err)
			return
		}

		d, err := m.pitBoss.Dealer(r.Context(), gmux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}

		outcome, err := d.Submit(r.Context(), participant, action)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, outcome)
	}
}
