package mux

import (
	"context"
	"errors"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"

	"holdem-server/internal/jwt"
	"holdem-server/pkg/room"
)

type ctxKey int

const (
	ctxSeatKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	// keys are nil when seat tokens are not in use
	keys *jwt.Keys
}

// NewMux returns a new HTTP mux
// When keys is nil, participants identify themselves and no seat tokens are issued.
func NewMux(version string, pitBoss *room.PitBoss, keys *jwt.Keys) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		keys:    keys,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())

	tr := r.PathPrefix("/table/{id:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	tr.Use(this.seatMiddleware)

	tr.Methods(http.MethodGet).Path("").Handler(this.getTableID())
	tr.Methods(http.MethodPost).Path("/hand").Handler(this.postTableIDHand())
	tr.Methods(http.MethodPost).Path("/action").Handler(this.postTableIDAction())
	tr.Methods(http.MethodGet).Path("/ws").Handler(this.getTableIDWS())

	return this
}

// seatMiddleware validates the seat token, if one was provided
// Handlers decide whether a seat is required.
func (m *Mux) seatMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" || m.keys == nil {
			next.ServeHTTP(w, r)
			return
		}

		participant, err := m.keys.ValidateSeat(token, gmux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, jwt.ErrWrongTable) {
				writeJSONError(w, http.StatusForbidden, nil)
				return
			}

			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSeatKey, participant)
		w.Header().Set("Holdem-Participant", participant)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func bearerToken(r *http.Request) string {
	if token := r.FormValue("access_token"); token != "" {
		return token
	}

	authHeader := strings.Split(r.Header.Get("Authorization"), " ")
	if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
		return ""
	}

	return authHeader[1]
}

// seat returns the participant the request was authorized for
func seat(r *http.Request) (string, bool) {
	participant, ok := r.Context().Value(ctxSeatKey).(string)
	return participant, ok
}

// actingParticipant returns who is acting in the request
// With seat tokens in use, the token decides. A claimed participant must match the token.
func (m *Mux) actingParticipant(r *http.Request, claimed string) (string, int) {
	if m.keys == nil {
		if claimed == "" {
			return "", http.StatusBadRequest
		}

		return claimed, 0
	}

	participant, ok := seat(r)
	if !ok {
		return "", http.StatusUnauthorized
	}

	if claimed != "" && claimed != participant {
		return "", http.StatusForbidden
	}

	return participant, 0
}
