package mux

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/holdem"
	"holdem-server/pkg/room"
)

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	res := errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	}

	var actionErr holdem.ActionError
	if errors.As(err, &actionErr) {
		res.Code = actionErr.Code()
	}

	writeJSON(w, statusCode, res)
}

// writeError picks the status code for the error
// rejected actions are a 400, unknown tables are a 404, and anything unexpected is a 500
func writeError(w http.ResponseWriter, err error) {
	var actionErr holdem.ActionError
	var reqErr *room.RequestError

	switch {
	case errors.Is(err, holdem.ErrGameNotFound):
		writeJSONError(w, http.StatusNotFound, err)
	case errors.As(err, &actionErr), errors.As(err, &reqErr):
		writeJSONError(w, http.StatusBadRequest, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}
