package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"pickem-live/internal/game"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeGameError maps the engine's error taxonomy onto HTTP statuses. The
// messages are user-displayable and surfaced verbatim.
func writeGameError(w http.ResponseWriter, err error) {
	var validation game.ValidationError
	var notFound game.NotFoundError
	var conflict game.ConflictError
	var invalidState game.InvalidStateError
	var roundClosed game.RoundClosedError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Reason)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Reason)
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, conflict.Reason)
	case errors.As(err, &invalidState):
		writeError(w, http.StatusConflict, invalidState.Reason)
	case errors.As(err, &roundClosed):
		writeError(w, http.StatusConflict, roundClosed.Reason)
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
