package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kannadabaruthe/internal/service"
)

// Shared user-facing messages
const (
	ErrUnauthorized   = "Author access required"
	ErrInternalServer = "Something went wrong, please try again"
)

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondWithJSON(w, status, map[string]string{"error": userMsg})
}

// respondWithServiceError maps the service error taxonomy onto HTTP statuses.
// Format and not-found errors carry messages safe to show the user; anything
// else is an internal failure.
func respondWithServiceError(w http.ResponseWriter, logMsg string, err error) {
	switch {
	case service.IsFormatError(err):
		respondWithError(w, http.StatusBadRequest, err.Error(), logMsg, err)
	case service.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, err.Error(), logMsg, err)
	case service.IsInsufficientContent(err):
		respondWithError(w, http.StatusConflict, err.Error(), logMsg, err)
	case errors.Is(err, service.ErrNoPhrases):
		respondWithError(w, http.StatusConflict, "This module has no phrases yet", logMsg, err)
	case errors.Is(err, service.ErrNoActiveSession):
		respondWithError(w, http.StatusConflict, "No session is running", logMsg, err)
	case errors.Is(err, service.ErrInvalidPasscode):
		respondWithError(w, http.StatusUnauthorized, "That passcode is not right", logMsg, err)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServer, logMsg, err)
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "Failed to decode request", err)
		return false
	}
	return true
}
