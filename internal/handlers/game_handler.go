package handlers

import (
	"errors"
	"net/http"

	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/service"
)

// GameHandler drives the review games over the HTTP surface
type GameHandler struct {
	gameService *service.GameService
	sessions    *service.SessionManager
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService, sessions *service.SessionManager) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		sessions:    sessions,
	}
}

// StartGame opens a game of the variant named in the path. A locked gate is
// a normal answer for the learner, not a failure.
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	kind := models.GameKind(r.PathValue("kind"))

	session, err := h.gameService.StartGame(kind)
	if errors.Is(err, service.ErrGamesLocked) {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"locked":   true,
			"message":  "Keep learning! Games unlock once you master enough words.",
			"required": service.GameUnlockThreshold,
		})
		return
	}
	if err != nil {
		respondWithServiceError(w, "Failed to start game", err)
		return
	}

	h.sessions.StartGame(session)
	respondWithJSON(w, http.StatusCreated, session.State())
}

// GetGame returns the running game's state
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.ActiveGame()
	if err != nil {
		respondWithServiceError(w, "Failed to read game", err)
		return
	}
	respondWithJSON(w, http.StatusOK, session.State())
}

// GameInput applies one learner move to the running game
func (h *GameHandler) GameInput(w http.ResponseWriter, r *http.Request) {
	var input service.GameInput
	if !decodeJSONBody(w, r, &input) {
		return
	}

	session, err := h.sessions.ActiveGame()
	if err != nil {
		respondWithServiceError(w, "Failed to read game", err)
		return
	}

	state, err := session.HandleInput(input)
	if err != nil {
		respondWithServiceError(w, "Failed to apply game input", err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// EndGame abandons the running game
func (h *GameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	h.sessions.EndActive()
	respondWithJSON(w, http.StatusOK, map[string]bool{"ended": true})
}
