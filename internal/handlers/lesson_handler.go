package handlers

import (
	"net/http"

	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/service"
)

// LessonHandler drives flashcard lessons over the HTTP surface
type LessonHandler struct {
	lessonService *service.LessonService
	sessions      *service.SessionManager
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonService *service.LessonService, sessions *service.SessionManager) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		sessions:      sessions,
	}
}

// StartLesson opens a lesson on the module named in the path, replacing any
// session already running
func (h *LessonHandler) StartLesson(w http.ResponseWriter, r *http.Request) {
	moduleID := r.PathValue("moduleId")

	session, err := h.lessonService.StartLesson(moduleID)
	if err != nil {
		respondWithServiceError(w, "Failed to start lesson", err)
		return
	}

	h.sessions.StartLesson(session)
	respondWithJSON(w, http.StatusCreated, session.State())
}

// GetLesson returns the running lesson's state
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.WithLesson(func(sess *service.LessonSession) (models.LessonState, error) {
		return sess.State(), nil
	})
	if err != nil {
		respondWithServiceError(w, "Failed to read lesson", err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// FlipCard toggles the current card between its front and back
func (h *LessonHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.WithLesson(func(sess *service.LessonSession) (models.LessonState, error) {
		return sess.Flip(r.Context())
	})
	if err != nil {
		respondWithServiceError(w, "Failed to flip card", err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// AnswerCard records the learner's self-assessment and advances the lesson
func (h *LessonHandler) AnswerCard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct bool `json:"correct"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	state, err := h.sessions.WithLesson(func(sess *service.LessonSession) (models.LessonState, error) {
		return sess.Answer(req.Correct)
	})
	if err != nil {
		respondWithServiceError(w, "Failed to record answer", err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// EndLesson abandons the running session
func (h *LessonHandler) EndLesson(w http.ResponseWriter, r *http.Request) {
	h.sessions.EndActive()
	respondWithJSON(w, http.StatusOK, map[string]bool{"ended": true})
}
