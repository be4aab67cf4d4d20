package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/service"
)

const maxUploadSize = 10 << 20 // 10 MB

// AuthorHandler is the passcode-gated authoring surface: content editing,
// backup export/import and the progress reset
type AuthorHandler struct {
	authService    *service.AuthorAuthService
	contentService *service.ContentService
	syncService    *service.SyncService
	sessions       *service.SessionManager
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(authService *service.AuthorAuthService, contentService *service.ContentService, syncService *service.SyncService, sessions *service.SessionManager) *AuthorHandler {
	return &AuthorHandler{
		authService:    authService,
		contentService: contentService,
		syncService:    syncService,
		sessions:       sessions,
	}
}

// Login exchanges the author passcode for a bearer token
func (h *AuthorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	token, err := h.authService.Login(req.Passcode)
	if err != nil {
		respondWithServiceError(w, "Author login rejected", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Export streams the full application state as a downloadable backup
func (h *AuthorHandler) Export(w http.ResponseWriter, r *http.Request) {
	payload, err := h.syncService.Export()
	if err != nil {
		respondWithServiceError(w, "Failed to export data", err)
		return
	}

	filename := fmt.Sprintf("kannadabaruthe_backup_%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	respondWithJSON(w, http.StatusOK, payload)
}

// Import applies an uploaded backup through the reconciliation plan
func (h *AuthorHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadSize))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read upload", "", err)
		return
	}

	if err := h.syncService.ImportJSON(body); err != nil {
		respondWithServiceError(w, "Import rejected", err)
		return
	}

	// Imported content may invalidate whatever session was running
	h.sessions.EndActive()
	respondWithJSON(w, http.StatusOK, map[string]bool{"imported": true})
}

// ResetProgress wipes all learner progress and restores the default profile
func (h *AuthorHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.ResetAllProgress(); err != nil {
		respondWithServiceError(w, "Failed to reset progress", err)
		return
	}
	h.sessions.EndActive()
	respondWithJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// CreateModule adds a new empty module
func (h *AuthorHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Icon  string `json:"icon"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	module, err := h.contentService.CreateModule(req.ID, req.Title, req.Icon)
	if err != nil {
		respondWithServiceError(w, "Failed to create module", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, module)
}

// UpdateModule changes a module's title and icon
func (h *AuthorHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Icon  string `json:"icon"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	module, err := h.contentService.UpdateModule(r.PathValue("moduleId"), req.Title, req.Icon)
	if err != nil {
		respondWithServiceError(w, "Failed to update module", err)
		return
	}
	respondWithJSON(w, http.StatusOK, module)
}

// DeleteModule removes a module and its phrases
func (h *AuthorHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	if err := h.contentService.DeleteModule(r.PathValue("moduleId")); err != nil {
		respondWithServiceError(w, "Failed to delete module", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// AddPhrase appends a phrase to a module
func (h *AuthorHandler) AddPhrase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		En        string `json:"en"`
		Kn        string `json:"kn"`
		Translit  string `json:"translit"`
		AudioData string `json:"audioData"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	phrase, err := h.contentService.AddPhrase(r.PathValue("moduleId"), req.En, req.Kn, req.Translit, req.AudioData)
	if err != nil {
		respondWithServiceError(w, "Failed to add phrase", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, phrase)
}

// UpdatePhrase replaces an existing phrase's text
func (h *AuthorHandler) UpdatePhrase(w http.ResponseWriter, r *http.Request) {
	phraseID, err := strconv.Atoi(r.PathValue("phraseId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phrase id", "", err)
		return
	}

	var phrase models.Phrase
	if !decodeJSONBody(w, r, &phrase) {
		return
	}
	phrase.ID = phraseID

	if err := h.contentService.UpdatePhrase(r.PathValue("moduleId"), phrase); err != nil {
		respondWithServiceError(w, "Failed to update phrase", err)
		return
	}
	respondWithJSON(w, http.StatusOK, phrase)
}

// DeletePhrase removes one phrase from a module
func (h *AuthorHandler) DeletePhrase(w http.ResponseWriter, r *http.Request) {
	phraseID, err := strconv.Atoi(r.PathValue("phraseId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid phrase id", "", err)
		return
	}

	if err := h.contentService.DeletePhrase(r.PathValue("moduleId"), phraseID); err != nil {
		respondWithServiceError(w, "Failed to delete phrase", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// AddTrivia stores a new trivia question
func (h *AuthorHandler) AddTrivia(w http.ResponseWriter, r *http.Request) {
	var item models.TriviaItem
	if !decodeJSONBody(w, r, &item) {
		return
	}

	if err := h.contentService.AddTrivia(item); err != nil {
		respondWithServiceError(w, "Failed to add trivia", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

// ImportSheet accepts an uploaded .xlsx or .csv phrase sheet and appends its
// rows to the module
func (h *AuthorHandler) ImportSheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Upload too large or malformed", "", err)
		return
	}

	file, header, err := r.FormFile("sheet")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, `The upload needs a "sheet" file field`, "", err)
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "phrases-*"+filepath.Ext(header.Filename))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServer, "Failed to create temp file", err)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServer, "Failed to save upload", err)
		return
	}

	result, err := h.contentService.ImportPhraseSheet(r.PathValue("moduleId"), tmp.Name())
	if err != nil {
		respondWithServiceError(w, "Sheet import failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
