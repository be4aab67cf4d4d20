package handlers

import (
	"net/http"

	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/service"
)

// DashboardHandler serves the learner's home view: the module list, the
// profile and the game gate
type DashboardHandler struct {
	lessonService  *service.LessonService
	contentService *service.ContentService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(lessonService *service.LessonService, contentService *service.ContentService) *DashboardHandler {
	return &DashboardHandler{
		lessonService:  lessonService,
		contentService: contentService,
	}
}

// moduleSummary is one dashboard tile
type moduleSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Icon         string `json:"icon"`
	PhraseCount  int    `json:"phraseCount"`
	LearnedCount int    `json:"learnedCount"`
}

type dashboardResponse struct {
	Profile       *models.Profile `json:"profile"`
	Modules       []moduleSummary `json:"modules"`
	GamesUnlocked bool            `json:"gamesUnlocked"`
	WordsToUnlock int             `json:"wordsToUnlock"`
}

// GetDashboard returns the dashboard view
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	profile, err := h.lessonService.GetOrCreateProfile()
	if err != nil {
		respondWithServiceError(w, "Failed to load profile", err)
		return
	}

	modules, err := h.contentService.ListModules()
	if err != nil {
		respondWithServiceError(w, "Failed to load modules", err)
		return
	}

	learned := profile.LearnedSet()
	summaries := make([]moduleSummary, 0, len(modules))
	for _, module := range modules {
		summary := moduleSummary{
			ID:          module.ID,
			Title:       module.Title,
			Icon:        module.Icon,
			PhraseCount: len(module.Phrases),
		}
		for _, p := range module.Phrases {
			if learned[p.ID] {
				summary.LearnedCount++
			}
		}
		summaries = append(summaries, summary)
	}

	wordsToUnlock := service.GameUnlockThreshold - len(profile.WordsLearned)
	if wordsToUnlock < 0 {
		wordsToUnlock = 0
	}

	respondWithJSON(w, http.StatusOK, dashboardResponse{
		Profile:       profile,
		Modules:       summaries,
		GamesUnlocked: service.CanAccessGames(profile),
		WordsToUnlock: wordsToUnlock,
	})
}

// GetProfile returns the learner profile on its own
func (h *DashboardHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.lessonService.GetOrCreateProfile()
	if err != nil {
		respondWithServiceError(w, "Failed to load profile", err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// RenameProfile changes the learner's display name
func (h *DashboardHandler) RenameProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	profile, err := h.lessonService.RenameProfile(req.Name)
	if err != nil {
		respondWithServiceError(w, "Failed to rename profile", err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// SetGoogleTTS flips the cloud text-to-speech preference
func (h *DashboardHandler) SetGoogleTTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeJSONBody(w, r, &req) {
		return
	}

	profile, err := h.lessonService.SetGoogleTTS(req.Enabled)
	if err != nil {
		respondWithServiceError(w, "Failed to update TTS preference", err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}
