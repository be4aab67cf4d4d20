package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"kannadabaruthe/internal/audio"
)

// AudioHandler serves synthesized and recorded phrase audio from the cache dir
type AudioHandler struct {
	player *audio.Player
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(player *audio.Player) *AudioHandler {
	return &AudioHandler{player: player}
}

// ServeAudio streams one cached audio file. The filename comes from a lesson
// state response; anything that escapes the cache dir is rejected.
func (h *AudioHandler) ServeAudio(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("file")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		respondWithError(w, http.StatusBadRequest, "Invalid audio file name", "", nil)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.player.CacheDir(), name))
}
