package models

// LessonState represents the current state of a lesson session as shown to the learner
type LessonState struct {
	ModuleID     string `json:"moduleId"`
	ModuleTitle  string `json:"moduleTitle"`
	Phrase       Phrase `json:"phrase"`
	Position     int    `json:"position"`
	TotalPhrases int    `json:"totalPhrases"`
	IsFlipped    bool   `json:"isFlipped"`
	Ended        bool   `json:"ended"`
	// AudioFile names the cached audio for the revealed card, if any
	AudioFile string `json:"audioFile,omitempty"`
	// Trivia is set on the ended state when a trivia item is available
	Trivia *TriviaItem `json:"trivia,omitempty"`
}

// ProgressLogEntry records one active day in the progressLog store
type ProgressLogEntry struct {
	Date    string `json:"date"`
	Answers int    `json:"answers"`
	Correct int    `json:"correct"`
}
