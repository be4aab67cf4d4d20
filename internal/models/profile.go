package models

// ProfileKey is the fixed key of the singleton profile record in the userData store
const ProfileKey = "profile"

// Accuracy holds the learner's cumulative answer counters
type Accuracy struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Profile represents the learner's persisted progress state
type Profile struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Streak       int      `json:"streak"`
	WordsLearned []int    `json:"wordsLearned"`
	Accuracy     Accuracy `json:"accuracy"`
	UseGoogleTTS bool     `json:"useGoogleTTS"`
}

// DefaultProfile returns the profile created on first run and after a full reset
func DefaultProfile() *Profile {
	return &Profile{
		Key:          ProfileKey,
		Name:         "Cara",
		Streak:       0,
		WordsLearned: []int{},
		Accuracy:     Accuracy{Correct: 0, Total: 0},
		UseGoogleTTS: false,
	}
}

// HasLearned reports whether the phrase id is in the learned set
func (p *Profile) HasLearned(phraseID int) bool {
	for _, id := range p.WordsLearned {
		if id == phraseID {
			return true
		}
	}
	return false
}

// LearnedSet returns the learned ids as a set for fast membership checks
func (p *Profile) LearnedSet() map[int]bool {
	set := make(map[int]bool, len(p.WordsLearned))
	for _, id := range p.WordsLearned {
		set[id] = true
	}
	return set
}

// AccuracyPercent returns the rounded cumulative accuracy, 0 when nothing answered yet
func (p *Profile) AccuracyPercent() int {
	if p.Accuracy.Total == 0 {
		return 0
	}
	return int(float64(p.Accuracy.Correct)/float64(p.Accuracy.Total)*100 + 0.5)
}
