package models

// Phrase represents one vocabulary unit inside a module
type Phrase struct {
	ID       int    `json:"id"`
	En       string `json:"en"`
	Kn       string `json:"kn"`
	Translit string `json:"translit"`
	// AudioData is an opaque reference to a recorded pronunciation
	// (a URL or a file path under the audio cache dir)
	AudioData string `json:"audioData,omitempty"`
}

// Module represents a thematic collection of phrases (e.g. "Greetings")
type Module struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Icon    string   `json:"icon"`
	Phrases []Phrase `json:"phrases"`
}

// TriviaItem represents one trivia question shown after lessons or in the trivia game
type TriviaItem struct {
	Question string   `json:"q"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// PhraseByID finds a phrase in the module by its id
func (m *Module) PhraseByID(id int) (Phrase, bool) {
	for _, p := range m.Phrases {
		if p.ID == id {
			return p, true
		}
	}
	return Phrase{}, false
}

// NextPhraseID returns the id a newly authored phrase should get
func (m *Module) NextPhraseID() int {
	if len(m.Phrases) == 0 {
		return 1
	}
	max := m.Phrases[0].ID
	for _, p := range m.Phrases[1:] {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
