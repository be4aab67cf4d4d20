package models

// GameKind identifies one of the six game variants
type GameKind string

const (
	GameSpeedMatch      GameKind = "speed-match"
	GameMemoryGrid      GameKind = "memory-grid"
	GameListenTap       GameKind = "listen-tap"
	GameFillBlanks      GameKind = "fill-blanks"
	GameSentenceBuilder GameKind = "sentence-builder"
	GameTrivia          GameKind = "trivia"
)

// CardSide distinguishes the two faces of a matching pair
type CardSide string

const (
	CardSideEnglish CardSide = "en"
	CardSideKannada CardSide = "kn"
)

// CardState is the reveal state of a card in the matching games
type CardState string

const (
	CardHidden   CardState = "hidden"
	CardRevealed CardState = "revealed"
	CardMatched  CardState = "matched"
)

// Card represents one tile in Speed Match and Memory Grid
type Card struct {
	Index    int       `json:"index"`
	PhraseID int       `json:"phraseId"`
	Text     string    `json:"text"`
	Side     CardSide  `json:"side"`
	State    CardState `json:"state"`
	Selected bool      `json:"selected"`
}

// GameQuestion represents one question in the quiz-style games
type GameQuestion struct {
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options,omitempty"`
	Tiles    []string `json:"tiles,omitempty"`
	PhraseID int      `json:"phraseId,omitempty"`
}

// GameState is the snapshot of an active game session returned to the learner.
// Fields not used by a variant are left at their zero value.
type GameState struct {
	Kind           GameKind      `json:"kind"`
	Score          int           `json:"score"`
	Over           bool          `json:"over"`
	Cards          []Card        `json:"cards,omitempty"`
	TimeLeft       int           `json:"timeLeft,omitempty"`
	Memorizing     bool          `json:"memorizing,omitempty"`
	Question       *GameQuestion `json:"question,omitempty"`
	QuestionIndex  int           `json:"questionIndex,omitempty"`
	TotalQuestions int           `json:"totalQuestions,omitempty"`
}
