package service

import (
	"math/rand"
	"strings"

	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/repository"
)

// Per-variant content requirements
const (
	MatchGamePairs       = 8
	ListenTapQuestions   = 5
	ListenTapOptions     = 4
	FillBlanksQuestions  = 5
	SentenceQuestions    = 5
	TriviaQuestions      = 3
	MatchPointsPerPair   = 10
	QuizPointsPerAnswer  = 10
	SentenceMinimumParts = 3
)

// GameInput carries one learner move into a game session. Exactly one field
// is meaningful per variant: CardIndex for the matching games, Option for the
// multiple-choice games, Sentence for the sentence builder.
type GameInput struct {
	CardIndex *int   `json:"cardIndex,omitempty"`
	Option    string `json:"option,omitempty"`
	Sentence  string `json:"sentence,omitempty"`
}

// GameSession is one running game variant. Sessions are owned by the session
// manager; timers inside a session synchronize internally.
type GameSession interface {
	Kind() models.GameKind
	State() models.GameState
	HandleInput(input GameInput) (models.GameState, error)
	IsOver() bool
	Score() int
	Close()
}

// GameService builds game sessions from the learner's mastered phrases
type GameService struct {
	lessonSvc   *LessonService
	contentRepo *repository.ContentRepository
	rng         *rand.Rand
}

// NewGameService creates a new game service
func NewGameService(lessonSvc *LessonService, contentRepo *repository.ContentRepository, rng *rand.Rand) *GameService {
	return &GameService{
		lessonSvc:   lessonSvc,
		contentRepo: contentRepo,
		rng:         rng,
	}
}

// StartGame builds a session for the given variant. Every variant except
// trivia sits behind the learned-word gate; each variant additionally needs
// enough suitable material to fill its board or question list.
func (s *GameService) StartGame(kind models.GameKind) (GameSession, error) {
	if kind == models.GameTrivia {
		return s.startTrivia()
	}

	profile, err := s.lessonSvc.GetOrCreateProfile()
	if err != nil {
		return nil, err
	}
	if !CanAccessGames(profile) {
		return nil, ErrGamesLocked
	}

	learned, err := s.lessonSvc.LearnedPhrases()
	if err != nil {
		return nil, err
	}

	switch kind {
	case models.GameSpeedMatch, models.GameMemoryGrid:
		if len(learned) < MatchGamePairs {
			return nil, &InsufficientContentError{Game: string(kind), Required: MatchGamePairs, Have: len(learned)}
		}
		return newMatchGame(kind, s.pickPhrases(learned, MatchGamePairs), s.rng), nil
	case models.GameListenTap:
		if len(learned) < ListenTapOptions {
			return nil, &InsufficientContentError{Game: string(kind), Required: ListenTapOptions, Have: len(learned)}
		}
		return newListenTapGame(learned, s.rng), nil
	case models.GameFillBlanks:
		suitable := multiWordPhrases(learned)
		if len(suitable) < FillBlanksQuestions {
			return nil, &InsufficientContentError{Game: string(kind), Required: FillBlanksQuestions, Have: len(suitable)}
		}
		return newFillBlanksGame(suitable, s.rng), nil
	case models.GameSentenceBuilder:
		suitable := builderPhrases(learned)
		if len(suitable) < SentenceQuestions {
			return nil, &InsufficientContentError{Game: string(kind), Required: SentenceQuestions, Have: len(suitable)}
		}
		return newSentenceBuilderGame(suitable, s.rng), nil
	default:
		return nil, &NotFoundError{Kind: "game", ID: string(kind)}
	}
}

func (s *GameService) startTrivia() (GameSession, error) {
	items, err := s.contentRepo.ListTrivia()
	if err != nil {
		return nil, err
	}
	if len(items) < TriviaMinimumItems {
		return nil, &InsufficientContentError{Game: string(models.GameTrivia), Required: TriviaMinimumItems, Have: len(items)}
	}
	return newTriviaGame(items, s.rng), nil
}

// pickPhrases returns n phrases drawn uniformly without replacement
func (s *GameService) pickPhrases(phrases []models.Phrase, n int) []models.Phrase {
	shuffled := append([]models.Phrase(nil), phrases...)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// multiWordPhrases keeps phrases whose Kannada text has more than one word,
// so one word can be blanked out
func multiWordPhrases(phrases []models.Phrase) []models.Phrase {
	var suitable []models.Phrase
	for _, p := range phrases {
		if len(strings.Fields(p.Kn)) > 1 {
			suitable = append(suitable, p)
		}
	}
	return suitable
}

// builderPhrases keeps phrases whose transliteration splits into more than
// two hyphenated parts, enough to make reassembly a puzzle
func builderPhrases(phrases []models.Phrase) []models.Phrase {
	var suitable []models.Phrase
	for _, p := range phrases {
		if len(strings.Split(p.Translit, "-")) >= SentenceMinimumParts {
			suitable = append(suitable, p)
		}
	}
	return suitable
}
