package service

import (
	"math/rand"
	"strings"
	"sync"

	"kannadabaruthe/internal/models"
)

// quizGame implements the four question-driven variants: Listen & Tap,
// Fill in the Blanks, Sentence Builder and Trivia. Each is a fixed list of
// prepared questions answered in order.
type quizGame struct {
	mu   sync.Mutex
	kind models.GameKind

	questions []quizQuestion
	index     int
	score     int
	over      bool
}

type quizQuestion struct {
	question models.GameQuestion
	answer   string
}

func newQuizGame(kind models.GameKind, questions []quizQuestion) *quizGame {
	return &quizGame{kind: kind, questions: questions}
}

func (g *quizGame) Kind() models.GameKind {
	return g.kind
}

func (g *quizGame) State() models.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *quizGame) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over
}

func (g *quizGame) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

func (g *quizGame) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.over = true
}

// HandleInput grades the answer to the current question and advances.
// Multiple-choice variants read input.Option; the sentence builder reads
// input.Sentence.
func (g *quizGame) HandleInput(input GameInput) (models.GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return g.snapshot(), ErrNoActiveSession
	}

	answer := input.Option
	if g.kind == models.GameSentenceBuilder {
		answer = input.Sentence
	}
	if strings.TrimSpace(answer) == "" {
		return g.snapshot(), formatErrorf("an answer is required")
	}

	if normalizeAnswer(answer) == normalizeAnswer(g.questions[g.index].answer) {
		g.score += QuizPointsPerAnswer
	}
	g.index++
	if g.index >= len(g.questions) {
		g.over = true
	}
	return g.snapshot(), nil
}

func (g *quizGame) snapshot() models.GameState {
	state := models.GameState{
		Kind:           g.kind,
		Score:          g.score,
		Over:           g.over,
		QuestionIndex:  g.index,
		TotalQuestions: len(g.questions),
	}
	if !g.over {
		q := g.questions[g.index].question
		state.Question = &q
	}
	return state
}

func normalizeAnswer(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// newListenTapGame builds questions that play a Kannada phrase and offer
// four English options
func newListenTapGame(learned []models.Phrase, rng *rand.Rand) *quizGame {
	pool := shufflePhrases(learned, rng)
	count := ListenTapQuestions
	if count > len(pool) {
		count = len(pool)
	}

	questions := make([]quizQuestion, 0, count)
	for _, target := range pool[:count] {
		options := []string{target.En}
		for _, d := range pickDistractors(pool, target.ID, ListenTapOptions-1, rng) {
			options = append(options, d.En)
		}
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		questions = append(questions, quizQuestion{
			question: models.GameQuestion{
				Prompt:   target.Kn,
				Options:  options,
				PhraseID: target.ID,
			},
			answer: target.En,
		})
	}
	return newQuizGame(models.GameListenTap, questions)
}

// newFillBlanksGame blanks one word out of a multi-word Kannada phrase and
// offers the missing word among distractor words drawn from other phrases
func newFillBlanksGame(suitable []models.Phrase, rng *rand.Rand) *quizGame {
	pool := shufflePhrases(suitable, rng)
	count := FillBlanksQuestions
	if count > len(pool) {
		count = len(pool)
	}

	questions := make([]quizQuestion, 0, count)
	for _, target := range pool[:count] {
		words := strings.Fields(target.Kn)
		blank := rng.Intn(len(words))
		answer := words[blank]

		display := append([]string(nil), words...)
		display[blank] = "____"

		options := []string{answer}
		for _, d := range pickDistractors(pool, target.ID, ListenTapOptions-1, rng) {
			distractorWords := strings.Fields(d.Kn)
			options = append(options, distractorWords[rng.Intn(len(distractorWords))])
		}
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, quizQuestion{
			question: models.GameQuestion{
				Prompt:   target.En + " = " + strings.Join(display, " "),
				Options:  options,
				PhraseID: target.ID,
			},
			answer: answer,
		})
	}
	return newQuizGame(models.GameFillBlanks, questions)
}

// newSentenceBuilderGame scatters the hyphenated transliteration parts as
// tiles; the learner reassembles the phrase
func newSentenceBuilderGame(suitable []models.Phrase, rng *rand.Rand) *quizGame {
	pool := shufflePhrases(suitable, rng)
	count := SentenceQuestions
	if count > len(pool) {
		count = len(pool)
	}

	questions := make([]quizQuestion, 0, count)
	for _, target := range pool[:count] {
		parts := strings.Split(target.Translit, "-")
		tiles := append([]string(nil), parts...)
		rng.Shuffle(len(tiles), func(i, j int) {
			tiles[i], tiles[j] = tiles[j], tiles[i]
		})
		questions = append(questions, quizQuestion{
			question: models.GameQuestion{
				Prompt:   target.En,
				Tiles:    tiles,
				PhraseID: target.ID,
			},
			answer: strings.Join(parts, " "),
		})
	}
	return newQuizGame(models.GameSentenceBuilder, questions)
}

// newTriviaGame asks a random subset of the trivia pool with shuffled options
func newTriviaGame(items []models.TriviaItem, rng *rand.Rand) *quizGame {
	pool := append([]models.TriviaItem(nil), items...)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	count := TriviaQuestions
	if count > len(pool) {
		count = len(pool)
	}

	questions := make([]quizQuestion, 0, count)
	for _, item := range pool[:count] {
		options := append([]string(nil), item.Options...)
		rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
		questions = append(questions, quizQuestion{
			question: models.GameQuestion{
				Prompt:  item.Question,
				Options: options,
			},
			answer: item.Answer,
		})
	}
	return newQuizGame(models.GameTrivia, questions)
}

func shufflePhrases(phrases []models.Phrase, rng *rand.Rand) []models.Phrase {
	shuffled := append([]models.Phrase(nil), phrases...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// pickDistractors draws n phrases other than the target, without replacement
func pickDistractors(pool []models.Phrase, targetID, n int, rng *rand.Rand) []models.Phrase {
	candidates := make([]models.Phrase, 0, len(pool))
	for _, p := range pool {
		if p.ID != targetID {
			candidates = append(candidates, p)
		}
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[:n]
}
