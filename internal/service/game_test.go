package service

import (
	"math/rand"
	"strings"
	"testing"

	"kannadabaruthe/internal/models"
)

func gamePhrases(n int) []models.Phrase {
	phrases := make([]models.Phrase, 0, n)
	words := []string{"ondu", "eradu", "mooru", "nalku"}
	for i := 1; i <= n; i++ {
		phrases = append(phrases, models.Phrase{
			ID:       i,
			En:       "english " + strings.Repeat("x", i),
			Kn:       words[i%len(words)] + " " + words[(i+1)%len(words)],
			Translit: "pa-da-" + words[i%len(words)],
		})
	}
	return phrases
}

func intPtr(i int) *int { return &i }

func TestMatchGame(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	t.Run("deals two cards per phrase", func(t *testing.T) {
		g := newMatchGame(models.GameSpeedMatch, gamePhrases(MatchGamePairs), rng)
		defer g.Close()

		state := g.State()
		if len(state.Cards) != MatchGamePairs*2 {
			t.Fatalf("dealt %d cards, want %d", len(state.Cards), MatchGamePairs*2)
		}
		for _, card := range state.Cards {
			if card.State != models.CardRevealed {
				t.Errorf("speed match card %d should start revealed", card.Index)
			}
		}
		if state.TimeLeft == 0 {
			t.Error("speed match should report time remaining")
		}
	})

	t.Run("matching pair scores and mismatch resets", func(t *testing.T) {
		g := newMatchGame(models.GameSpeedMatch, gamePhrases(MatchGamePairs), rng)
		defer g.Close()

		cards := g.State().Cards
		byPhrase := map[int][]int{}
		for _, card := range cards {
			byPhrase[card.PhraseID] = append(byPhrase[card.PhraseID], card.Index)
		}

		// Match the pair for phrase 1
		pair := byPhrase[1]
		if _, err := g.HandleInput(GameInput{CardIndex: intPtr(pair[0])}); err != nil {
			t.Fatalf("first pick: %v", err)
		}
		state, err := g.HandleInput(GameInput{CardIndex: intPtr(pair[1])})
		if err != nil {
			t.Fatalf("second pick: %v", err)
		}
		if state.Score != MatchPointsPerPair {
			t.Errorf("score = %d, want %d", state.Score, MatchPointsPerPair)
		}
		if state.Cards[pair[0]].State != models.CardMatched || state.Cards[pair[1]].State != models.CardMatched {
			t.Error("matched pair should be marked matched")
		}

		// Mismatch phrase 2 against phrase 3
		if _, err := g.HandleInput(GameInput{CardIndex: intPtr(byPhrase[2][0])}); err != nil {
			t.Fatalf("mismatch first pick: %v", err)
		}
		state, err = g.HandleInput(GameInput{CardIndex: intPtr(byPhrase[3][0])})
		if err != nil {
			t.Fatalf("mismatch second pick: %v", err)
		}
		if state.Score != MatchPointsPerPair {
			t.Errorf("mismatch changed the score to %d", state.Score)
		}
		after := g.State()
		if after.Cards[byPhrase[2][0]].Selected || after.Cards[byPhrase[3][0]].Selected {
			t.Error("mismatched cards should be deselected")
		}
	})

	t.Run("winning ends the game", func(t *testing.T) {
		g := newMatchGame(models.GameSpeedMatch, gamePhrases(MatchGamePairs), rng)
		defer g.Close()

		byPhrase := map[int][]int{}
		for _, card := range g.State().Cards {
			byPhrase[card.PhraseID] = append(byPhrase[card.PhraseID], card.Index)
		}
		for _, pair := range byPhrase {
			g.HandleInput(GameInput{CardIndex: intPtr(pair[0])})
			g.HandleInput(GameInput{CardIndex: intPtr(pair[1])})
		}

		if !g.IsOver() {
			t.Fatal("game should be over after every pair is matched")
		}
		// Base points plus banked seconds
		if g.Score() < MatchGamePairs*MatchPointsPerPair {
			t.Errorf("score = %d, want at least %d", g.Score(), MatchGamePairs*MatchPointsPerPair)
		}
	})

	t.Run("memory grid hides cards after the memorize window", func(t *testing.T) {
		g := newMatchGame(models.GameMemoryGrid, gamePhrases(MatchGamePairs), rng)
		defer g.Close()

		if !g.State().Memorizing {
			t.Fatal("memory grid should start in the memorize window")
		}

		// Inputs during the window are ignored
		state, err := g.HandleInput(GameInput{CardIndex: intPtr(0)})
		if err != nil {
			t.Fatalf("memorize-window input: %v", err)
		}
		if state.Cards[0].Selected {
			t.Error("input during the memorize window should do nothing")
		}

		g.endMemorize()
		state = g.State()
		if state.Memorizing {
			t.Error("memorize window should be closed")
		}
		for _, card := range state.Cards {
			if card.State != models.CardHidden {
				t.Errorf("card %d should be hidden after memorizing", card.Index)
			}
		}
	})

	t.Run("closed game rejects input", func(t *testing.T) {
		g := newMatchGame(models.GameSpeedMatch, gamePhrases(MatchGamePairs), rng)
		g.Close()

		if _, err := g.HandleInput(GameInput{CardIndex: intPtr(0)}); err != ErrNoActiveSession {
			t.Errorf("input after close: error = %v, want ErrNoActiveSession", err)
		}
	})
}

func TestQuizGames(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	t.Run("listen tap asks five questions with four options", func(t *testing.T) {
		g := newListenTapGame(gamePhrases(10), rng)

		state := g.State()
		if state.TotalQuestions != ListenTapQuestions {
			t.Fatalf("total questions = %d, want %d", state.TotalQuestions, ListenTapQuestions)
		}
		if len(state.Question.Options) != ListenTapOptions {
			t.Errorf("options = %d, want %d", len(state.Question.Options), ListenTapOptions)
		}
		if state.Question.PhraseID == 0 {
			t.Error("listen tap question should carry the phrase id for audio")
		}
	})

	t.Run("correct option scores and the game finishes", func(t *testing.T) {
		phrases := gamePhrases(10)
		g := newListenTapGame(phrases, rng)

		answers := map[int]string{}
		for _, p := range phrases {
			answers[p.ID] = p.En
		}

		var state models.GameState
		for !g.IsOver() {
			state = g.State()
			var err error
			state, err = g.HandleInput(GameInput{Option: answers[state.Question.PhraseID]})
			if err != nil {
				t.Fatalf("HandleInput: %v", err)
			}
		}
		if state.Score != ListenTapQuestions*QuizPointsPerAnswer {
			t.Errorf("score = %d, want %d", state.Score, ListenTapQuestions*QuizPointsPerAnswer)
		}
	})

	t.Run("fill blanks blanks one word and offers it", func(t *testing.T) {
		g := newFillBlanksGame(gamePhrases(10), rng)

		state := g.State()
		if !strings.Contains(state.Question.Prompt, "____") {
			t.Errorf("prompt %q should contain a blank", state.Question.Prompt)
		}
		if len(state.Question.Options) != ListenTapOptions {
			t.Errorf("options = %d, want %d", len(state.Question.Options), ListenTapOptions)
		}
	})

	t.Run("sentence builder accepts the reassembled phrase", func(t *testing.T) {
		phrases := gamePhrases(10)
		g := newSentenceBuilderGame(phrases, rng)

		answers := map[int]string{}
		for _, p := range phrases {
			answers[p.ID] = strings.Join(strings.Split(p.Translit, "-"), " ")
		}

		state := g.State()
		if len(state.Question.Tiles) < SentenceMinimumParts {
			t.Fatalf("tiles = %d, want at least %d", len(state.Question.Tiles), SentenceMinimumParts)
		}

		state, err := g.HandleInput(GameInput{Sentence: answers[state.Question.PhraseID]})
		if err != nil {
			t.Fatalf("HandleInput: %v", err)
		}
		if state.Score != QuizPointsPerAnswer {
			t.Errorf("score = %d, want %d", state.Score, QuizPointsPerAnswer)
		}
	})

	t.Run("trivia asks three questions with shuffled options", func(t *testing.T) {
		items := []models.TriviaItem{
			{Question: "q1", Options: []string{"a", "b", "c"}, Answer: "a"},
			{Question: "q2", Options: []string{"a", "b", "c"}, Answer: "b"},
			{Question: "q3", Options: []string{"a", "b", "c"}, Answer: "c"},
			{Question: "q4", Options: []string{"a", "b", "c"}, Answer: "a"},
		}
		g := newTriviaGame(items, rng)

		state := g.State()
		if state.TotalQuestions != TriviaQuestions {
			t.Errorf("total questions = %d, want %d", state.TotalQuestions, TriviaQuestions)
		}
		if len(state.Question.Options) != 3 {
			t.Errorf("options = %d, want 3", len(state.Question.Options))
		}
	})

	t.Run("blank answer is rejected", func(t *testing.T) {
		g := newListenTapGame(gamePhrases(10), rng)
		if _, err := g.HandleInput(GameInput{}); !IsFormatError(err) {
			t.Errorf("blank answer: error = %v, want FormatError", err)
		}
	})
}
