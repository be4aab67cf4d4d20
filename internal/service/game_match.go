package service

import (
	"math/rand"
	"sync"
	"time"

	"kannadabaruthe/internal/models"
)

const (
	speedMatchDuration = 60 * time.Second
	memorizeWindow     = 5 * time.Second
)

// matchGame implements Speed Match and Memory Grid. Both deal the same board
// of paired cards; they differ in visibility and in the clock. Speed Match
// keeps every card face up and races a countdown. Memory Grid hides the
// board after a short memorize window and has no countdown.
type matchGame struct {
	mu   sync.Mutex
	kind models.GameKind

	cards    []models.Card
	selected int
	pairs    int
	matched  int
	score    int
	over     bool

	memorizing bool
	deadline   time.Time
	timer      *time.Timer
}

// newMatchGame deals a board of len(phrases) pairs and starts the clock for
// the chosen variant
func newMatchGame(kind models.GameKind, phrases []models.Phrase, rng *rand.Rand) *matchGame {
	cards := make([]models.Card, 0, len(phrases)*2)
	for _, p := range phrases {
		cards = append(cards,
			models.Card{PhraseID: p.ID, Text: p.En, Side: models.CardSideEnglish},
			models.Card{PhraseID: p.ID, Text: p.Kn, Side: models.CardSideKannada},
		)
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	for i := range cards {
		cards[i].Index = i
	}

	g := &matchGame{
		kind:     kind,
		cards:    cards,
		selected: -1,
		pairs:    len(phrases),
	}

	switch kind {
	case models.GameSpeedMatch:
		for i := range g.cards {
			g.cards[i].State = models.CardRevealed
		}
		g.deadline = time.Now().Add(speedMatchDuration)
		g.timer = time.AfterFunc(speedMatchDuration, g.expire)
	case models.GameMemoryGrid:
		// Face up during the memorize window, then hidden
		for i := range g.cards {
			g.cards[i].State = models.CardRevealed
		}
		g.memorizing = true
		g.timer = time.AfterFunc(memorizeWindow, g.endMemorize)
	}
	return g
}

func (g *matchGame) Kind() models.GameKind {
	return g.kind
}

func (g *matchGame) State() models.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *matchGame) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over
}

func (g *matchGame) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// Close stops the clock without awarding anything
func (g *matchGame) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.over = true
	g.stopTimerLocked()
}

// HandleInput selects the card at input.CardIndex. A second selection either
// matches the pair or resets both cards.
func (g *matchGame) HandleInput(input GameInput) (models.GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return g.snapshot(), ErrNoActiveSession
	}
	if g.memorizing {
		// Inputs during the memorize window do nothing
		return g.snapshot(), nil
	}
	if input.CardIndex == nil {
		return g.snapshot(), formatErrorf("a card index is required")
	}
	idx := *input.CardIndex
	if idx < 0 || idx >= len(g.cards) {
		return g.snapshot(), formatErrorf("card index out of range: %d", idx)
	}

	card := &g.cards[idx]
	if card.State == models.CardMatched || idx == g.selected {
		return g.snapshot(), nil
	}

	card.Selected = true
	if g.kind == models.GameMemoryGrid {
		card.State = models.CardRevealed
	}

	if g.selected < 0 {
		g.selected = idx
		return g.snapshot(), nil
	}

	first := &g.cards[g.selected]
	g.selected = -1
	if first.PhraseID == card.PhraseID {
		first.State = models.CardMatched
		card.State = models.CardMatched
		first.Selected = false
		card.Selected = false
		g.matched++
		g.score += MatchPointsPerPair
		if g.matched == g.pairs {
			g.finishLocked()
		}
		return g.snapshot(), nil
	}

	// Mismatch: snapshot first so the learner sees both picks, then reset
	state := g.snapshot()
	first.Selected = false
	card.Selected = false
	if g.kind == models.GameMemoryGrid {
		first.State = models.CardHidden
		card.State = models.CardHidden
	}
	return state, nil
}

// finishLocked ends a won board. Speed Match banks the remaining seconds.
func (g *matchGame) finishLocked() {
	if g.kind == models.GameSpeedMatch {
		if remaining := int(time.Until(g.deadline).Seconds()); remaining > 0 {
			g.score += remaining
		}
	}
	g.over = true
	g.stopTimerLocked()
}

// expire fires when the Speed Match countdown runs out
func (g *matchGame) expire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.over {
		g.over = true
	}
}

// endMemorize hides the Memory Grid board when the memorize window closes
func (g *matchGame) endMemorize() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.over || !g.memorizing {
		return
	}
	g.memorizing = false
	for i := range g.cards {
		g.cards[i].State = models.CardHidden
	}
}

func (g *matchGame) stopTimerLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

func (g *matchGame) snapshot() models.GameState {
	state := models.GameState{
		Kind:       g.kind,
		Score:      g.score,
		Over:       g.over,
		Cards:      append([]models.Card(nil), g.cards...),
		Memorizing: g.memorizing,
	}
	if g.kind == models.GameSpeedMatch && !g.over {
		if remaining := int(time.Until(g.deadline).Seconds()); remaining > 0 {
			state.TimeLeft = remaining
		}
	}
	return state
}
