package audio

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"kannadabaruthe/internal/models"
)

// PlaybackError reports that every strategy in the chain failed
type PlaybackError struct {
	Attempts []string
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("audio playback failed: %s", strings.Join(e.Attempts, "; "))
}

// Strategy is one way of producing audio for a phrase. Strategies report
// failure without aborting the chain; the player tries the next one.
type Strategy interface {
	Name() string

	// Available reports whether the strategy can serve this phrase at all
	Available(phrase models.Phrase, useGoogleTTS bool) bool

	// Synthesize produces an audio file in the cache dir and returns its
	// filename (not full path)
	Synthesize(ctx context.Context, phrase models.Phrase) (string, error)
}

// Player resolves phrase audio through an ordered chain of strategies:
// recorded audio, then cloud text-to-speech, then the free fallback voice.
type Player struct {
	cacheDir   string
	strategies []Strategy

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewPlayer creates a player over the given strategy chain
func NewPlayer(cacheDir string, strategies ...Strategy) (*Player, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio cache dir: %w", err)
	}
	return &Player{cacheDir: cacheDir, strategies: strategies}, nil
}

// CacheDir returns the directory synthesized audio files are written to
func (p *Player) CacheDir() string {
	return p.cacheDir
}

// Play resolves audio for the phrase and returns the cached filename.
// Each strategy failure falls through to the next; only total failure
// surfaces as a PlaybackError.
func (p *Player) Play(ctx context.Context, phrase models.Phrase, useGoogleTTS bool) (string, error) {
	p.Stop()

	ctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	defer p.clearCancel(cancel)

	var attempts []string
	for _, strategy := range p.strategies {
		if !strategy.Available(phrase, useGoogleTTS) {
			continue
		}
		filename, err := strategy.Synthesize(ctx, phrase)
		if err == nil {
			return filename, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("Audio strategy %s failed for phrase %d: %v", strategy.Name(), phrase.ID, err)
		attempts = append(attempts, fmt.Sprintf("%s: %v", strategy.Name(), err))
	}

	return "", &PlaybackError{Attempts: attempts}
}

// Stop cancels any in-flight synthesis unconditionally
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Player) clearCancel(cancel context.CancelFunc) {
	p.mu.Lock()
	p.cancel = nil
	p.mu.Unlock()
	cancel()
}
