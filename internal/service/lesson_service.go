package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"kannadabaruthe/internal/audio"
	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/repository"
)

// LessonService drives flashcard lesson sessions and the mastery write-back
type LessonService struct {
	progressRepo *repository.ProgressRepository
	contentRepo  *repository.ContentRepository
	player       *audio.Player
	rng          *rand.Rand
	now          func() time.Time
}

// NewLessonService creates a new lesson service
func NewLessonService(progressRepo *repository.ProgressRepository, contentRepo *repository.ContentRepository, player *audio.Player, rng *rand.Rand) *LessonService {
	return &LessonService{
		progressRepo: progressRepo,
		contentRepo:  contentRepo,
		player:       player,
		rng:          rng,
		now:          time.Now,
	}
}

// GetOrCreateProfile loads the learner profile, creating the default on first run
func (s *LessonService) GetOrCreateProfile() (*models.Profile, error) {
	profile, err := s.progressRepo.GetProfile()
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = models.DefaultProfile()
		if err := s.progressRepo.PutProfile(profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// StartLesson selects a working set from the module and opens a new session
func (s *LessonService) StartLesson(moduleID string) (*LessonSession, error) {
	s.player.Stop()

	module, err := s.contentRepo.GetModule(moduleID)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, &NotFoundError{Kind: "module", ID: moduleID}
	}
	if len(module.Phrases) == 0 {
		return nil, ErrNoPhrases
	}

	profile, err := s.GetOrCreateProfile()
	if err != nil {
		return nil, err
	}

	phrases := SelectLessonPhrases(module.Phrases, profile.LearnedSet(), LessonSize, s.rng)

	return &LessonSession{
		ID:      uuid.New().String(),
		svc:     s,
		module:  module,
		phrases: phrases,
	}, nil
}

// recordAnswer applies one answer to the profile and the daily progress log
func (s *LessonService) recordAnswer(correct bool, phraseID int) error {
	profile, err := s.GetOrCreateProfile()
	if err != nil {
		return err
	}

	updated := RecordAnswer(profile, correct, phraseID)
	if err := s.progressRepo.PutProfile(updated); err != nil {
		return err
	}

	date := s.now().Format("2006-01-02")
	entry, err := s.progressRepo.GetLogEntry(date)
	if err != nil {
		return err
	}
	if entry == nil {
		entry = &models.ProgressLogEntry{Date: date}
	}
	entry.Answers++
	if correct {
		entry.Correct++
	}
	return s.progressRepo.PutLogEntry(entry)
}

// finishLesson updates the streak counter and picks the end-of-lesson trivia
func (s *LessonService) finishLesson() *models.TriviaItem {
	s.player.Stop()

	if profile, err := s.GetOrCreateProfile(); err == nil {
		entries, err := s.progressRepo.GetAll(repository.StoreProgressLog)
		if err == nil {
			profile.Streak = streakFromLog(entries, s.now())
			if err := s.progressRepo.PutProfile(profile); err != nil {
				log.Printf("Failed to update streak: %v", err)
			}
		}
	}

	items, err := s.contentRepo.ListTrivia()
	if err != nil || len(items) == 0 {
		return nil
	}
	item := items[s.rng.Intn(len(items))]
	return &item
}

// streakFromLog counts consecutive active days ending today
func streakFromLog(entries []models.Record, now time.Time) int {
	active := make(map[string]bool, len(entries))
	for _, record := range entries {
		if date, ok := record["date"].(string); ok {
			active[date] = true
		}
	}

	streak := 0
	day := now
	for active[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// RenameProfile changes the learner's display name
func (s *LessonService) RenameProfile(name string) (*models.Profile, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, formatErrorf("a profile name must not be blank")
	}

	profile, err := s.GetOrCreateProfile()
	if err != nil {
		return nil, err
	}
	profile.Name = trimmed
	return profile, s.progressRepo.PutProfile(profile)
}

// SetGoogleTTS flips the learner's cloud text-to-speech preference
func (s *LessonService) SetGoogleTTS(enabled bool) (*models.Profile, error) {
	profile, err := s.GetOrCreateProfile()
	if err != nil {
		return nil, err
	}
	profile.UseGoogleTTS = enabled
	return profile, s.progressRepo.PutProfile(profile)
}

// LearnedPhrases collects every learned phrase across all modules,
// in module order
func (s *LessonService) LearnedPhrases() ([]models.Phrase, error) {
	profile, err := s.GetOrCreateProfile()
	if err != nil {
		return nil, err
	}
	learned := profile.LearnedSet()

	modules, err := s.contentRepo.ListModules()
	if err != nil {
		return nil, err
	}

	var phrases []models.Phrase
	for _, module := range modules {
		for _, p := range module.Phrases {
			if learned[p.ID] {
				phrases = append(phrases, p)
			}
		}
	}
	return phrases, nil
}

// LessonSession is one bounded flashcard session. It is owned by the session
// manager; all transitions run under the manager's lock.
type LessonSession struct {
	ID      string
	svc     *LessonService
	module  *models.Module
	phrases []models.Phrase

	position  int
	flipped   bool
	ended     bool
	audioFile string
	trivia    *models.TriviaItem
}

// State returns the session snapshot shown to the learner
func (sess *LessonSession) State() models.LessonState {
	state := models.LessonState{
		ModuleID:     sess.module.ID,
		ModuleTitle:  sess.module.Title,
		Position:     sess.position,
		TotalPhrases: len(sess.phrases),
		IsFlipped:    sess.flipped,
		Ended:        sess.ended,
		AudioFile:    sess.audioFile,
		Trivia:       sess.trivia,
	}
	if !sess.ended {
		state.Phrase = sess.phrases[sess.position]
		if !sess.flipped {
			// Front of the card: keep the answer hidden
			state.Phrase.Kn = ""
			state.Phrase.Translit = ""
		}
	}
	return state
}

// Flip toggles the card side. Revealing the back plays the phrase audio
// best-effort; hiding it cancels any in-flight audio.
func (sess *LessonSession) Flip(ctx context.Context) (models.LessonState, error) {
	if sess.ended {
		return sess.State(), ErrNoActiveSession
	}

	sess.flipped = !sess.flipped
	if sess.flipped {
		phrase := sess.phrases[sess.position]
		profile, err := sess.svc.GetOrCreateProfile()
		useTTS := err == nil && profile.UseGoogleTTS
		filename, playErr := sess.svc.player.Play(ctx, phrase, useTTS)
		if playErr != nil {
			// Playback failures never interrupt the lesson
			log.Printf("Lesson audio unavailable for phrase %d: %v", phrase.ID, playErr)
			filename = ""
		}
		sess.audioFile = filename
	} else {
		sess.svc.player.Stop()
		sess.audioFile = ""
	}
	return sess.State(), nil
}

// Answer records the outcome for the current phrase and advances the session.
// Answering is the only way forward; the write-back is issued before the next
// phrase is presented.
func (sess *LessonSession) Answer(correct bool) (models.LessonState, error) {
	if sess.ended {
		return sess.State(), ErrNoActiveSession
	}

	sess.svc.player.Stop()
	phrase := sess.phrases[sess.position]
	if err := sess.svc.recordAnswer(correct, phrase.ID); err != nil {
		return sess.State(), fmt.Errorf("failed to record answer: %w", err)
	}

	sess.position++
	sess.flipped = false
	sess.audioFile = ""
	if sess.position >= len(sess.phrases) {
		sess.ended = true
		sess.trivia = sess.svc.finishLesson()
	}
	return sess.State(), nil
}

// Close discards the session, stopping any in-flight audio
func (sess *LessonSession) Close() {
	sess.svc.player.Stop()
	sess.ended = true
}
