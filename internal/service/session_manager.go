package service

import (
	"sync"

	"kannadabaruthe/internal/models"
)

// SessionManager owns the single active session. The application is built
// for one learner, so starting any lesson or game tears down whatever was
// running before. All lesson transitions run under the manager's lock;
// game sessions additionally synchronize internally because their timers
// fire outside it.
type SessionManager struct {
	mu     sync.Mutex
	lesson *LessonSession
	game   GameSession
}

// NewSessionManager creates an empty session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// StartLesson replaces any active session with the new lesson
func (m *SessionManager) StartLesson(session *LessonSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
	m.lesson = session
}

// StartGame replaces any active session with the new game
func (m *SessionManager) StartGame(session GameSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
	m.game = session
}

// WithLesson runs fn against the active lesson under the manager's lock
func (m *SessionManager) WithLesson(fn func(*LessonSession) (models.LessonState, error)) (models.LessonState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lesson == nil {
		return models.LessonState{}, ErrNoActiveSession
	}
	return fn(m.lesson)
}

// ActiveGame returns the running game session, or ErrNoActiveSession
func (m *SessionManager) ActiveGame() (GameSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.game == nil {
		return nil, ErrNoActiveSession
	}
	return m.game, nil
}

// EndActive tears down whatever session is running
func (m *SessionManager) EndActive() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
}

// teardownLocked closes the active session, stopping its timers and audio
func (m *SessionManager) teardownLocked() {
	if m.lesson != nil {
		m.lesson.Close()
		m.lesson = nil
	}
	if m.game != nil {
		m.game.Close()
		m.game = nil
	}
}
