package game

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/pkg/uid"
)

var ErrSessionNotFound = errors.New("game not found")

// Notifier receives a snapshot after every change to a session.
type Notifier interface {
	Notify(snapshot Snapshot)
}

// Notifiers fans a snapshot out to several notifiers in order.
type Notifiers []Notifier

func (n Notifiers) Notify(snapshot Snapshot) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.Notify(snapshot)
		}
	}
}

// SessionManager manages active game sessions
type SessionManager struct {
	Session  map[string]*Session // gameID → Session
	mu       sync.RWMutex
	colors   Colors
	notifier Notifier
}

// NewSessionManager creates an empty registry. colors are the display colors
// new games start with; notifier may be nil.
func NewSessionManager(colors Colors, notifier Notifier) *SessionManager {
	return &SessionManager{
		Session:  make(map[string]*Session),
		colors:   colors,
		notifier: notifier,
	}
}

// CreateSession starts a new independent game and returns its handle.
// Boards larger than domain.MaxSize in either direction are refused.
func (sm *SessionManager) CreateSession(width, height int) (*Session, error) {
	if width > domain.MaxSize || height > domain.MaxSize {
		return nil, domain.ErrBoardTooLarge
	}

	newGame, err := domain.NewGame(width, height)
	if err != nil {
		return nil, err
	}

	gameID, err := uid.GenerateGameID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		GameID:       gameID,
		Game:         newGame,
		Colors:       sm.colors,
		CreatedAt:    now,
		LastActivity: now,
		notifier:     sm.notifier,
	}

	sm.mu.Lock()
	sm.Session[session.GameID] = session
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s (%dx%d)", session.GameID, width, height)
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.Session[gameID]; !exists {
		return ErrSessionNotFound
	}

	log.Printf("[SESSION] Removing session %s", gameID)
	delete(sm.Session, gameID)
	return nil
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// ActiveSessions returns a snapshot of every live game, oldest first.
func (sm *SessionManager) ActiveSessions() []Snapshot {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.Session))
	for _, session := range sm.Session {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	snapshots := make([]Snapshot, 0, len(sessions))
	for _, session := range sessions {
		snapshots = append(snapshots, session.Snapshot())
	}

	sort.Slice(snapshots, func(i, j int) bool {
		if snapshots[i].CreatedAt.Equal(snapshots[j].CreatedAt) {
			return snapshots[i].GameID < snapshots[j].GameID
		}
		return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
	})
	return snapshots
}

// CleanupIdleSessions drops every session untouched for longer than maxIdle
// and returns how many were removed.
// Session locks are only taken while the registry lock is released.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.Session))
	for _, session := range sm.Session {
		sessions = append(sessions, session)
	}
	sm.mu.RUnlock()

	now := time.Now()
	idle := make([]*Session, 0)
	for _, session := range sessions {
		if now.Sub(session.lastActivity()) > maxIdle {
			idle = append(idle, session)
		}
	}

	count := 0
	sm.mu.Lock()
	for _, session := range idle {
		// Skip sessions already removed or replaced meanwhile.
		if sm.Session[session.GameID] == session {
			delete(sm.Session, session.GameID)
			count++
		}
	}
	sm.mu.Unlock()

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d idle game sessions", count)
	}
	return count
}
