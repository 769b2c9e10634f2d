package game

import (
	"log"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/iamasit07/connect4/internal/domain"
)

// Colors are the display attributes the UI attaches to each mark.
type Colors struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

func (c Colors) For(mark domain.Mark) string {
	switch mark {
	case domain.Player1:
		return c.Player1
	case domain.Player2:
		return c.Player2
	}
	return ""
}

// Snapshot is a read-only copy of a session, safe to hand to renderers.
type Snapshot struct {
	GameID        string            `json:"gameId"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Board         domain.Board      `json:"board"`
	CurrentPlayer domain.Mark       `json:"currentPlayer"`
	Status        domain.GameStatus `json:"status"`
	Winner        domain.Mark       `json:"winner"`
	MoveCount     int               `json:"moveCount"`
	ValidMoves    []int             `json:"validMoves"`
	LastRow       int               `json:"lastRow"`
	LastColumn    int               `json:"lastColumn"`
	Colors        Colors            `json:"colors"`
	Message       string            `json:"message,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Session wraps one game. Every method takes mu, so callers from several
// goroutines are processed one move at a time.
type Session struct {
	GameID       string
	Game         *domain.Game
	Colors       Colors
	CreatedAt    time.Time
	LastActivity time.Time
	mu           sync.Mutex
	notifier     Notifier
}

// DropPiece plays the current player's piece into column.
func (s *Session) DropPiece(column int) (domain.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.Game.DropPiece(column)
	if err != nil {
		return result, err
	}

	s.LastActivity = time.Now()
	switch result.Outcome {
	case domain.OutcomeWon:
		log.Printf("[SESSION] Game %s won by %s after %d moves", s.GameID, result.Player, s.Game.MoveCount)
	case domain.OutcomeTie:
		log.Printf("[SESSION] Game %s ended in a tie", s.GameID)
	}

	s.notifyLocked()
	return result, nil
}

func (s *Session) Cell(row, column int) (domain.Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Game.Cell(row, column)
}

// Reset starts a fresh game with the same dimensions and colors.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Game.Reset()
	s.LastActivity = time.Now()
	log.Printf("[SESSION] Game %s reset", s.GameID)
	s.notifyLocked()
}

// SetColors updates the display colors. Empty values keep the current color.
func (s *Session) SetColors(player1, player2 string) Colors {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c := strings.TrimSpace(player1); c != "" {
		s.Colors.Player1 = c
	}
	if c := strings.TrimSpace(player2); c != "" {
		s.Colors.Player2 = c
	}
	s.LastActivity = time.Now()
	s.notifyLocked()
	return s.Colors
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) lastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastActivity
}

func (s *Session) snapshotLocked() Snapshot {
	g := s.Game
	validMoves := []int{}
	if !g.IsFinished() {
		validMoves = g.Board.ValidMoves()
	}
	return Snapshot{
		GameID:        s.GameID,
		Width:         g.Width(),
		Height:        g.Height(),
		Board:         g.Board.Copy(),
		CurrentPlayer: g.CurrentPlayer,
		Status:        g.Status,
		Winner:        g.Winner,
		MoveCount:     g.MoveCount,
		ValidMoves:    validMoves,
		LastRow:       g.LastRow,
		LastColumn:    g.LastColumn,
		Colors:        s.Colors,
		Message:       OutcomeMessage(g, s.Colors),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.LastActivity,
	}
}

// notifyLocked runs under mu so watchers see snapshots in move order.
func (s *Session) notifyLocked() {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(s.snapshotLocked())
}

// OutcomeMessage is the end-of-game announcement, e.g. "Purple player won!"
// or "Tie!". It is empty while the game is in progress.
func OutcomeMessage(g *domain.Game, colors Colors) string {
	switch g.Status {
	case domain.StatusTie:
		return "Tie!"
	case domain.StatusWon:
		name := colors.For(g.Winner)
		if name == "" {
			if g.Winner == domain.Player1 {
				return "Player 1 won!"
			}
			return "Player 2 won!"
		}
		first, size := utf8.DecodeRuneInString(name)
		return string(unicode.ToUpper(first)) + name[size:] + " player won!"
	}
	return ""
}
