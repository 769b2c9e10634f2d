package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect4/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	MaxIdle        time.Duration
}

func NewWorker(sm *game.SessionManager, interval, maxIdle time.Duration) *Worker {
	return &Worker{SessionManager: sm, Interval: interval, MaxIdle: maxIdle}
}

// Start runs a sweep immediately and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.runCleanup()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() int {
	removed := w.SessionManager.CleanupIdleSessions(w.MaxIdle)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d idle games, %d still live", removed, w.SessionManager.Count())
	}
	return removed
}
