package service

import (
	"context"
	"log"
	"time"

	"invoicepad/internal/config"
)

// SessionSweeper periodically drops editing sessions that have been idle
// longer than the configured TTL.
type SessionSweeper struct {
	sessions SessionService
	cfg      config.SessionConfig
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(sessions SessionService, cfg config.SessionConfig) *SessionSweeper {
	return &SessionSweeper{sessions: sessions, cfg: cfg}
}

// Start runs the sweep loop until ctx is canceled.
func (w *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.SweepInterval)
	defer ticker.Stop()

	log.Printf("sessionSweeper: started (interval=%s, idleTTL=%s)", w.cfg.SweepInterval, w.cfg.IdleTTL)

	for {
		select {
		case <-ctx.Done():
			log.Printf("sessionSweeper: shutdown")
			return
		case <-ticker.C:
			if removed := w.sessions.SweepIdle(w.cfg.IdleTTL); removed > 0 {
				log.Printf("sessionSweeper: removed %d idle sessions (%d active)", removed, w.sessions.Count())
			}
		}
	}
}
