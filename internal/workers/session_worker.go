package workers

import (
	"context"
	"time"

	"crm_backend/internal/logger"
	"crm_backend/internal/repositories"
)

// SessionWorker clears refresh tokens that expired without an explicit
// logout, so stale sessions don't linger on user rows.
type SessionWorker struct {
	userRepo repositories.UserRepository
	interval time.Duration
}

func NewSessionWorker(userRepo repositories.UserRepository, interval time.Duration) *SessionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionWorker{
		userRepo: userRepo,
		interval: interval,
	}
}

func (w *SessionWorker) Start(ctx context.Context) {
	go w.sweepExpiredSessions(ctx)
}

func (w *SessionWorker) sweepExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("session worker stopped")
			return
		case <-ticker.C:
			cleared, err := w.userRepo.ClearExpiredRefreshTokens(time.Now())
			if err != nil {
				logger.WorkerLog("session_worker", "sweep_expired_sessions", err)
			} else if cleared > 0 {
				logger.Info("cleared expired sessions", "count", cleared)
			}
		}
	}
}
