package services

import (
	"context"
	"log"
	"time"
)

// PageLifetimesSweeperService forgets mounted pages whose session has been
// idle longer than the page-state TTL; their snapshots expire in the store
// at the same time.
type PageLifetimesSweeperService struct {
	lifetimes *Lifetimes
	maxIdle   time.Duration
}

// NewPageLifetimesSweeperService constructs a new sweeper.
func NewPageLifetimesSweeperService(lifetimes *Lifetimes, maxIdle time.Duration) *PageLifetimesSweeperService {
	return &PageLifetimesSweeperService{
		lifetimes: lifetimes,
		maxIdle:   maxIdle,
	}
}

// StartPeriodicJob launches the background loop at the given interval. It
// stops when ctx is done.
func (s *PageLifetimesSweeperService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go s.startPeriodicJob(ctx, interval)
}

func (s *PageLifetimesSweeperService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[PageLifetimesSweeperService] Stopping periodic sweep.")
			return
		case <-ticker.C:
			s.SweepIdleMounts()
		}
	}
}

// SweepIdleMounts runs one sweep and returns how many sessions were removed.
func (s *PageLifetimesSweeperService) SweepIdleMounts() int {
	removed := s.lifetimes.Sweep(s.maxIdle)
	if removed > 0 {
		log.Printf("[PageLifetimesSweeperService] Removed %d idle page mounts, %d remain.", removed, s.lifetimes.Len())
	}
	return removed
}
