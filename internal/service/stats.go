package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dontbanhemp/action-server/internal/repository"
)

// StatsSnapshot is the last known participation counters. Stale is true
// when the most recent refresh failed; the counts then still hold the
// previous good values — a stale nonzero number beats flashing a wrong
// zero on a transient failure.
type StatsSnapshot struct {
	TotalUsers  int64     `json:"totalUsers"`
	TotalEmails int64     `json:"totalEmails"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Stale       bool      `json:"stale"`
}

// StatsPoller refreshes the campaign counters on a fixed interval and
// serves the latest snapshot to handlers. It owns one goroutine, started
// with Run and stopped by cancelling Run's context — the server cancels it
// during graceful shutdown so no ticker outlives the process.
type StatsPoller struct {
	stats    repository.StatsRepository
	interval time.Duration
	logger   *slog.Logger

	mu       sync.RWMutex
	snapshot StatsSnapshot
}

// NewStatsPoller creates a StatsPoller.
func NewStatsPoller(stats repository.StatsRepository, interval time.Duration, logger *slog.Logger) *StatsPoller {
	return &StatsPoller{
		stats:    stats,
		interval: interval,
		logger:   logger,
	}
}

// Run refreshes immediately, then on every tick until ctx is cancelled.
func (p *StatsPoller) Run(ctx context.Context) {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("stats poller stopped")
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh performs one read of the counters. On failure the previous
// values are kept and the snapshot is flagged stale.
func (p *StatsPoller) Refresh(ctx context.Context) {
	counts, err := p.stats.CampaignCounts(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.snapshot.Stale = true
		p.logger.Warn("stats refresh failed, keeping previous values",
			slog.String("error", err.Error()),
		)
		return
	}

	p.snapshot = StatsSnapshot{
		TotalUsers:  counts.TotalUsers,
		TotalEmails: counts.TotalEmails,
		UpdatedAt:   time.Now().UTC(),
		Stale:       false,
	}
}

// Snapshot returns a copy of the latest counters.
func (p *StatsPoller) Snapshot() StatsSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}
