package sqlite

import (
	"context"
	"fmt"

	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

// compile-time check that *DB implements repository.StatsRepository
var _ repository.StatsRepository = (*DB)(nil)

// CampaignCounts reads the derived participation counters from the
// campaign_stats view. Each read is independent and idempotent; the poller
// layers staleness handling on top.
func (db *DB) CampaignCounts(ctx context.Context) (*model.CampaignStats, error) {
	var stats model.CampaignStats
	err := db.conn.QueryRowContext(ctx,
		`SELECT total_users, total_emails FROM campaign_stats`,
	).Scan(&stats.TotalUsers, &stats.TotalEmails)
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading campaign stats: %w", err)
	}
	return &stats, nil
}
