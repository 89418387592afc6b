// Package repository defines the storage interfaces consumed by the service
// layer. The concrete SQLite implementation lives in repository/sqlite;
// services only ever see these interfaces, so tests swap in in-memory mocks
// and a future Postgres move touches one package.
package repository

import (
	"context"
	"time"

	"github.com/dontbanhemp/action-server/internal/model"
)

// LawmakerRepository persists lawmaker records keyed by internal ID and by
// the derived external ID used for reconciliation.
type LawmakerRepository interface {
	Insert(ctx context.Context, lawmaker *model.Lawmaker) error
	GetByID(ctx context.Context, id string) (*model.Lawmaker, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.Lawmaker, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.Lawmaker, error)

	// TouchSync bumps last_synced_at for a repeat sighting. Descriptive and
	// curated fields are deliberately left alone — staff curation must
	// survive re-lookup.
	TouchSync(ctx context.Context, id string, at time.Time) error

	ListFeatured(ctx context.Context) ([]model.Lawmaker, error)
	UpdateCuration(ctx context.Context, id string, update CurationUpdate) error
}

// CurationUpdate is a partial update of the staff-curated lawmaker fields.
// Nil pointers mean "leave unchanged".
type CurationUpdate struct {
	HempStance          *model.Stance
	AlcoholFundingTotal *float64
	AlcoholFundingCycle *string
	KeyQuote            *string
	QuoteSourceURL      *string
	Featured            *bool
}

// UserRepository persists campaign participants. Create returns
// apperror.ErrConflict when the email is already registered; callers recover
// by fetching the existing row.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// EmailActionRepository is the append-only send log.
type EmailActionRepository interface {
	Append(ctx context.Context, action *model.EmailAction) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// StatsRepository reads the derived campaign counters.
type StatsRepository interface {
	CampaignCounts(ctx context.Context) (*model.CampaignStats, error)
}
