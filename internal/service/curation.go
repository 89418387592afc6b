package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

// CurationService maintains the staff-curated lawmaker fields: stance,
// funding disclosures, key quote, and the featured flag. These never come
// from the lookup provider and survive every re-sync.
type CurationService struct {
	lawmakers repository.LawmakerRepository
	logger    *slog.Logger
}

// NewCurationService creates a CurationService.
func NewCurationService(lawmakers repository.LawmakerRepository, logger *slog.Logger) *CurationService {
	return &CurationService{lawmakers: lawmakers, logger: logger}
}

// Update applies a partial curation update and returns the refreshed row.
func (s *CurationService) Update(ctx context.Context, id string, update repository.CurationUpdate) (*model.Lawmaker, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "lawmaker ID is required")
	}

	if update.HempStance != nil && !update.HempStance.Valid() {
		return nil, apperror.ValidationFailed("hempStance",
			fmt.Sprintf("unknown stance %q", *update.HempStance))
	}

	if err := s.lawmakers.UpdateCuration(ctx, id, update); err != nil {
		return nil, err
	}

	lawmaker, err := s.lawmakers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("lawmaker curation updated", slog.String("id", id))
	return lawmaker, nil
}

// Featured lists the lawmakers staff have flagged for the landing page.
func (s *CurationService) Featured(ctx context.Context) ([]model.Lawmaker, error) {
	return s.lawmakers.ListFeatured(ctx)
}
