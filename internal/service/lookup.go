package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/civic"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

var (
	zipPattern      = regexp.MustCompile(`^\d{5}$`)
	statePattern    = regexp.MustCompile(`state:([a-z]{2})`)
	districtPattern = regexp.MustCompile(`cd:(\d+)`)
)

// CivicAPI is the slice of the civic client the lookup service needs.
type CivicAPI interface {
	Representatives(ctx context.Context, address string) (*civic.Response, error)
}

// LookupResult is a visitor's congressional delegation.
//
// Representative holds the first house match the provider returned. A zip
// code can straddle congressional districts; when the provider reports more
// than one house office we keep the first and drop the rest. Senators is
// never nil (empty when the zip resolved but returned no senate offices).
type LookupResult struct {
	Senators       []model.Lawmaker `json:"senators"`
	Representative *model.Lawmaker  `json:"representative"`
}

// LookupService resolves a zip code to lawmakers via the civic-data
// provider and reconciles each official into storage.
type LookupService struct {
	civic     CivicAPI
	lawmakers repository.LawmakerRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewLookupService creates a LookupService.
func NewLookupService(civicAPI CivicAPI, lawmakers repository.LawmakerRepository, logger *slog.Logger) *LookupService {
	return &LookupService{
		civic:     civicAPI,
		lawmakers: lawmakers,
		logger:    logger,
		now:       time.Now,
	}
}

// Lookup maps a 5-digit zip code to the visitor's senators and
// representative.
//
// Validation happens before any network call. Officials whose office names
// match neither chamber are skipped with a warning. An empty result is a
// valid outcome — some zips simply return no matching offices.
func (s *LookupService) Lookup(ctx context.Context, zipCode string) (*LookupResult, error) {
	zipCode = strings.TrimSpace(zipCode)
	if !zipPattern.MatchString(zipCode) {
		return nil, apperror.ValidationFailed("zipCode", "Invalid zip code. Must be 5 digits.")
	}

	resp, err := s.civic.Representatives(ctx, zipCode)
	if err != nil {
		s.logger.Error("civic lookup failed",
			slog.String("zip", zipCode),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Upstream("civic data lookup", err)
	}

	state := stateFromResponse(resp)
	if state == "" {
		return nil, apperror.ValidationFailed("zipCode",
			"zip code does not map to a recognized address")
	}

	ids := []string{}
	for _, office := range resp.Offices {
		chamber, ok := chamberForOffice(office.Name)
		if !ok {
			s.logger.Warn("skipping office with unrecognized chamber",
				slog.String("office", office.Name),
			)
			continue
		}

		for _, idx := range office.OfficialIndices {
			if idx < 0 || idx >= len(resp.Officials) {
				continue
			}
			official := resp.Officials[idx]
			if official.Name == "" {
				continue
			}

			id, err := s.reconcile(ctx, state, chamber, office, official)
			if err != nil {
				// One bad record must not block the rest of the
				// delegation.
				s.logger.Error("failed to reconcile lawmaker",
					slog.String("name", official.Name),
					slog.String("error", err.Error()),
				)
				continue
			}
			ids = append(ids, id)
		}
	}

	lawmakers, err := s.lawmakers.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching reconciled lawmakers: %w", err)
	}

	result := &LookupResult{Senators: []model.Lawmaker{}}
	for i := range lawmakers {
		l := lawmakers[i]
		switch l.Chamber {
		case model.ChamberSenate:
			result.Senators = append(result.Senators, l)
		case model.ChamberHouse:
			if result.Representative == nil {
				result.Representative = &l
			}
		}
	}

	s.logger.Info("zip lookup completed",
		slog.String("zip", zipCode),
		slog.String("state", state),
		slog.Int("senators", len(result.Senators)),
		slog.Bool("representative", result.Representative != nil),
	)

	return result, nil
}

// reconcile applies the insert-or-refresh decision for one sighted
// official and returns the internal lawmaker ID.
//
// Repeat sighting: only last_synced_at moves — stored descriptive and
// curated fields are authoritative over the provider payload. First
// sighting: insert a fresh row. The existence check and the insert are two
// separate calls; if another request inserts the same external ID in
// between, the UNIQUE constraint turns our insert into a conflict and we
// recover by re-fetching.
func (s *LookupService) reconcile(ctx context.Context, state string, chamber model.Chamber, office civic.Office, official civic.Official) (string, error) {
	externalID := ExternalID(state, chamber, official.Name)

	existing, err := s.lawmakers.GetByExternalID(ctx, externalID)
	if err == nil {
		if err := s.lawmakers.TouchSync(ctx, existing.ID, s.now()); err != nil {
			return "", err
		}
		return existing.ID, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return "", err
	}

	lawmaker := &model.Lawmaker{
		ExternalID:   externalID,
		Name:         official.Name,
		Chamber:      chamber,
		State:        state,
		Party:        official.Party,
		PhotoURL:     official.PhotoURL,
		HempStance:   model.StanceUnknown,
		LastSyncedAt: s.now(),
	}
	if chamber == model.ChamberHouse {
		if m := districtPattern.FindStringSubmatch(office.DivisionID); m != nil {
			lawmaker.District = m[1]
		}
	}
	if len(official.Emails) > 0 {
		lawmaker.Email = official.Emails[0]
	}
	if len(official.Phones) > 0 {
		lawmaker.Phone = official.Phones[0]
	}
	if len(official.URLs) > 0 {
		lawmaker.ContactFormURL = official.URLs[0]
	}
	if len(official.Address) > 0 {
		if raw, err := json.Marshal(official.Address); err == nil {
			lawmaker.OfficeAddresses = string(raw)
		}
	}

	err = s.lawmakers.Insert(ctx, lawmaker)
	if err == nil {
		return lawmaker.ID, nil
	}
	if errors.Is(err, apperror.ErrConflict) {
		// Lost the race to a concurrent lookup — the row exists now.
		existing, fetchErr := s.lawmakers.GetByExternalID(ctx, externalID)
		if fetchErr != nil {
			return "", fetchErr
		}
		if touchErr := s.lawmakers.TouchSync(ctx, existing.ID, s.now()); touchErr != nil {
			return "", touchErr
		}
		return existing.ID, nil
	}
	return "", err
}

// ExternalID derives the stable reconciliation key for a lawmaker:
// lowercase state, chamber, and name with whitespace runs collapsed to a
// single hyphen. The same person seen across independent lookups always
// derives the same key.
func ExternalID(state string, chamber model.Chamber, name string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return fmt.Sprintf("%s-%s-%s", strings.ToLower(state), chamber, normalized)
}

// stateFromResponse extracts the two-letter state code, preferring the
// provider's normalized address and falling back to the office division
// identifiers. Empty means the zip did not resolve to a recognized
// address.
func stateFromResponse(resp *civic.Response) string {
	if resp.NormalizedInput != nil && len(resp.NormalizedInput.State) == 2 {
		return strings.ToUpper(resp.NormalizedInput.State)
	}
	for _, office := range resp.Offices {
		if m := statePattern.FindStringSubmatch(office.DivisionID); m != nil {
			return strings.ToUpper(m[1])
		}
	}
	return ""
}

// chamberForOffice determines the chamber from the office name. Office
// names vary ("United States Senate", "U.S. Representative, CA-30"), so we
// token-match rather than compare exactly.
func chamberForOffice(name string) (model.Chamber, bool) {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "senate") || strings.Contains(lower, "senator") {
		return model.ChamberSenate, true
	}
	if strings.Contains(lower, "house") || strings.Contains(lower, "representative") {
		return model.ChamberHouse, true
	}
	return "", false
}
