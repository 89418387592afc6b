package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

// compile-time check that *DB implements repository.LawmakerRepository
var _ repository.LawmakerRepository = (*DB)(nil)

const lawmakerColumns = `id, external_id, name, chamber, state, district, party,
	photo_url, email, phone, contact_form_url, office_addresses,
	hemp_stance, alcohol_funding_total, alcohol_funding_cycle,
	key_quote, quote_source_url, featured,
	last_synced_at, created_at, updated_at`

func scanLawmaker(row interface{ Scan(...any) error }) (*model.Lawmaker, error) {
	var l model.Lawmaker
	err := row.Scan(
		&l.ID,
		&l.ExternalID,
		&l.Name,
		&l.Chamber,
		&l.State,
		&l.District,
		&l.Party,
		&l.PhotoURL,
		&l.Email,
		&l.Phone,
		&l.ContactFormURL,
		&l.OfficeAddresses,
		&l.HempStance,
		&l.AlcoholFundingTotal,
		&l.AlcoholFundingCycle,
		&l.KeyQuote,
		&l.QuoteSourceURL,
		&l.Featured,
		&l.LastSyncedAt,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Insert creates a new lawmaker row. The caller supplies the derived
// external ID; ID and timestamps are generated here. A duplicate
// external_id returns apperror.ErrConflict so the reconciler can recover
// the concurrent-first-sighting race by re-fetching.
func (db *DB) Insert(ctx context.Context, lawmaker *model.Lawmaker) error {
	now := time.Now().UTC()
	lawmaker.ID = xid.New().String()
	if lawmaker.HempStance == "" {
		lawmaker.HempStance = model.StanceUnknown
	}
	if lawmaker.LastSyncedAt.IsZero() {
		lawmaker.LastSyncedAt = now
	}
	lawmaker.CreatedAt = now
	lawmaker.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO lawmakers (`+lawmakerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lawmaker.ID,
		lawmaker.ExternalID,
		lawmaker.Name,
		lawmaker.Chamber,
		lawmaker.State,
		lawmaker.District,
		lawmaker.Party,
		lawmaker.PhotoURL,
		lawmaker.Email,
		lawmaker.Phone,
		lawmaker.ContactFormURL,
		lawmaker.OfficeAddresses,
		lawmaker.HempStance,
		lawmaker.AlcoholFundingTotal,
		lawmaker.AlcoholFundingCycle,
		lawmaker.KeyQuote,
		lawmaker.QuoteSourceURL,
		lawmaker.Featured,
		lawmaker.LastSyncedAt,
		lawmaker.CreatedAt,
		lawmaker.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("lawmaker", lawmaker.ExternalID)
		}
		return fmt.Errorf("sqlite: inserting lawmaker (externalID=%s): %w", lawmaker.ExternalID, err)
	}

	return nil
}

// GetByID retrieves a lawmaker by internal ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Lawmaker, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+lawmakerColumns+` FROM lawmakers WHERE id = ?`, id)

	l, err := scanLawmaker(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("lawmaker", id)
		}
		return nil, fmt.Errorf("sqlite: getting lawmaker %s: %w", id, err)
	}
	return l, nil
}

// GetByExternalID retrieves a lawmaker by the derived reconciliation key.
func (db *DB) GetByExternalID(ctx context.Context, externalID string) (*model.Lawmaker, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+lawmakerColumns+` FROM lawmakers WHERE external_id = ?`, externalID)

	l, err := scanLawmaker(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("lawmaker", externalID)
		}
		return nil, fmt.Errorf("sqlite: getting lawmaker by external_id %s: %w", externalID, err)
	}
	return l, nil
}

// GetByIDs retrieves the full rows for a set of internal IDs. Order follows
// the input slice; IDs that no longer exist are silently absent.
func (db *DB) GetByIDs(ctx context.Context, ids []string) ([]model.Lawmaker, error) {
	if len(ids) == 0 {
		return []model.Lawmaker{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+lawmakerColumns+` FROM lawmakers WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting lawmakers by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]model.Lawmaker, len(ids))
	for rows.Next() {
		l, err := scanLawmaker(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning lawmaker row: %w", err)
		}
		byID[l.ID] = *l
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating lawmaker rows: %w", err)
	}

	result := make([]model.Lawmaker, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			result = append(result, l)
		}
	}
	return result, nil
}

// TouchSync records a repeat sighting: only last_synced_at moves. Existing
// descriptive and curated fields stay authoritative over a possibly-stale
// provider payload.
func (db *DB) TouchSync(ctx context.Context, id string, at time.Time) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE lawmakers SET last_synced_at = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("sqlite: touching lawmaker %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("lawmaker", id)
	}
	return nil
}

// ListFeatured returns the staff-featured lawmakers, champions first.
func (db *DB) ListFeatured(ctx context.Context) ([]model.Lawmaker, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+lawmakerColumns+` FROM lawmakers
		 WHERE featured = 1
		 ORDER BY hemp_stance = 'champion' DESC, state, name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing featured lawmakers: %w", err)
	}
	defer rows.Close()

	result := []model.Lawmaker{}
	for rows.Next() {
		l, err := scanLawmaker(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning lawmaker row: %w", err)
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating featured lawmakers: %w", err)
	}
	return result, nil
}

// UpdateCuration applies a partial update of the staff-curated fields.
// Only non-nil fields change; updated_at always moves.
func (db *DB) UpdateCuration(ctx context.Context, id string, update repository.CurationUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if update.HempStance != nil {
		sets = append(sets, "hemp_stance = ?")
		args = append(args, *update.HempStance)
	}
	if update.AlcoholFundingTotal != nil {
		sets = append(sets, "alcohol_funding_total = ?")
		args = append(args, *update.AlcoholFundingTotal)
	}
	if update.AlcoholFundingCycle != nil {
		sets = append(sets, "alcohol_funding_cycle = ?")
		args = append(args, *update.AlcoholFundingCycle)
	}
	if update.KeyQuote != nil {
		sets = append(sets, "key_quote = ?")
		args = append(args, *update.KeyQuote)
	}
	if update.QuoteSourceURL != nil {
		sets = append(sets, "quote_source_url = ?")
		args = append(args, *update.QuoteSourceURL)
	}
	if update.Featured != nil {
		sets = append(sets, "featured = ?")
		args = append(args, *update.Featured)
	}

	args = append(args, id)
	res, err := db.conn.ExecContext(ctx,
		`UPDATE lawmakers SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating lawmaker curation %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NotFound("lawmaker", id)
	}
	return nil
}
