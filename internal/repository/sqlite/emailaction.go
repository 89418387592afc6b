package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

// compile-time check that *DB implements repository.EmailActionRepository
var _ repository.EmailActionRepository = (*DB)(nil)

// Append adds one row to the send log. The log is append-only: there is no
// update or delete path. It is the audit trail of what was actually sent on
// a user's behalf.
func (db *DB) Append(ctx context.Context, action *model.EmailAction) error {
	action.ID = xid.New().String()
	if action.SentAt.IsZero() {
		action.SentAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO email_actions
		 (id, user_id, lawmaker_id, email_subject, email_body, status, provider_message_id, sent_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		action.ID,
		action.UserID,
		action.LawmakerID,
		action.EmailSubject,
		action.EmailBody,
		action.Status,
		action.ProviderMessageID,
		action.SentAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: appending email action (user=%s lawmaker=%s): %w",
			action.UserID, action.LawmakerID, err)
	}

	return nil
}

// CountByUser returns how many emails a user has sent through the campaign.
func (db *DB) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM email_actions WHERE user_id = ?`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting email actions for user %s: %w", userID, err)
	}
	return n, nil
}
