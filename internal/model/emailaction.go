package model

import "time"

// EmailStatus is the delivery outcome recorded for one send attempt.
type EmailStatus string

const (
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
	EmailStatusBounced EmailStatus = "bounced"
)

// EmailAction is the append-only record of one advocacy email sent on behalf
// of a user to a lawmaker. It stores the final (possibly user-edited)
// subject and body, plus the provider's message id for delivery tracing.
// Rows are never updated or deleted.
type EmailAction struct {
	ID                string      `json:"id"                db:"id"`
	UserID            string      `json:"userId"            db:"user_id"`
	LawmakerID        string      `json:"lawmakerId"        db:"lawmaker_id"`
	EmailSubject      string      `json:"emailSubject"      db:"email_subject"`
	EmailBody         string      `json:"emailBody"         db:"email_body"`
	Status            EmailStatus `json:"status"            db:"status"`
	ProviderMessageID string      `json:"providerMessageId" db:"provider_message_id"`
	SentAt            time.Time   `json:"sentAt"            db:"sent_at"`
}

// CampaignStats is the derived read model shown on the landing page.
// It is recomputed from storage, never independently owned.
type CampaignStats struct {
	TotalUsers  int64 `json:"totalUsers"`
	TotalEmails int64 `json:"totalEmails"`
}
