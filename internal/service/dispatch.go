package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/mailer"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

// DispatchService sends a finalized advocacy email and records the attempt.
type DispatchService struct {
	users     repository.UserRepository
	lawmakers repository.LawmakerRepository
	actions   repository.EmailActionRepository
	mailer    mailer.Mailer
	sender    string
	logger    *slog.Logger
}

// NewDispatchService creates a DispatchService. sender is the fixed From
// identity used on every outbound email.
func NewDispatchService(
	users repository.UserRepository,
	lawmakers repository.LawmakerRepository,
	actions repository.EmailActionRepository,
	m mailer.Mailer,
	sender string,
	logger *slog.Logger,
) *DispatchService {
	return &DispatchService{
		users:     users,
		lawmakers: lawmakers,
		actions:   actions,
		mailer:    m,
		sender:    sender,
		logger:    logger,
	}
}

// Send delivers the (possibly user-edited) subject/body to the lawmaker's
// office and appends one row to the send log. Returns the provider message
// id.
//
// Order is send-then-log, and a failed log write does not fail the
// operation: the email already went out, and failing here would invite the
// caller to retry and send a duplicate. The lost row is reported on the
// error log for operators instead.
func (s *DispatchService) Send(ctx context.Context, userID, lawmakerID, subject, body string) (string, error) {
	userID = strings.TrimSpace(userID)
	lawmakerID = strings.TrimSpace(lawmakerID)
	if userID == "" || lawmakerID == "" || subject == "" || body == "" {
		return "", apperror.ValidationFailed("", "userId, lawmakerId, emailSubject and emailBody are required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	lawmaker, err := s.lawmakers.GetByID(ctx, lawmakerID)
	if err != nil {
		return "", err
	}

	if lawmaker.Email == "" {
		return "", apperror.Precondition("lawmaker does not have an email address on file")
	}

	messageID, err := s.mailer.Send(ctx, mailer.Message{
		From:     s.sender,
		To:       lawmaker.Email,
		ReplyTo:  user.Email,
		Subject:  subject,
		TextBody: body,
	})
	if err != nil {
		s.logger.Error("email provider rejected send",
			slog.String("lawmakerId", lawmakerID),
			slog.String("error", err.Error()),
		)
		return "", apperror.Upstream("email delivery", err)
	}

	action := &model.EmailAction{
		UserID:            userID,
		LawmakerID:        lawmakerID,
		EmailSubject:      subject,
		EmailBody:         body,
		Status:            model.EmailStatusSent,
		ProviderMessageID: messageID,
	}
	if err := s.actions.Append(ctx, action); err != nil {
		// Operator channel only. The send succeeded; do not surface this
		// as a failure or the user will resend.
		s.logger.Error("email sent but action log write failed",
			slog.String("userId", userID),
			slog.String("lawmakerId", lawmakerID),
			slog.String("messageId", messageID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("advocacy email sent",
		slog.String("lawmakerId", lawmakerID),
		slog.String("messageId", messageID),
	)

	return messageID, nil
}
