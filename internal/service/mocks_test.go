package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/civic"
	"github.com/dontbanhemp/action-server/internal/mailer"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

// Hand-written in-memory mocks for the repository and provider interfaces.
// Each mock stores copies, not pointers, so a test can't accidentally mutate
// the mock's state through a returned value, and each exposes error-injection
// fields for simulating storage and provider failures.

// quietLogger discards everything below ERROR so test output stays readable.
func quietLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// =========================================================================
// LAWMAKER REPOSITORY MOCK
// =========================================================================

type mockLawmakerRepo struct {
	lawmakers map[string]*model.Lawmaker // keyed by internal ID
	nextID    int

	insertErr   error // returned by Insert when set
	touchCalls  map[string]int
	insertCalls int

	// insertHook runs before the normal Insert logic; used to simulate a
	// concurrent writer landing a row between GetByExternalID and Insert.
	insertHook func(l *model.Lawmaker) error
}

func newMockLawmakerRepo() *mockLawmakerRepo {
	return &mockLawmakerRepo{
		lawmakers:  make(map[string]*model.Lawmaker),
		touchCalls: make(map[string]int),
	}
}

var _ repository.LawmakerRepository = (*mockLawmakerRepo)(nil)

// seed stores a lawmaker directly, bypassing Insert bookkeeping.
func (m *mockLawmakerRepo) seed(l model.Lawmaker) *model.Lawmaker {
	if l.ID == "" {
		m.nextID++
		l.ID = fmt.Sprintf("lm-%d", m.nextID)
	}
	m.lawmakers[l.ID] = &l
	return &l
}

func (m *mockLawmakerRepo) Insert(_ context.Context, lawmaker *model.Lawmaker) error {
	m.insertCalls++
	if m.insertHook != nil {
		if err := m.insertHook(lawmaker); err != nil {
			return err
		}
	}
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, existing := range m.lawmakers {
		if existing.ExternalID == lawmaker.ExternalID {
			return apperror.Conflict("lawmaker", lawmaker.ExternalID)
		}
	}
	m.nextID++
	lawmaker.ID = fmt.Sprintf("lm-%d", m.nextID)
	stored := *lawmaker
	m.lawmakers[lawmaker.ID] = &stored
	return nil
}

func (m *mockLawmakerRepo) GetByID(_ context.Context, id string) (*model.Lawmaker, error) {
	l, ok := m.lawmakers[id]
	if !ok {
		return nil, apperror.NotFound("lawmaker", id)
	}
	result := *l
	return &result, nil
}

func (m *mockLawmakerRepo) GetByExternalID(_ context.Context, externalID string) (*model.Lawmaker, error) {
	for _, l := range m.lawmakers {
		if l.ExternalID == externalID {
			result := *l
			return &result, nil
		}
	}
	return nil, apperror.NotFound("lawmaker", externalID)
}

func (m *mockLawmakerRepo) GetByIDs(_ context.Context, ids []string) ([]model.Lawmaker, error) {
	result := make([]model.Lawmaker, 0, len(ids))
	for _, id := range ids {
		if l, ok := m.lawmakers[id]; ok {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLawmakerRepo) TouchSync(_ context.Context, id string, at time.Time) error {
	l, ok := m.lawmakers[id]
	if !ok {
		return apperror.NotFound("lawmaker", id)
	}
	l.LastSyncedAt = at
	m.touchCalls[id]++
	return nil
}

func (m *mockLawmakerRepo) ListFeatured(_ context.Context) ([]model.Lawmaker, error) {
	result := []model.Lawmaker{}
	for _, l := range m.lawmakers {
		if l.Featured {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLawmakerRepo) UpdateCuration(_ context.Context, id string, update repository.CurationUpdate) error {
	l, ok := m.lawmakers[id]
	if !ok {
		return apperror.NotFound("lawmaker", id)
	}
	if update.HempStance != nil {
		l.HempStance = *update.HempStance
	}
	if update.AlcoholFundingTotal != nil {
		l.AlcoholFundingTotal = *update.AlcoholFundingTotal
	}
	if update.AlcoholFundingCycle != nil {
		l.AlcoholFundingCycle = *update.AlcoholFundingCycle
	}
	if update.KeyQuote != nil {
		l.KeyQuote = *update.KeyQuote
	}
	if update.QuoteSourceURL != nil {
		l.QuoteSourceURL = *update.QuoteSourceURL
	}
	if update.Featured != nil {
		l.Featured = *update.Featured
	}
	return nil
}

// =========================================================================
// USER REPOSITORY MOCK
// =========================================================================

type mockUserRepo struct {
	users  map[string]*model.User // keyed by internal ID
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) seed(u model.User) *model.User {
	if u.ID == "" {
		m.nextID++
		u.ID = fmt.Sprintf("user-%d", m.nextID)
	}
	m.users[u.ID] = &u
	return &u
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return apperror.Conflict("user", user.Email)
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

// =========================================================================
// EMAIL ACTION REPOSITORY MOCK
// =========================================================================

type mockActionRepo struct {
	actions   []model.EmailAction
	appendErr error
}

var _ repository.EmailActionRepository = (*mockActionRepo)(nil)

func (m *mockActionRepo) Append(_ context.Context, action *model.EmailAction) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	action.ID = fmt.Sprintf("act-%d", len(m.actions)+1)
	m.actions = append(m.actions, *action)
	return nil
}

func (m *mockActionRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, a := range m.actions {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

// =========================================================================
// STATS REPOSITORY MOCK
// =========================================================================

type mockStatsRepo struct {
	counts model.CampaignStats
	err    error
}

var _ repository.StatsRepository = (*mockStatsRepo)(nil)

func (m *mockStatsRepo) CampaignCounts(_ context.Context) (*model.CampaignStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	counts := m.counts
	return &counts, nil
}

// =========================================================================
// CIVIC PROVIDER MOCK
// =========================================================================

type mockCivicAPI struct {
	response *civic.Response
	err      error
	calls    int
}

var _ CivicAPI = (*mockCivicAPI)(nil)

func (m *mockCivicAPI) Representatives(_ context.Context, _ string) (*civic.Response, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

// =========================================================================
// MAILER MOCK
// =========================================================================

type mockMailer struct {
	sent      []mailer.Message
	sendErr   error
	messageID string
}

var _ mailer.Mailer = (*mockMailer)(nil)

func (m *mockMailer) Send(_ context.Context, msg mailer.Message) (string, error) {
	if m.sendErr != nil {
		return "", m.sendErr
	}
	m.sent = append(m.sent, msg)
	if m.messageID != "" {
		return m.messageID, nil
	}
	return fmt.Sprintf("msg-%d", len(m.sent)), nil
}
