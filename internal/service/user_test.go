package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/model"
)

func newTestUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	svc := NewUserService(repo, quietLogger(t))
	return svc, repo
}

func validUserParams() CreateUserParams {
	return CreateUserParams{
		Email:   "jane@example.com",
		ZipCode: "90210",
		Role:    model.RoleConsumer,
	}
}

func TestCreateUser_Success(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Create(context.Background(), CreateUserParams{
		Email:        "jane@example.com",
		ZipCode:      "90210",
		Role:         model.RoleBusinessOwner,
		Name:         "  Jane Doe  ",
		BusinessName: "Jane's Hemp Co",
		StoryOptIn:   true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("expected user to have an ID")
	}
	if user.Name != "Jane Doe" {
		t.Errorf("Name = %q, want trimmed %q", user.Name, "Jane Doe")
	}
	if !user.StoryOptIn {
		t.Error("StoryOptIn should carry through")
	}
}

func TestCreateUser_NormalizesEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Create(context.Background(), CreateUserParams{
		Email:   "  Jane@Example.COM ",
		ZipCode: "90210",
		Role:    model.RoleConsumer,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("Email = %q, want lowercase trimmed", user.Email)
	}
}

// Registration is idempotent: the same email submitted twice returns the
// original row, whatever role or zip the second submission carried.
func TestCreateUser_DuplicateEmailReturnsExisting(t *testing.T) {
	svc, _ := newTestUserService(t)

	first, err := svc.Create(context.Background(), validUserParams())
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	params := validUserParams()
	params.Role = model.RoleVeteran
	params.ZipCode = "10001"

	second, err := svc.Create(context.Background(), params)
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("duplicate registration got a new ID: %q vs %q", second.ID, first.ID)
	}
	if second.Role != model.RoleConsumer {
		t.Errorf("duplicate registration changed the stored role to %q", second.Role)
	}
}

// Casing differences must not defeat idempotence.
func TestCreateUser_DuplicateDiffersOnlyByCase(t *testing.T) {
	svc, _ := newTestUserService(t)

	first, err := svc.Create(context.Background(), validUserParams())
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	params := validUserParams()
	params.Email = "JANE@EXAMPLE.COM"
	second, err := svc.Create(context.Background(), params)
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("case-variant email created a second user: %q vs %q", second.ID, first.ID)
	}
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	for _, email := range []string{"", "   ", "not-an-email"} {
		params := validUserParams()
		params.Email = email
		_, err := svc.Create(context.Background(), params)
		if !errors.Is(err, apperror.ErrValidation) {
			t.Errorf("Create(email=%q) error = %v, want ErrValidation", email, err)
		}
	}
}

func TestCreateUser_InvalidZip(t *testing.T) {
	svc, _ := newTestUserService(t)

	params := validUserParams()
	params.ZipCode = "9021"
	_, err := svc.Create(context.Background(), params)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	svc, _ := newTestUserService(t)

	params := validUserParams()
	params.Role = model.Role("lobbyist")
	_, err := svc.Create(context.Background(), params)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}
