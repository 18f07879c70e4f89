package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/schedly/schedly-api/internal/pkg/jwt"
	"github.com/schedly/schedly-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	byID    map[uuid.UUID]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[uuid.UUID]*User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return ErrEmailAlreadyExists
	}
	cp := *u
	f.byEmail[u.Email] = &cp
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func newTestAuthService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtSvc), repo
}

func TestRegisterCreatesCustomer(t *testing.T) {
	svc, repo := newTestAuthService()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Jane@Example.COM",
		Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if resp.User.Role != string(RoleCustomer) {
		t.Errorf("expected customer role, got %q", resp.User.Role)
	}
	if resp.User.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected both tokens to be issued")
	}

	stored, ok := repo.byEmail["jane@example.com"]
	if !ok {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "supersecret" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	req := &RegisterRequest{Email: "jane@example.com", Password: "supersecret"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), &RegisterRequest{Email: "JANE@example.com", Password: "otherpass"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	if _, err := svc.Register(context.Background(), &RegisterRequest{Email: "jane@example.com", Password: "supersecret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Tokens.AccessToken == "" {
		t.Error("expected access token")
	}

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "jane@example.com", Password: "wrongpass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(context.Background(), &LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _ := newTestAuthService()

	reg, err := svc.Register(context.Background(), &RegisterRequest{Email: "jane@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), reg.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.User.ID != reg.User.ID {
		t.Error("refresh returned a different user")
	}
	if resp.Tokens.AccessToken == "" {
		t.Error("expected new access token")
	}

	// An access token must not pass as a refresh token
	_, err = svc.Refresh(context.Background(), reg.Tokens.AccessToken)
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	_, err = svc.Refresh(context.Background(), "")
	if !errors.Is(err, ErrRefreshTokenRequired) {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc, repo := newTestAuthService()

	if err := svc.EnsureAdmin(context.Background(), "admin@schedly.io", "adminsecret"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	u, ok := repo.byEmail["admin@schedly.io"]
	if !ok {
		t.Fatal("admin not seeded")
	}
	if u.Role != RoleAdmin {
		t.Errorf("expected admin role, got %q", u.Role)
	}

	// Second run is a no-op
	if err := svc.EnsureAdmin(context.Background(), "admin@schedly.io", "changed"); err != nil {
		t.Fatalf("EnsureAdmin rerun: %v", err)
	}
	if !password.Verify("adminsecret", repo.byEmail["admin@schedly.io"].PasswordHash) {
		t.Error("rerun must not overwrite the existing password")
	}

	// Blank email disables seeding
	if err := svc.EnsureAdmin(context.Background(), "", "whatever"); err != nil {
		t.Fatalf("EnsureAdmin with blank email: %v", err)
	}
}
