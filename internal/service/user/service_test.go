package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mrhook/internal/domain"
	tokenrepo "mrhook/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	created    *domain.User
	createErr  error
	byEmail    *domain.User
	byEmailErr error
	byID       *domain.User
	byIDErr    error

	lastCreate domain.User
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	s.lastCreate = u
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	u.ID = "u1"
	return &u, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return s.byID, s.byIDErr
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return s.byEmail, s.byEmailErr
}

func (s *stubUserRepo) UpdateProfile(_ context.Context, u domain.User) (*domain.User, error) {
	return &u, nil
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (m *memTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, exists := m.tokens[t.Token]; exists {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func newTestService(repo *stubUserRepo, tokens *memTokenRepo) *Service {
	return New(repo, tokens, 24*time.Hour)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(&stubUserRepo{}, newMemTokenRepo())

	_, _, err := svc.Register(context.Background(), RegisterInput{Password: "password123", FirstName: "A", LastName: "B"})
	if err == nil || err.Error() != "email required" {
		t.Fatalf("expected email error, got %v", err)
	}

	_, _, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B"})
	if err == nil || !strings.Contains(err.Error(), "password") {
		t.Fatalf("expected password error, got %v", err)
	}

	_, _, err = svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "password123"})
	if err == nil || err.Error() != "first and last name required" {
		t.Fatalf("expected name error, got %v", err)
	}
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	repo := &stubUserRepo{}
	tokens := newMemTokenRepo()
	svc := newTestService(repo, tokens)

	u, token, err := svc.Register(context.Background(), RegisterInput{
		Email:     "John.Smith@Email.com",
		Password:  "password123",
		FirstName: "John",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "john.smith@email.com" {
		t.Fatalf("email not normalised: %s", repo.lastCreate.Email)
	}
	if repo.lastCreate.PasswordHash == "password123" || repo.lastCreate.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.lastCreate.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if token == "" {
		t.Fatalf("expected access token")
	}
	if len(tokens.tokens) != 1 {
		t.Fatalf("expected 1 stored token, got %d", len(tokens.tokens))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(&stubUserRepo{createErr: domain.ErrAlreadyExists}, newMemTokenRepo())
	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email: "a@b.com", Password: "password123", FirstName: "A", LastName: "B",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := newTestService(&stubUserRepo{byEmailErr: domain.ErrNotFound}, newMemTokenRepo())
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	svc = newTestService(&stubUserRepo{byEmail: &domain.User{ID: "u1", PasswordHash: string(hash)}}, newMemTokenRepo())
	_, _, err = svc.Login(context.Background(), "a@b.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for bad password, got %v", err)
	}
}

func TestLoginAndLookupRoundTrip(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &domain.User{ID: "u1", Email: "a@b.com", PasswordHash: string(hash)}
	repo := &stubUserRepo{byEmail: user, byID: user}
	svc := newTestService(repo, newMemTokenRepo())

	_, token, err := svc.Login(context.Background(), "a@b.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	got, err := svc.LookupByToken(context.Background(), token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestLookupExpiredToken(t *testing.T) {
	tokens := newMemTokenRepo()
	tokens.tokens["stale"] = tokenrepo.Token{Token: "stale", UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}
	svc := newTestService(&stubUserRepo{byID: &domain.User{ID: "u1"}}, tokens)

	if _, err := svc.LookupByToken(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, exists := tokens.tokens["stale"]; exists {
		t.Fatalf("expired token should have been deleted")
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	svc := newTestService(&stubUserRepo{}, newMemTokenRepo())
	if _, err := svc.UpdateProfile(context.Background(), "u1", ProfileInput{LastName: "Smith"}); err == nil {
		t.Fatalf("expected validation error for missing first name")
	}
}
