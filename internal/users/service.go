package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"resume-builder/internal/shared/telemetry"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

const minPasswordLength = 6

type Service struct {
	Repo   Repo
	Hasher PasswordHasher
}

func NewService(repo Repo, hasher PasswordHasher) *Service {
	return &Service{Repo: repo, Hasher: hasher}
}

// Register creates a local account with a hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	if s == nil || s.Repo == nil || s.Hasher == nil {
		return User{}, errors.New("users service not configured")
	}
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || len(password) < minPasswordLength {
		return User{}, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, fmt.Errorf("%w: email", ErrInvalidInput)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return User{}, err
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     name,
		PasswordHash: hash,
		Provider:     ProviderLocal,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	telemetry.Info("user.registered", map[string]any{"user_id": user.ID})
	return s.Repo.GetByID(ctx, user.ID)
}

// Login checks credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	if s == nil || s.Repo == nil || s.Hasher == nil {
		return User{}, errors.New("users service not configured")
	}
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := s.Hasher.Compare(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// UpsertFromAuth records an identity from an external provider. An existing
// account with the same email is reused so its resumes stay reachable.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	user.Email = normalizeEmail(user.Email)
	if strings.TrimSpace(user.ID) == "" || user.Email == "" {
		return User{}, errors.New("user id and email are required")
	}
	existing, err := s.Repo.GetByEmail(ctx, user.Email)
	switch {
	case err == nil && existing.ID != user.ID:
		return existing, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return User{}, err
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
