// Package service provides business logic for authentication and to-do
// items, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/todokeeper/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// CredentialRepository defines the lookups required by the
// authentication service.
type CredentialRepository interface {
	// PasswordHash returns the bcrypt hash stored for username, or
	// models.ErrUserNotFound.
	PasswordHash(ctx context.Context, username string) ([]byte, error)
}

// AuthService verifies Basic credentials against a CredentialRepository.
type AuthService struct {
	// repo holds the credential table.
	repo CredentialRepository
	// dummyHash is compared against for unknown users so that both failure
	// paths take the same time.
	dummyHash []byte
}

// NewAuthService constructs an AuthService using the provided repository.
func NewAuthService(repo CredentialRepository) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return &AuthService{repo: repo, dummyHash: dummy}
}

// NewUser hashes password with bcrypt at the given cost and returns the
// resulting credential entry. The plaintext is not retained.
func NewUser(username, password string, cost int) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password for %q: %w", username, err)
	}
	return models.User{Username: username, PasswordHash: hash}, nil
}

// Authenticate checks username and password. Unknown users and wrong
// passwords both yield models.ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) error {
	hash, err := s.repo.PasswordHash(ctx, username)
	if errors.Is(err, models.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return models.ErrUnauthenticated
	}
	if err != nil {
		return fmt.Errorf("lookup credentials: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return models.ErrUnauthenticated
	}
	return nil
}
