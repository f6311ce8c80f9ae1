package repository

import (
	"context"

	"github.com/atinyakov/todokeeper/internal/models"
)

// StaticCredentialRepository is a fixed username to password-hash table.
// It is filled once at construction and never written afterwards, so it
// is safe for concurrent use.
type StaticCredentialRepository struct {
	hashes map[string][]byte
}

// NewStaticCredentialRepository builds the table from users. Later entries
// win when a username repeats.
func NewStaticCredentialRepository(users ...models.User) *StaticCredentialRepository {
	hashes := make(map[string][]byte, len(users))
	for _, u := range users {
		hash := make([]byte, len(u.PasswordHash))
		copy(hash, u.PasswordHash)
		hashes[u.Username] = hash
	}
	return &StaticCredentialRepository{hashes: hashes}
}

// PasswordHash returns the stored hash for username, or
// models.ErrUserNotFound.
func (r *StaticCredentialRepository) PasswordHash(_ context.Context, username string) ([]byte, error) {
	hash, ok := r.hashes[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return hash, nil
}
