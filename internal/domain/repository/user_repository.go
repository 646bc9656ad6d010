// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"blogapp/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser is returned when a storage-layer uniqueness constraint on
// email or (provider, provider_id) rejects an insert or update. Racing
// registrations surface here rather than through application-level checks.
var ErrDuplicateUser = errors.New("user already exists")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their numeric id.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email,
	// regardless of authentication provider.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByProvider retrieves the user linked to an external provider
	// identity. Provider must be a non-local value.
	FindByProvider(ctx context.Context, provider, providerID string) (*entity.User, error)

	// Create persists a new user entity and assigns its id.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error
}
