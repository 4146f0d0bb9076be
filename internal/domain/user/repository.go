package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for users.
type UserRepository interface {
	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Exists reports whether a user with the given identifier is stored.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListAll retrieves all users.
	ListAll(ctx context.Context) ([]*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error
}
