package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
)

// User is a marketplace participant: an item owner, a booker, or both.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new User after validating the required fields.
func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("valid email is required")
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a User from persistence data (no validation).
func ReconstructUser(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Rename updates the user's display name.
func (u *User) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("user name is required")
	}
	u.name = name
	u.updatedAt = time.Now().UTC()
	return nil
}

// ChangeEmail updates the user's email address.
func (u *User) ChangeEmail(email string) error {
	if !strings.Contains(email, "@") {
		return domain.NewValidationError("valid email is required")
	}
	u.email = email
	u.updatedAt = time.Now().UTC()
	return nil
}
