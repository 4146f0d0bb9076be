package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shareloop/service-rental/internal/domain"
	userDomain "github.com/shareloop/service-rental/internal/domain/user"
)

// UserRepository is an in-memory implementation of the user persistence
// contract.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*userDomain.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*userDomain.User)}
}

// FindByID retrieves a user by its unique identifier.
func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return cloneUser(u), nil
}

// Exists reports whether a user with the given identifier is stored.
func (r *UserRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// ListAll retrieves all users.
func (r *UserRepository) ListAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, cloneUser(u))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result, nil
}

// Save persists a new user.
func (r *UserRepository) Save(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[u.ID()] = cloneUser(u)
	return nil
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	r.users[u.ID()] = cloneUser(u)
	return nil
}

// Delete removes a user.
func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func cloneUser(u *userDomain.User) *userDomain.User {
	return userDomain.ReconstructUser(u.ID(), u.Name(), u.Email(), u.CreatedAt(), u.UpdatedAt())
}
