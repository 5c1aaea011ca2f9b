package repository

import (
	"strings"
	"sync"

	"civictrack/models"
)

// UserRepository keeps accounts in memory
type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byLogin map[string]string
	order   []string
}

// NewUserRepository creates an empty user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]*models.User),
		byLogin: make(map[string]string),
	}
}

func loginKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// CreateUser stores a new user. The login key (email or government ID) must be unique.
func (r *UserRepository) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := loginKey(user.LoginKey())
	if _, exists := r.byLogin[key]; exists {
		return ErrDuplicate
	}
	if _, exists := r.users[user.ID]; exists {
		return ErrDuplicate
	}
	stored := *user
	r.users[user.ID] = &stored
	r.byLogin[key] = user.ID
	r.order = append(r.order, user.ID)
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

// GetUserByLogin retrieves a user by email or government ID (case-insensitive)
func (r *UserRepository) GetUserByLogin(key string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[loginKey(key)]
	if !ok {
		return nil, ErrNotFound
	}
	u := *r.users[id]
	return &u, nil
}

// ListUsersByRole returns users of a role in registration order
func (r *UserRepository) ListUsersByRole(role models.Role) []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.User
	for _, id := range r.order {
		if u := r.users[id]; u.Role == role {
			out = append(out, *u)
		}
	}
	return out
}
