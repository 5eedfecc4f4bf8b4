package repositories

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"storefront/models"
	"storefront/utils"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// UserRepository holds the gateway's accounts in memory, keyed by
// lower-cased email. Passwords are stored as argon2id hashes.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
	order   []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*models.User)}
}

type demoAccount struct {
	id, email, name, password string
}

var demoAccounts = []demoAccount{
	{"user_001", "demo@example.com", "Demo User", "demo123"},
	{"user_002", "john@example.com", "John Doe", "password123"},
	{"user_003", "alice@example.com", "Alice Smith", "secure456"},
}

// NewDemoUserRepository seeds the three onboarding accounts.
func NewDemoUserRepository() (*UserRepository, error) {
	r := NewUserRepository()
	for _, a := range demoAccounts {
		if _, err := r.Create(a.id, a.email, a.name, a.password); err != nil {
			return nil, fmt.Errorf("seed %s: %w", a.email, err)
		}
	}
	return r, nil
}

func (r *UserRepository) Create(id, email, name, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	key := strings.ToLower(strings.TrimSpace(email))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[key]; ok {
		return nil, ErrUserExists
	}
	user := &models.User{ID: id, Email: key, Name: name, PasswordHash: hash}
	r.byEmail[key] = user
	r.order = append(r.order, key)
	return user, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *UserRepository) FindByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byEmail {
		if user.ID == id {
			u := *user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// Authenticate returns the account for email when password matches.
// Unknown email and wrong password produce the same error.
func (r *UserRepository) Authenticate(email, password string) (*models.User, error) {
	user, err := r.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// DemoIdentities lists every account in creation order, without credentials.
func (r *UserRepository) DemoIdentities() []models.DemoIdentity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.DemoIdentity, 0, len(r.order))
	for _, key := range r.order {
		u := r.byEmail[key]
		out = append(out, models.DemoIdentity{Name: u.Name, Email: u.Email})
	}
	return out
}
