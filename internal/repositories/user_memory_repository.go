package repositories

import (
	"fmt"
	"sync"
	"time"

	"prototype/internal/models"
	"prototype/internal/shared"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Users are keyed by username; ids are assigned from a serialized counter.
type MemoryUserRepository struct {
	users  map[string]models.User
	order  []string // usernames in insertion order
	nextID int
	mu     sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:  make(map[string]models.User),
		nextID: 1,
	}
}

// Create adds a new user, assigning its id. The caller is expected to have
// checked uniqueness via the service layer, but the invariant is enforced
// here as well.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("user %q: %w", user.Username, shared.ErrUsernameTaken)
	}

	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	r.users[user.Username] = *user
	r.order = append(r.order, user.Username)
	return nil
}

// GetByUsername returns the user with the given username.
func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, shared.ErrNotFound)
	}
	return &user, nil
}

// GetByEmail returns the user with the given email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, username := range r.order {
		if user := r.users[username]; user.Email == email {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %q: %w", email, shared.ErrNotFound)
}

// GetAll returns all users in registration order.
func (r *MemoryUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.order))
	for _, username := range r.order {
		userList = append(userList, r.users[username])
	}
	return userList, nil
}
