package repositories

import (
	"sync"

	"github.com/google/uuid"

	"microshop/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// The ids slice preserves insertion order so List is stable; the map is
// the lookup index. All state is volatile and lost on process exit.
type MemoryUserRepository struct {
	users map[string]models.User
	ids   []string
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user, assigning an ID if none is set.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	r.ids = append(r.ids, user.ID)
	return nil
}

// GetByID returns a user by its ID.
func (r *MemoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetByEmail returns the user holding the given email, matched case-exact.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.ids {
		if user := r.users[id]; user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// List returns a skip/limit window over the insertion-ordered collection.
func (r *MemoryUserRepository) List(skip, limit int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lo, hi := pageBounds(skip, limit, len(r.ids))
	users := make([]models.User, 0, hi-lo)
	for _, id := range r.ids[lo:hi] {
		users = append(users, r.users[id])
	}
	return users, nil
}

// Update overwrites an existing user record in place.
func (r *MemoryUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user unconditionally. There is no tombstone.
func (r *MemoryUserRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored users.
func (r *MemoryUserRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids), nil
}
