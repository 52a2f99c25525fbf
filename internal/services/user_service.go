package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"microshop/internal/models"
	"microshop/internal/repositories"
)

// UserService handles business logic for the user registry.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// UserUpdate carries the partial fields of a user update; nil fields are
// left untouched. ID and CreatedAt are immutable.
type UserUpdate struct {
	Name  *string
	Email *string
	Age   *int
}

// Create registers a new user. The email must not be held by any existing
// record (case-exact match).
func (s *UserService) Create(name, email string, age *int) (*models.User, error) {
	if _, err := s.repo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Get retrieves a single user by ID.
func (s *UserService) Get(id string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// List returns a skip/limit window over the insertion-ordered collection.
func (s *UserService) List(skip, limit int) ([]models.User, error) {
	return s.repo.List(skip, limit)
}

// Update overwrites only the supplied fields of an existing user. Changing
// the email to one held by a different record fails with ErrEmailTaken;
// re-asserting the record's own email succeeds.
func (s *UserService) Update(id string, update UserUpdate) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}

	if update.Email != nil {
		holder, err := s.repo.GetByEmail(*update.Email)
		if err == nil && holder.ID != id {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Age != nil {
		user.Age = update.Age
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return user, nil
}

// Delete removes a user unconditionally. Orders referencing the user are
// not cascaded; their user_id dangles from this point on.
func (s *UserService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}

// Count returns the number of registered users, for metrics.
func (s *UserService) Count() (int, error) {
	return s.repo.Count()
}
