package repositories

import "microshop/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List(skip, limit int) ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	Count() (int, error)
}
