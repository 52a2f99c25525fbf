package repositories

import "microshop/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// List returns orders in insertion order, filtered by userID when it is
	// non-empty, with the skip/limit window applied after filtering.
	List(skip, limit int, userID string) ([]models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	Update(order *models.Order) error
	Delete(id string) error
	Count() (int, error)
	CountByStatus() (map[string]int, error)
}
