package repositories

import (
	"sync"

	"github.com/google/uuid"

	"microshop/internal/models"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
// Orders are kept in insertion order alongside an ID index, guarded by a
// single RWMutex per store.
type MemoryOrderRepository struct {
	orders map[string]models.Order
	ids    []string
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order, assigning an ID if none is set.
func (r *MemoryOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	r.orders[order.ID] = *order
	r.ids = append(r.ids, order.ID)
	return nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// List returns a skip/limit window over the insertion-ordered collection,
// filtered by userID first when it is non-empty.
func (r *MemoryOrderRepository) List(skip, limit int, userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Order, 0, len(r.ids))
	for _, id := range r.ids {
		order := r.orders[id]
		if userID != "" && order.UserID != userID {
			continue
		}
		matched = append(matched, order)
	}
	lo, hi := pageBounds(skip, limit, len(matched))
	return matched[lo:hi], nil
}

// GetByUser returns all orders referencing userID, in insertion order.
func (r *MemoryOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for _, id := range r.ids {
		if order := r.orders[id]; order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// Update overwrites an existing order record in place.
func (r *MemoryOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return ErrNotFound
	}
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order unconditionally.
func (r *MemoryOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	for i, v := range r.ids {
		if v == id {
			r.ids = append(r.ids[:i], r.ids[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored orders.
func (r *MemoryOrderRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ids), nil
}

// CountByStatus returns order counts grouped by status.
func (r *MemoryOrderRepository) CountByStatus() (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, order := range r.orders {
		counts[order.Status]++
	}
	return counts, nil
}
