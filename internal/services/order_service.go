package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"microshop/internal/models"
	"microshop/internal/repositories"
)

// OrderService handles business logic for the order registry.
type OrderService struct {
	repo     repositories.OrderRepository
	verifier UserVerifier
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo repositories.OrderRepository, verifier UserVerifier) *OrderService {
	return &OrderService{repo: repo, verifier: verifier}
}

// OrderUpdate carries the partial fields of an order update; nil fields
// are left untouched. Only status and shipping address are mutable.
type OrderUpdate struct {
	Status          *string
	ShippingAddress *string
}

// Create accepts a new order after confirming the referenced user exists.
// The existence check is a single bounded attempt: a positively absent
// user fails with ErrUserNotFound, an unverifiable one with
// ErrUserUnverified, and in both cases nothing is persisted. The total is
// fixed here and never recomputed.
func (s *OrderService) Create(ctx context.Context, userID string, items []models.OrderItem, shippingAddress string) (*models.Order, error) {
	switch s.verifier.VerifyUser(ctx, userID) {
	case ExistenceAbsent:
		log.Printf("Rejecting order: user %s not found in user registry", userID)
		return nil, ErrUserNotFound
	case ExistenceUnknown:
		log.Printf("Rejecting order: existence of user %s could not be verified", userID)
		return nil, ErrUserUnverified
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: shippingAddress,
		TotalAmount:     total,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// Get retrieves a single order by ID.
func (s *OrderService) Get(id string) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return order, nil
}

// List returns a skip/limit window over the insertion-ordered collection,
// filtered by userID first when it is non-empty.
func (s *OrderService) List(skip, limit int, userID string) ([]models.Order, error) {
	return s.repo.List(skip, limit, userID)
}

// Update overwrites only the supplied fields of an existing order and
// refreshes UpdatedAt. A status outside the recognized set fails with
// ErrInvalidStatus and leaves the stored record untouched. Transition
// legality is not enforced.
func (s *OrderService) Update(id string, update OrderUpdate) (*models.Order, error) {
	order, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}

	if update.Status != nil {
		if !models.ValidOrderStatus(*update.Status) {
			return nil, ErrInvalidStatus
		}
		order.Status = *update.Status
	}
	if update.ShippingAddress != nil {
		order.ShippingAddress = *update.ShippingAddress
	}
	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return order, nil
}

// Delete removes an order unconditionally.
func (s *OrderService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return nil
}

// GetByUser returns every order referencing userID, in insertion order and
// without pagination. The result may be empty; no user lookup is made.
func (s *OrderService) GetByUser(userID string) ([]models.Order, error) {
	return s.repo.GetByUser(userID)
}

// Count returns the number of stored orders, for metrics.
func (s *OrderService) Count() (int, error) {
	return s.repo.Count()
}

// CountByStatus returns order counts grouped by status, for metrics.
func (s *OrderService) CountByStatus() (map[string]int, error) {
	return s.repo.CountByStatus()
}
