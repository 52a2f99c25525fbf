package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"microshop/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new GORMOrderRepository and migrates
// its table.
func NewGORMOrderRepository(db *gorm.DB) (*GORMOrderRepository, error) {
	if err := db.AutoMigrate(&orderRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate orders table: %w", err)
	}
	return &GORMOrderRepository{db: db}, nil
}

func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	row, err := orderRowFrom(order)
	if err != nil {
		return err
	}
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var row orderRow
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	return row.toOrder()
}

func (r *GORMOrderRepository) List(skip, limit int, userID string) ([]models.Order, error) {
	query := r.db.Model(&orderRow{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	lo, hi := pageBounds(skip, limit, int(total))

	orders := make([]models.Order, 0, hi-lo)
	if lo == hi {
		return orders, nil
	}

	var rows []orderRow
	if err := query.Order("seq").Offset(lo).Limit(hi - lo).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	for _, row := range rows {
		order, err := row.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var rows []orderRow
	if err := r.db.Order("seq").Find(&rows, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		order, err := row.toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *GORMOrderRepository) Update(order *models.Order) error {
	var row orderRow
	if err := r.db.First(&row, "id = ?", order.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load order %s: %w", order.ID, err)
	}
	updated, err := orderRowFrom(order)
	if err != nil {
		return err
	}
	updated.Seq = row.Seq
	if err := r.db.Save(&updated).Error; err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.ID, err)
	}
	return nil
}

func (r *GORMOrderRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&orderRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GORMOrderRepository) Count() (int, error) {
	var total int64
	if err := r.db.Model(&orderRow{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return int(total), nil
}

func (r *GORMOrderRepository) CountByStatus() (map[string]int, error) {
	var rows []struct {
		Status string
		N      int
	}
	err := r.db.Model(&orderRow{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.N
	}
	return counts, nil
}

func orderRowFrom(order *models.Order) (orderRow, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return orderRow{}, fmt.Errorf("failed to encode order items: %w", err)
	}
	return orderRow{
		ID:              order.ID,
		UserID:          order.UserID,
		Items:           string(items),
		ShippingAddress: order.ShippingAddress,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}, nil
}

func (row *orderRow) toOrder() (*models.Order, error) {
	var items []models.OrderItem
	if row.Items != "" {
		if err := json.Unmarshal([]byte(row.Items), &items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}
	return &models.Order{
		ID:              row.ID,
		UserID:          row.UserID,
		Items:           items,
		ShippingAddress: row.ShippingAddress,
		TotalAmount:     row.TotalAmount,
		Status:          row.Status,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}
