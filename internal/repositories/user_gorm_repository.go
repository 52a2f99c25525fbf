package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"microshop/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository. It is a
// drop-in substitute for the in-memory store; email uniqueness is still
// enforced by the service-level scan, not a database constraint, so both
// backends behave identically.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new GORMUserRepository and migrates its
// table.
func NewGORMUserRepository(db *gorm.DB) (*GORMUserRepository, error) {
	if err := db.AutoMigrate(&userRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}
	return &GORMUserRepository{db: db}, nil
}

func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	row := userRowFrom(user)
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var row userRow
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return row.toUser(), nil
}

func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var row userRow
	if err := r.db.First(&row, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return row.toUser(), nil
}

func (r *GORMUserRepository) List(skip, limit int) ([]models.User, error) {
	var total int64
	if err := r.db.Model(&userRow{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	lo, hi := pageBounds(skip, limit, int(total))

	users := make([]models.User, 0, hi-lo)
	if lo == hi {
		return users, nil
	}

	var rows []userRow
	if err := r.db.Order("seq").Offset(lo).Limit(hi - lo).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, row := range rows {
		users = append(users, *row.toUser())
	}
	return users, nil
}

func (r *GORMUserRepository) Update(user *models.User) error {
	var row userRow
	if err := r.db.First(&row, "id = ?", user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load user %s: %w", user.ID, err)
	}
	row.Name = user.Name
	row.Email = user.Email
	row.Age = user.Age
	row.CreatedAt = user.CreatedAt
	if err := r.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

func (r *GORMUserRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&userRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GORMUserRepository) Count() (int, error) {
	var total int64
	if err := r.db.Model(&userRow{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return int(total), nil
}

func userRowFrom(user *models.User) userRow {
	return userRow{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
	}
}

func (row *userRow) toUser() *models.User {
	return &models.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Age:       row.Age,
		CreatedAt: row.CreatedAt,
	}
}
