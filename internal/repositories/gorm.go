package repositories

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// userRow is the persisted shape of a user. Seq is an auto-increment
// surrogate key so List can reproduce insertion order; ID stays the
// externally visible identifier.
type userRow struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"uniqueIndex;size:36"`
	Name      string
	Email     string `gorm:"size:255"`
	Age       *int
	CreatedAt time.Time
}

// orderRow is the persisted shape of an order. Line items are stored as a
// JSON document since they are never queried individually.
type orderRow struct {
	Seq             uint   `gorm:"primaryKey;autoIncrement"`
	ID              string `gorm:"uniqueIndex;size:36"`
	UserID          string `gorm:"index;size:36"`
	Items           string
	ShippingAddress string
	TotalAmount     float64
	Status          string `gorm:"size:16"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OpenGORM opens a GORM connection for the given DSN, choosing the
// postgres driver for postgres-style DSNs and sqlite otherwise. An empty
// DSN opens a process-local in-memory sqlite database.
func OpenGORM(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "host=") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
