package models

import "time"

// User is a record owned by the user registry.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"` // unique across the store, case-exact
	Age       *int      `json:"age"`
	CreatedAt time.Time `json:"created_at"` // UTC, set once at creation
}
