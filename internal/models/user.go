package models

import "time"

// User is the users table row.
type User struct {
	UserID        string    `db:"user_id"`
	Username      string    `db:"username"`
	PasswordHash  string    `db:"password_hash"`
	Name          string    `db:"name"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
