package entities

import (
	"time"
)

// UserRole represents a user's authorization level
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User represents an account holding a fictitious-currency balance
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Role         UserRole  `db:"role"`
	Balance      int64     `db:"balance"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// IsAdmin checks if the user may manage events
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasSufficientBalance checks if the user can cover an amount
func (u *User) HasSufficientBalance(amount int64) bool {
	return u.Balance >= amount
}
