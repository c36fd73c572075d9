package models

import "time"

// Roles a user can hold
const (
	RoleTraveler = "traveler"
	RoleAdmin    = "admin"
)

// User represents a registered traveler or administrator
type User struct {
	ID           int64     `json:"id" db:"id"`
	Title        *string   `json:"title" db:"title"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	Role         string    `json:"role" db:"role"`
	Phone        string    `json:"phone" db:"phone"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleTraveler || role == RoleAdmin
}
