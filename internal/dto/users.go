package dto

import (
	"AIRESCAPE_BACK-END/internal/models"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        int64   `json:"id"`
	Title     *string `json:"title"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Phone     string  `json:"phone"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// UpdateUserRequest lists the user fields PATCH /users/{id} may change.
// Role is honoured for admin callers only.
type UpdateUserRequest struct {
	Title     *string `json:"title"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password"`
	Role      *string `json:"role"`
}

// NewUserResponse converts a models.User
func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Title:     u.Title,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: u.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
