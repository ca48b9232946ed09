package dto

import (
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
)

// CreateUserRequest is the admin form for creating an account.
type CreateUserRequest struct {
	Username string  `json:"username" binding:"required,min=3,max=64"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	Name     string  `json:"name" binding:"required,max=120"`
	Role     string  `json:"role" binding:"omitempty,oneof=USER ADMIN"`
	PlanID   *string `json:"planId" binding:"omitempty,uuid"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=120"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     *string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
	PlanID   *string `json:"planId" binding:"omitempty,uuid"`

	// ClearPlan removes the user's plan; it wins over PlanID.
	ClearPlan bool `json:"clearPlan"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID    string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	PlanID    *string   `json:"planId,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain user to its public view.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      string(u.Role),
		PlanID:    u.PlanID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
