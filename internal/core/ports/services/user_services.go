package services

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser creates an account on behalf of an admin, with any role and plan.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// ToggleUserStatus flips IsActive. Admins cannot deactivate themselves.
	ToggleUserStatus(ctx context.Context, userID string, requestingUserID string) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes the user and everything the tenant owns.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}

// PlanSvcFacade manages subscription plans.
type PlanSvcFacade interface {
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*domain.Plan, error)
	DeletePlan(ctx context.Context, planID string) error
}
