package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/utils"
	"github.com/google/uuid"
)

// userService backs the admin user-management screens.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	planRepo portsrepo.PlanRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, planRepo portsrepo.PlanRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, planRepo: planRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	return user, nil
}

func (s *userService) checkPlan(ctx context.Context, planID *string) error {
	if planID == nil {
		return nil
	}
	if _, err := s.planRepo.FindPlanByID(ctx, *planID); err != nil {
		return lookupErr(err, "plan", *planID)
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	role := domain.RoleUser
	if req.Role != "" {
		role = domain.Role(req.Role)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}
	planID := emptyToNil(req.PlanID)
	if err := s.checkPlan(ctx, planID); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Role:         role,
		PlanID:       planID,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
		}
		if userID == requestingUserID && role != domain.RoleAdmin {
			return nil, fmt.Errorf("%w: admins cannot remove their own admin role", apperrors.ErrValidation)
		}
		user.Role = role
	}
	if req.ClearPlan {
		user.PlanID = nil
	} else if planID := emptyToNil(req.PlanID); planID != nil {
		if err := s.checkPlan(ctx, planID); err != nil {
			return nil, err
		}
		user.PlanID = planID
	}
	user.LastUpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) ToggleUserStatus(ctx context.Context, userID string, requestingUserID string) (*domain.User, error) {
	if userID == requestingUserID {
		return nil, fmt.Errorf("%w: you cannot deactivate your own account", apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}

	user.IsActive = !user.IsActive
	user.LastUpdatedAt = time.Now().UTC()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User status toggled", slog.String("user_id", userID), slog.Bool("is_active", user.IsActive))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID == requestingUserID {
		return fmt.Errorf("%w: you cannot delete your own account", apperrors.ErrValidation)
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return lookupErr(err, "user", userID)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

type planService struct {
	BaseService
	planRepo portsrepo.PlanRepositoryFacade
}

func NewPlanService(planRepo portsrepo.PlanRepositoryFacade) portssvc.PlanSvcFacade {
	return &planService{planRepo: planRepo}
}

var _ portssvc.PlanSvcFacade = (*planService)(nil)

func (s *planService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.FindPlans(ctx)
}

func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*domain.Plan, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidation)
	}
	now := time.Now().UTC()
	plan := domain.Plan{
		PlanID:      uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price.Round(2),
		Description: emptyToNil(req.Description),
		MaxClients:  req.MaxClients,
		MaxLoans:    req.MaxLoans,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.planRepo.SavePlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "Failed to create plan")
		return nil, err
	}
	s.LogInfo(ctx, "Plan created", slog.String("plan_id", plan.PlanID))
	return &plan, nil
}

func (s *planService) DeletePlan(ctx context.Context, planID string) error {
	if err := s.planRepo.DeletePlan(ctx, planID); err != nil {
		return lookupErr(err, "plan", planID)
	}
	s.LogInfo(ctx, "Plan deleted", slog.String("plan_id", planID))
	return nil
}
