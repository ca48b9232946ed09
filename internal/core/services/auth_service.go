package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/platform/config"
	"github.com/SscSPs/hk_loans_app/internal/utils"
	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
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
		Role:         domain.RoleUser,
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to register user")
		}
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login failed: unknown user")
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login failed: wrong password", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidCredentials)
	}
	if !user.IsActive {
		s.LogWarn(ctx, "Login refused: inactive user", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: account is disabled", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{Token: token, Name: user.Name, Role: string(user.Role)}, nil
}
