package services

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/dto"
)

// AuthSvcFacade covers self-service registration and login.
type AuthSvcFacade interface {
	// Register creates a USER account. A taken username is apperrors.ErrDuplicate.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies the credentials and issues a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
