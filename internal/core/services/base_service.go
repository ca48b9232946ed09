package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/middleware"
	"github.com/SscSPs/hk_loans_app/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Metrics *metrics.Metrics
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogWarn logs a rejected business rule
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// txFailed turns an error escaping a unit of work into what the caller sees.
// Business errors pass through; anything else is reported as a generic failure.
func (s *BaseService) txFailed(ctx context.Context, op string, err error) error {
	for _, sentinel := range []error{
		apperrors.ErrValidation,
		apperrors.ErrNotFound,
		apperrors.ErrForbidden,
		apperrors.ErrConflict,
		apperrors.ErrDuplicate,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	s.LogError(ctx, err, "Atomic operation rolled back", slog.String("operation", op))
	return apperrors.NewAppError(http.StatusInternalServerError, "operation failed", err)
}

func (s *BaseService) countLoanCreated() {
	if s.Metrics != nil {
		s.Metrics.LoansCreated.Inc()
	}
}

func (s *BaseService) countRenegotiation() {
	if s.Metrics != nil {
		s.Metrics.LoansRenegotiated.Inc()
	}
}

func (s *BaseService) countPayment(mode string, amount decimal.Decimal) {
	if s.Metrics != nil {
		s.Metrics.InstallmentsPaid.WithLabelValues(mode).Inc()
		s.Metrics.AmountReceived.Add(amount.InexactFloat64())
	}
}

func (s *BaseService) countReceived(amount decimal.Decimal) {
	if s.Metrics != nil && amount.IsPositive() {
		s.Metrics.AmountReceived.Add(amount.InexactFloat64())
	}
}

func (s *BaseService) countDisbursed(amount decimal.Decimal) {
	if s.Metrics != nil && amount.IsPositive() {
		s.Metrics.AmountDisbursed.Add(amount.InexactFloat64())
	}
}

// ensureOwner rejects access to an entity owned by another tenant.
func ensureOwner(ownerID, tenantID, entity string) error {
	if ownerID != tenantID {
		return fmt.Errorf("%w: %s belongs to another account", apperrors.ErrForbidden, entity)
	}
	return nil
}

// lookupErr adds the entity name to repository errors.
func lookupErr(err error, entity, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", entity, id, apperrors.ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %s: %w", entity, id, err)
}

// emptyToNil trims s and maps blank strings to nil.
func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
