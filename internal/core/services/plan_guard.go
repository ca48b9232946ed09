package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
)

var ErrPlanLimitReached = errors.New("plan limit reached")

// planGuard resolves a tenant's subscription plan to enforce its quotas.
type planGuard struct {
	userRepo portsrepo.UserRepositoryFacade
	planRepo portsrepo.PlanRepositoryFacade
}

// planFor returns nil when the tenant has no plan (unlimited).
func (g planGuard) planFor(ctx context.Context, tenantID string) (*domain.Plan, error) {
	if g.userRepo == nil || g.planRepo == nil {
		return nil, nil
	}
	user, err := g.userRepo.FindUserByID(ctx, tenantID)
	if err != nil {
		return nil, lookupErr(err, "user", tenantID)
	}
	if user.PlanID == nil {
		return nil, nil
	}
	plan, err := g.planRepo.FindPlanByID(ctx, *user.PlanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	return plan, nil
}

func limitErr(what string, plan *domain.Plan) error {
	return fmt.Errorf("%w: %w: plan %q allows no more %s", apperrors.ErrValidation, ErrPlanLimitReached, plan.Name, what)
}
