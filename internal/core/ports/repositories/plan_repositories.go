package repositories

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
)

// PlanRepositoryFacade covers subscription plan persistence.
type PlanRepositoryFacade interface {
	FindPlans(ctx context.Context) ([]domain.Plan, error)
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)
	SavePlan(ctx context.Context, plan domain.Plan) error
	// DeletePlan removes the plan; users on it are left without a plan.
	DeletePlan(ctx context.Context, planID string) error
}
