package services

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
)

// DashboardSvcFacade provides read-only projections recomputed on every call.
type DashboardSvcFacade interface {
	Summary(ctx context.Context, tenantID string) (domain.DashboardSummary, error)
	Alerts(ctx context.Context, tenantID string) (domain.Alerts, error)

	// AdminStats aggregates across every tenant.
	AdminStats(ctx context.Context) (domain.AdminStats, error)
}
