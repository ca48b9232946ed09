package repositories

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
)

// ReportingRepository computes read-only projections straight from the source tables.
type ReportingRepository interface {
	// DashboardSummary aggregates a tenant's figures; startOfToday separates late installments.
	DashboardSummary(ctx context.Context, userID string, window domain.AlertWindow) (domain.DashboardSummary, error)

	// InstallmentAlerts lists PENDING installments of ACTIVE loans due before the end of today.
	InstallmentAlerts(ctx context.Context, userID string, window domain.AlertWindow) (domain.Alerts, error)

	// AdminStats aggregates totals across every tenant.
	AdminStats(ctx context.Context) (domain.AdminStats, error)
}
