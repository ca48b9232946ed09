package services

import (
	"context"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
)

type dashboardService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	loc           *time.Location
	now           func() time.Time
}

// DashboardServiceOption is a function that configures a dashboardService
type DashboardServiceOption func(*dashboardService)

// WithDashboardClock overrides the time source that decides what "today" is.
func WithDashboardClock(now func() time.Time) DashboardServiceOption {
	return func(s *dashboardService) {
		s.now = now
	}
}

// NewDashboardService computes day boundaries in loc; nil means UTC.
func NewDashboardService(reportingRepo portsrepo.ReportingRepository, loc *time.Location, options ...DashboardServiceOption) portssvc.DashboardSvcFacade {
	if loc == nil {
		loc = time.UTC
	}
	s := &dashboardService{reportingRepo: reportingRepo, loc: loc, now: time.Now}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

func (s *dashboardService) window() domain.AlertWindow {
	start, end := domain.DayBounds(s.now(), s.loc)
	return domain.AlertWindow{StartOfToday: start, StartOfTomorrow: end}
}

func (s *dashboardService) Summary(ctx context.Context, tenantID string) (domain.DashboardSummary, error) {
	summary, err := s.reportingRepo.DashboardSummary(ctx, tenantID, s.window())
	if err != nil {
		s.LogError(ctx, err, "Failed to compute dashboard summary")
		return domain.DashboardSummary{}, err
	}
	return summary, nil
}

func (s *dashboardService) Alerts(ctx context.Context, tenantID string) (domain.Alerts, error) {
	alerts, err := s.reportingRepo.InstallmentAlerts(ctx, tenantID, s.window())
	if err != nil {
		s.LogError(ctx, err, "Failed to compute installment alerts")
		return domain.Alerts{}, err
	}
	if alerts.DueToday == nil {
		alerts.DueToday = []domain.InstallmentAlert{}
	}
	if alerts.Late == nil {
		alerts.Late = []domain.InstallmentAlert{}
	}
	return alerts, nil
}

func (s *dashboardService) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	stats, err := s.reportingRepo.AdminStats(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute admin stats")
		return domain.AdminStats{}, err
	}
	return stats, nil
}
