package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/core/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_WindowFollowsConfiguredTimezone(t *testing.T) {
	ctx := context.Background()
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 11th is still the 10th in Brazil.
	now := time.Date(2024, time.March, 11, 1, 30, 0, 0, time.UTC)
	want := domain.AlertWindow{
		StartOfToday:    time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		StartOfTomorrow: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
	}

	repo := new(MockReportingRepository)
	summary := domain.DashboardSummary{TotalInvested: money("1000"), TotalLate: money("400")}
	repo.On("DashboardSummary", ctx, tenantA, want).Return(summary, nil).Once()
	repo.On("InstallmentAlerts", ctx, tenantA, want).Return(domain.Alerts{}, nil).Once()

	svc := services.NewDashboardService(repo, saoPaulo, services.WithDashboardClock(func() time.Time { return now }))

	got, err := svc.Summary(ctx, tenantA)
	require.NoError(t, err)
	assert.Equal(t, summary, got)

	alerts, err := svc.Alerts(ctx, tenantA)
	require.NoError(t, err)
	assert.NotNil(t, alerts.DueToday)
	assert.NotNil(t, alerts.Late)
	assert.Empty(t, alerts.Late)

	repo.AssertExpectations(t)
}

func TestDashboard_AdminStatsError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportingRepository)
	boom := errors.New("db down")
	repo.On("AdminStats", ctx).Return(domain.AdminStats{}, boom).Once()

	_, err := services.NewDashboardService(repo, nil).AdminStats(ctx)

	assert.ErrorIs(t, err, boom)
}

// dashboardAt reads the suite's ledger through the real dashboard service at a fixed instant in São Paulo.
func (suite *LoanLedgerTestSuite) dashboardAt(now time.Time) portssvc.DashboardSvcFacade {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	return services.NewDashboardService(suite.store, saoPaulo, services.WithDashboardClock(func() time.Time { return now }))
}

func (suite *LoanLedgerTestSuite) TestDashboard_DateOnlyStartIsDueTodayOnItsDueDate() {
	var req dto.CreateLoanRequest
	suite.Require().NoError(json.Unmarshal([]byte(`{
		"clientId": "client-1", "amount": 1000, "totalAmount": 1200,
		"installmentsCount": 1, "startDate": "2024-01-10"
	}`), &req))
	loan, err := suite.loans.CreateLoan(suite.ctx, tenantA, req)
	suite.Require().NoError(err)
	suite.True(day(2024, time.February, 10).Equal(loan.Installments[0].DueDate))

	saoPaulo := time.FixedZone("BRT", -3*60*60)
	for _, now := range []time.Time{
		time.Date(2024, time.February, 10, 0, 5, 0, 0, saoPaulo),
		time.Date(2024, time.February, 10, 15, 0, 0, 0, saoPaulo),
		time.Date(2024, time.February, 10, 22, 30, 0, 0, saoPaulo), // already the 11th in UTC
	} {
		dash := suite.dashboardAt(now)

		alerts, err := dash.Alerts(suite.ctx, tenantA)
		suite.Require().NoError(err)
		suite.Len(alerts.DueToday, 1, "at %s", now)
		suite.Empty(alerts.Late, "at %s", now)

		summary, err := dash.Summary(suite.ctx, tenantA)
		suite.Require().NoError(err)
		suite.requireMoney("0", summary.TotalLate)
	}

	dash := suite.dashboardAt(time.Date(2024, time.February, 11, 0, 30, 0, 0, saoPaulo))
	alerts, err := dash.Alerts(suite.ctx, tenantA)
	suite.Require().NoError(err)
	suite.Empty(alerts.DueToday)
	suite.Len(alerts.Late, 1)
	summary, err := dash.Summary(suite.ctx, tenantA)
	suite.Require().NoError(err)
	suite.requireMoney("1200", summary.TotalLate)
}

func (suite *LoanLedgerTestSuite) TestDashboard_TimestampStartKeepsCallersDay() {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	var req dto.CreateLoanRequest
	suite.Require().NoError(json.Unmarshal([]byte(`{
		"clientId": "client-1", "amount": 100, "totalAmount": 120,
		"installmentsCount": 1, "startDate": "2024-01-10T22:00:00-03:00"
	}`), &req))

	loan, err := suite.loans.CreateLoan(suite.ctx, tenantA, req)

	suite.Require().NoError(err)
	suite.True(day(2024, time.January, 10).Equal(loan.StartDate))
	alerts, err := suite.dashboardAt(time.Date(2024, time.February, 10, 9, 0, 0, 0, saoPaulo)).Alerts(suite.ctx, tenantA)
	suite.Require().NoError(err)
	suite.Len(alerts.DueToday, 1)
}

func (suite *LoanLedgerTestSuite) TestDashboard_RenegotiatedLoanExcludedFromOpenFigures() {
	suite.seedLoan("loan-1",
		[]string{"50", "100", "100"},
		[]domain.InstallmentStatus{domain.InstallmentPaid, domain.InstallmentPending, domain.InstallmentPending})
	successor, err := suite.loans.RenegotiateLoan(suite.ctx, tenantA, "loan-1", dto.RenegotiateLoanRequest{
		NewTotalAmount:       money("240"),
		NewInstallmentsCount: 2,
		NewStartDate:         &dto.Date{Time: day(2024, time.February, 1)},
		InterestType:         "DAILY",
	})
	suite.Require().NoError(err)

	// A renegotiated loan that still carries a PENDING row must stay out as well.
	suite.seedLoan("loan-2", []string{"70"}, []domain.InstallmentStatus{domain.InstallmentPending})
	stale := suite.store.loans["loan-2"]
	stale.Status = domain.LoanRenegotiated
	suite.store.loans["loan-2"] = stale

	dash := suite.dashboardAt(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
	summary, err := dash.Summary(suite.ctx, tenantA)

	suite.Require().NoError(err)
	suite.requireMoney("200", summary.TotalInvested)
	suite.requireMoney("240", summary.TotalReceivable)
	suite.requireMoney("240", summary.TotalLate)
	suite.requireMoney("50", summary.TotalReceived)

	alerts, err := dash.Alerts(suite.ctx, tenantA)
	suite.Require().NoError(err)
	suite.Empty(alerts.DueToday)
	suite.Require().Len(alerts.Late, 2)
	for _, a := range alerts.Late {
		suite.Equal(successor.LoanID, a.LoanID)
	}

	stats, err := dash.AdminStats(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(3, stats.TotalLoans)
	suite.requireMoney("200", stats.TotalLoaned)
}
