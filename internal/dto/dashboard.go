package dto

import (
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardSummaryResponse holds the tenant's headline figures.
type DashboardSummaryResponse struct {
	TotalInvested   decimal.Decimal `json:"totalInvested"`
	TotalReceivable decimal.Decimal `json:"totalReceivable"`
	TotalLate       decimal.Decimal `json:"totalLate"`
	TotalReceived   decimal.Decimal `json:"totalReceived"`
}

func ToDashboardSummaryResponse(s domain.DashboardSummary) DashboardSummaryResponse {
	return DashboardSummaryResponse(s)
}

// AlertResponse is an installment joined with its loan and client.
type AlertResponse struct {
	InstallmentResponse
	ClientID       string  `json:"clientId"`
	ClientName     string  `json:"clientName"`
	ClientWhatsapp *string `json:"clientWhatsapp"`
}

// AlertsResponse groups installments due today and overdue ones.
type AlertsResponse struct {
	DueToday []AlertResponse `json:"dueToday"`
	Late     []AlertResponse `json:"late"`
}

func toAlertResponses(alerts []domain.InstallmentAlert) []AlertResponse {
	out := make([]AlertResponse, len(alerts))
	for i := range alerts {
		out[i] = AlertResponse{
			InstallmentResponse: ToInstallmentResponse(&alerts[i].Installment),
			ClientID:            alerts[i].ClientID,
			ClientName:          alerts[i].ClientName,
			ClientWhatsapp:      alerts[i].ClientWhatsapp,
		}
	}
	return out
}

func ToAlertsResponse(a domain.Alerts) AlertsResponse {
	return AlertsResponse{
		DueToday: toAlertResponses(a.DueToday),
		Late:     toAlertResponses(a.Late),
	}
}
