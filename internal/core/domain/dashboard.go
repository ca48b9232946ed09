package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary holds the tenant's headline figures, recomputed on every read.
type DashboardSummary struct {
	TotalInvested   decimal.Decimal `json:"totalInvested"`
	TotalReceivable decimal.Decimal `json:"totalReceivable"`
	TotalLate       decimal.Decimal `json:"totalLate"`
	TotalReceived   decimal.Decimal `json:"totalReceived"`
}

// InstallmentAlert is a PENDING installment of an ACTIVE loan joined with its client for display.
type InstallmentAlert struct {
	Installment    Installment `json:"installment"`
	LoanID         string      `json:"loanID"`
	ClientID       string      `json:"clientID"`
	ClientName     string      `json:"clientName"`
	ClientWhatsapp *string     `json:"clientWhatsapp,omitempty"`
}

// Alerts groups installments due today and overdue ones.
type Alerts struct {
	DueToday []InstallmentAlert `json:"dueToday"`
	Late     []InstallmentAlert `json:"late"`
}

// AdminStats are cross-tenant totals for the admin panel.
type AdminStats struct {
	TotalUsers   int             `json:"totalUsers"`
	TotalClients int             `json:"totalClients"`
	TotalLoans   int             `json:"totalLoans"`
	TotalLoaned  decimal.Decimal `json:"totalLoaned"`
}

// AlertWindow is the pair of calendar dates, as midnight UTC, separating late, due-today and future installments.
type AlertWindow struct {
	StartOfToday    time.Time
	StartOfTomorrow time.Time
}

// IsLate reports whether a due date falls before today. Anything else inside the window is due today.
func (w AlertWindow) IsLate(due time.Time) bool {
	return due.Before(w.StartOfToday)
}
