package domain

import "github.com/shopspring/decimal"

// Partner refers borrowers and earns a commission on the profit of the loans it is attached to.
type Partner struct {
	PartnerID      string           `json:"partnerID"`
	UserID         string           `json:"userID"`
	Name           string           `json:"name"`
	PixKey         *string          `json:"pixKey,omitempty"`
	CommissionRate *decimal.Decimal `json:"commissionRate,omitempty"`
	AuditFields
}

// CommissionFor returns the commission owed on a loan of the given principal and total.
// It is zero when the partner has no positive rate or the loan has no profit.
func (p *Partner) CommissionFor(principal, total decimal.Decimal) decimal.Decimal {
	if p == nil || p.CommissionRate == nil || !p.CommissionRate.IsPositive() {
		return decimal.Zero
	}
	profit := total.Sub(principal)
	if !profit.IsPositive() {
		return decimal.Zero
	}
	return profit.Mul(*p.CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
}
