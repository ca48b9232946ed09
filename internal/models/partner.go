package models

import "github.com/shopspring/decimal"

// Partner mirrors a row of the partners table.
type Partner struct {
	PartnerID      string           `db:"id"`
	UserID         string           `db:"user_id"`
	Name           string           `db:"name"`
	PixKey         *string          `db:"pix_key"`
	CommissionRate *decimal.Decimal `db:"commission_rate"`
	AuditFields
}
