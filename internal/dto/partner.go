package dto

import (
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest registers a referral partner.
type CreatePartnerRequest struct {
	Name           string           `json:"name" binding:"required,max=160"`
	PixKey         *string          `json:"pixKey" binding:"omitempty,max=120"`
	CommissionRate *decimal.Decimal `json:"commissionRate" binding:"omitempty,gte=0,lte=100"`
}

// PartnerResponse is the public view of a partner.
type PartnerResponse struct {
	PartnerID      string           `json:"id"`
	Name           string           `json:"name"`
	PixKey         *string          `json:"pixKey"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID:      p.PartnerID,
		Name:           p.Name,
		PixKey:         p.PixKey,
		CommissionRate: p.CommissionRate,
		CreatedAt:      p.CreatedAt,
	}
}

func ToPartnerResponses(partners []domain.Partner) []PartnerResponse {
	out := make([]PartnerResponse, len(partners))
	for i := range partners {
		out[i] = ToPartnerResponse(&partners[i])
	}
	return out
}
