package dto

import (
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest defines a subscription plan.
type CreatePlanRequest struct {
	Name        string          `json:"name" binding:"required,max=80"`
	Price       decimal.Decimal `json:"price" binding:"gte=0"`
	Description *string         `json:"description"`
	MaxClients  *int            `json:"maxClients" binding:"omitempty,min=1"`
	MaxLoans    *int            `json:"maxLoans" binding:"omitempty,min=1"`
}

// PlanResponse is the public view of a plan.
type PlanResponse struct {
	PlanID      string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	MaxClients  *int            `json:"maxClients,omitempty"`
	MaxLoans    *int            `json:"maxLoans,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func ToPlanResponse(p *domain.Plan) PlanResponse {
	return PlanResponse{
		PlanID:      p.PlanID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		MaxClients:  p.MaxClients,
		MaxLoans:    p.MaxLoans,
		CreatedAt:   p.CreatedAt,
	}
}

func ToPlanResponses(plans []domain.Plan) []PlanResponse {
	out := make([]PlanResponse, len(plans))
	for i := range plans {
		out[i] = ToPlanResponse(&plans[i])
	}
	return out
}

// AdminStatsResponse holds cross-tenant totals.
type AdminStatsResponse struct {
	TotalUsers   int             `json:"totalUsers"`
	TotalClients int             `json:"totalClients"`
	TotalLoans   int             `json:"totalLoans"`
	TotalLoaned  decimal.Decimal `json:"totalLoaned"`
}

func ToAdminStatsResponse(s domain.AdminStats) AdminStatsResponse {
	return AdminStatsResponse(s)
}
