package mapping

import (
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Role:         string(d.Role),
		PlanID:       d.PlanID,
		IsActive:     d.IsActive,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         domain.Role(m.Role),
		PlanID:       m.PlanID,
		IsActive:     m.IsActive,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToModelPlan converts a domain Plan to a model Plan
func ToModelPlan(d domain.Plan) models.Plan {
	return models.Plan{
		PlanID:      d.PlanID,
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		MaxClients:  d.MaxClients,
		MaxLoans:    d.MaxLoans,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainPlan converts a model Plan to a domain Plan
func ToDomainPlan(m models.Plan) domain.Plan {
	return domain.Plan{
		PlanID:      m.PlanID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		MaxClients:  m.MaxClients,
		MaxLoans:    m.MaxLoans,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}
