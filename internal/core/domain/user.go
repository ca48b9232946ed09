package domain

import (
	"github.com/shopspring/decimal"
)

// Role is the access level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. Each USER is a tenant: every client, partner,
// loan and transaction it creates is scoped to its UserID.
type User struct {
	UserID       string  `json:"userID"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Name         string  `json:"name"`
	Role         Role    `json:"role"`
	PlanID       *string `json:"planID,omitempty"`
	IsActive     bool    `json:"isActive"`
	AuditFields
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Plan is a subscription tier. Nil limits mean unlimited.
type Plan struct {
	PlanID      string          `json:"planID"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	MaxClients  *int            `json:"maxClients,omitempty"`
	MaxLoans    *int            `json:"maxLoans,omitempty"`
	AuditFields
}

// AllowsAnotherClient reports whether a tenant holding current clients may create one more.
func (p *Plan) AllowsAnotherClient(current int) bool {
	return p == nil || p.MaxClients == nil || current < *p.MaxClients
}

// AllowsAnotherLoan reports whether a tenant holding current open loans may create one more.
func (p *Plan) AllowsAnotherLoan(current int) bool {
	return p == nil || p.MaxLoans == nil || current < *p.MaxLoans
}
