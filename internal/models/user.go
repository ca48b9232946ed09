package models

import "github.com/shopspring/decimal"

// User mirrors a row of the users table.
type User struct {
	UserID       string  `db:"id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	Name         string  `db:"name"`
	Role         string  `db:"role"`
	PlanID       *string `db:"plan_id"`
	IsActive     bool    `db:"is_active"`
	AuditFields
}

// Plan mirrors a row of the plans table.
type Plan struct {
	PlanID      string          `db:"id"`
	Name        string          `db:"name"`
	Price       decimal.Decimal `db:"price"`
	Description *string         `db:"description"`
	MaxClients  *int            `db:"max_clients"`
	MaxLoans    *int            `db:"max_loans"`
	AuditFields
}
