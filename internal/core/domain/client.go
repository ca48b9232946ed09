package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// DefaultRating is assigned to new clients; 1 is the riskiest.
	DefaultRating = 5
	MinRating     = 1
	MaxRating     = 5
)

// Client is a borrower registered by a tenant.
type Client struct {
	ClientID    string           `json:"clientID"`
	UserID      string           `json:"userID"`
	Name        string           `json:"name"`
	Whatsapp    *string          `json:"whatsapp,omitempty"`
	CPF         *string          `json:"cpf,omitempty"`
	RG          *string          `json:"rg,omitempty"`
	Address     *string          `json:"address,omitempty"`
	MotherName  *string          `json:"motherName,omitempty"`
	Pix         *string          `json:"pix,omitempty"`
	Bank        *string          `json:"bank,omitempty"`
	Observation *string          `json:"observation,omitempty"`
	Group       *string          `json:"group,omitempty"`
	Rating      int              `json:"rating"`
	Documents   []ClientDocument `json:"documents,omitempty"`
	Loans       []Loan           `json:"loans,omitempty"`
	AuditFields
}

// ValidRating reports whether r is on the 1..5 star scale.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// ClientDocument is a file attached to a client. StorageKey locates the blob in the document store.
type ClientDocument struct {
	DocumentID string    `json:"documentID"`
	ClientID   string    `json:"clientID"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	StorageKey string    `json:"-"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ClientStats summarizes a client's history across all of its loans.
type ClientStats struct {
	TotalLoaned      decimal.Decimal `json:"totalLoaned"`
	TotalDebt        decimal.Decimal `json:"totalDebt"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	ActiveLoansCount int             `json:"activeLoansCount"`
}
