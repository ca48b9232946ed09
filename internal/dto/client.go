package dto

import (
	"time"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest registers a borrower. Blank optional fields are stored as null.
type CreateClientRequest struct {
	Name        string  `json:"name" binding:"required,max=160"`
	Whatsapp    *string `json:"whatsapp" binding:"omitempty,max=40"`
	CPF         *string `json:"cpf" binding:"omitempty,max=20"`
	RG          *string `json:"rg" binding:"omitempty,max=30"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	MotherName  *string `json:"motherName" binding:"omitempty,max=160"`
	Pix         *string `json:"pix" binding:"omitempty,max=120"`
	Bank        *string `json:"bank" binding:"omitempty,max=120"`
	Observation *string `json:"observation"`
	Group       *string `json:"group" binding:"omitempty,max=80"`
	Rating      *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// UpdateClientRequest changes only the fields present in the payload.
type UpdateClientRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=160"`
	Whatsapp    *string `json:"whatsapp" binding:"omitempty,max=40"`
	CPF         *string `json:"cpf" binding:"omitempty,max=20"`
	RG          *string `json:"rg" binding:"omitempty,max=30"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	MotherName  *string `json:"motherName" binding:"omitempty,max=160"`
	Pix         *string `json:"pix" binding:"omitempty,max=120"`
	Bank        *string `json:"bank" binding:"omitempty,max=120"`
	Observation *string `json:"observation"`
	Group       *string `json:"group" binding:"omitempty,max=80"`
	Rating      *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// ClientResponse is the public view of a client.
type ClientResponse struct {
	ClientID    string             `json:"id"`
	Name        string             `json:"name"`
	Whatsapp    *string            `json:"whatsapp"`
	CPF         *string            `json:"cpf"`
	RG          *string            `json:"rg"`
	Address     *string            `json:"address"`
	MotherName  *string            `json:"motherName"`
	Pix         *string            `json:"pix"`
	Bank        *string            `json:"bank"`
	Observation *string            `json:"observation"`
	Group       *string            `json:"group"`
	Rating      int                `json:"rating"`
	Documents   []DocumentResponse `json:"documents"`
	Loans       []LoanResponse     `json:"loans"`
	CreatedAt   time.Time          `json:"createdAt"`
}

func ToClientResponse(c *domain.Client) ClientResponse {
	docs := make([]DocumentResponse, len(c.Documents))
	for i := range c.Documents {
		docs[i] = ToDocumentResponse(&c.Documents[i])
	}
	return ClientResponse{
		ClientID:    c.ClientID,
		Name:        c.Name,
		Whatsapp:    c.Whatsapp,
		CPF:         c.CPF,
		RG:          c.RG,
		Address:     c.Address,
		MotherName:  c.MotherName,
		Pix:         c.Pix,
		Bank:        c.Bank,
		Observation: c.Observation,
		Group:       c.Group,
		Rating:      c.Rating,
		Documents:   docs,
		Loans:       ToLoanResponses(c.Loans),
		CreatedAt:   c.CreatedAt,
	}
}

func ToClientResponses(clients []domain.Client) []ClientResponse {
	out := make([]ClientResponse, len(clients))
	for i := range clients {
		out[i] = ToClientResponse(&clients[i])
	}
	return out
}

// ClientStatsResponse summarizes a client's history.
type ClientStatsResponse struct {
	TotalLoaned      decimal.Decimal `json:"totalLoaned"`
	TotalDebt        decimal.Decimal `json:"totalDebt"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	ActiveLoansCount int             `json:"activeLoansCount"`
}

func ToClientStatsResponse(s domain.ClientStats) ClientStatsResponse {
	return ClientStatsResponse(s)
}

// DocumentResponse is the public view of an attached document.
type DocumentResponse struct {
	DocumentID string    `json:"id"`
	ClientID   string    `json:"clientId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	MimeType   string    `json:"type"`
	Size       int64     `json:"size"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToDocumentResponse(d *domain.ClientDocument) DocumentResponse {
	return DocumentResponse{
		DocumentID: d.DocumentID,
		ClientID:   d.ClientID,
		Name:       d.Name,
		URL:        d.URL,
		MimeType:   d.MimeType,
		Size:       d.Size,
		CreatedAt:  d.CreatedAt,
	}
}
