package repositories

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClients lists a tenant's clients ordered by name, each with its loans.
	FindClients(ctx context.Context, userID string) ([]domain.Client, error)

	// FindClientByID retrieves a client with its documents. Ownership is checked by the caller.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// CountClients returns how many clients a tenant has.
	CountClients(ctx context.Context, userID string) (int, error)

	// ClientStats aggregates totals over every loan of the client.
	ClientStats(ctx context.Context, clientID string) (domain.ClientStats, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client. A CPF already used by the tenant yields apperrors.ErrDuplicate.
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	// DeleteClient removes the client together with its loans, installments and documents.
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientDocumentRepository manages document metadata; blobs live in the document store.
type ClientDocumentRepository interface {
	SaveDocument(ctx context.Context, doc domain.ClientDocument) error
	FindDocumentByID(ctx context.Context, documentID string) (*domain.ClientDocument, error)
	FindDocumentsByClient(ctx context.Context, clientID string) ([]domain.ClientDocument, error)
	DeleteDocument(ctx context.Context, documentID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
	ClientDocumentRepository
}
