package services

import (
	"context"
	"io"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/dto"
)

// ClientReaderSvc defines tenant-scoped client reads.
type ClientReaderSvc interface {
	ListClients(ctx context.Context, tenantID string) ([]domain.Client, error)
	GetClient(ctx context.Context, tenantID, clientID string) (*domain.Client, error)
	GetClientStats(ctx context.Context, tenantID, clientID string) (domain.ClientStats, error)
}

// ClientWriterSvc defines tenant-scoped client writes.
type ClientWriterSvc interface {
	CreateClient(ctx context.Context, tenantID string, req dto.CreateClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, tenantID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, tenantID, clientID string) error
}

// ClientDocumentSvc manages files attached to clients.
type ClientDocumentSvc interface {
	// UploadDocument sniffs the content type, enforces the size limit and stores the blob.
	UploadDocument(ctx context.Context, tenantID, clientID, fileName string, content io.Reader) (*domain.ClientDocument, error)
	DeleteDocument(ctx context.Context, tenantID, documentID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
	ClientDocumentSvc
}

// PartnerSvcFacade manages the partners that refer loans.
type PartnerSvcFacade interface {
	ListPartners(ctx context.Context, tenantID string) ([]domain.Partner, error)
	CreatePartner(ctx context.Context, tenantID string, req dto.CreatePartnerRequest) (*domain.Partner, error)
	DeletePartner(ctx context.Context, tenantID, partnerID string) error
}
