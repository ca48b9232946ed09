package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/SscSPs/hk_loans_app/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Content types accepted for client documents.
var allowedDocumentTypes = []string{"application/pdf", "image/jpeg", "image/png", "image/webp"}

const defaultDocumentMaxBytes = 5 << 20

type clientService struct {
	BaseService
	clientRepo  portsrepo.ClientRepositoryFacade
	plans       planGuard
	store       storage.DocumentStore
	maxDocBytes int64
}

// ClientServiceOption is a function that configures a clientService
type ClientServiceOption func(*clientService)

// WithPlanLimits enforces the tenant plan's client quota on creation.
func WithPlanLimits(userRepo portsrepo.UserRepositoryFacade, planRepo portsrepo.PlanRepositoryFacade) ClientServiceOption {
	return func(s *clientService) {
		s.plans = planGuard{userRepo: userRepo, planRepo: planRepo}
	}
}

// WithDocumentStore sets where uploaded documents are kept and how large they may be.
func WithDocumentStore(store storage.DocumentStore, maxBytes int64) ClientServiceOption {
	return func(s *clientService) {
		s.store = store
		if maxBytes > 0 {
			s.maxDocBytes = maxBytes
		}
	}
}

func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, options ...ClientServiceOption) portssvc.ClientSvcFacade {
	s := &clientService{clientRepo: clientRepo, maxDocBytes: defaultDocumentMaxBytes}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) ListClients(ctx context.Context, tenantID string) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClients(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, err
	}
	return clients, nil
}

func (s *clientService) loadOwned(ctx context.Context, tenantID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, lookupErr(err, "client", clientID)
	}
	if err := ensureOwner(client.UserID, tenantID, "client"); err != nil {
		s.LogWarn(ctx, "Cross-tenant client access", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetClient(ctx context.Context, tenantID, clientID string) (*domain.Client, error) {
	return s.loadOwned(ctx, tenantID, clientID)
}

func (s *clientService) GetClientStats(ctx context.Context, tenantID, clientID string) (domain.ClientStats, error) {
	if _, err := s.loadOwned(ctx, tenantID, clientID); err != nil {
		return domain.ClientStats{}, err
	}
	return s.clientRepo.ClientStats(ctx, clientID)
}

func (s *clientService) CreateClient(ctx context.Context, tenantID string, req dto.CreateClientRequest) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	rating := domain.DefaultRating
	if req.Rating != nil {
		rating = *req.Rating
	}
	if !domain.ValidRating(rating) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", apperrors.ErrValidation, domain.MinRating, domain.MaxRating)
	}

	plan, err := s.plans.planFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		count, err := s.clientRepo.CountClients(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if !plan.AllowsAnotherClient(count) {
			s.LogWarn(ctx, "Client quota reached", slog.Int("clients", count))
			return nil, limitErr("clients", plan)
		}
	}

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		UserID:      tenantID,
		Name:        name,
		Whatsapp:    emptyToNil(req.Whatsapp),
		CPF:         emptyToNil(req.CPF),
		RG:          emptyToNil(req.RG),
		Address:     emptyToNil(req.Address),
		MotherName:  emptyToNil(req.MotherName),
		Pix:         emptyToNil(req.Pix),
		Bank:        emptyToNil(req.Bank),
		Observation: emptyToNil(req.Observation),
		Group:       emptyToNil(req.Group),
		Rating:      rating,
		Documents:   []domain.ClientDocument{},
		Loans:       []domain.Loan{},
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) UpdateClient(ctx context.Context, tenantID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.loadOwned(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		client.Name = name
	}
	if req.Rating != nil {
		if !domain.ValidRating(*req.Rating) {
			return nil, fmt.Errorf("%w: rating must be between %d and %d", apperrors.ErrValidation, domain.MinRating, domain.MaxRating)
		}
		client.Rating = *req.Rating
	}
	optional := []struct {
		in  *string
		out **string
	}{
		{req.Whatsapp, &client.Whatsapp},
		{req.CPF, &client.CPF},
		{req.RG, &client.RG},
		{req.Address, &client.Address},
		{req.MotherName, &client.MotherName},
		{req.Pix, &client.Pix},
		{req.Bank, &client.Bank},
		{req.Observation, &client.Observation},
		{req.Group, &client.Group},
	}
	for _, f := range optional {
		if f.in != nil {
			*f.out = emptyToNil(f.in)
		}
	}
	client.LastUpdatedAt = time.Now().UTC()

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, tenantID, clientID string) error {
	client, err := s.loadOwned(ctx, tenantID, clientID)
	if err != nil {
		return err
	}
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		return lookupErr(err, "client", clientID)
	}

	for _, doc := range client.Documents {
		s.removeBlob(ctx, doc.StorageKey)
	}
	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID), slog.Int("loans", len(client.Loans)))
	return nil
}

func (s *clientService) removeBlob(ctx context.Context, key string) {
	if s.store == nil || key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		s.LogWarn(ctx, "Failed to remove document blob", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *clientService) UploadDocument(ctx context.Context, tenantID, clientID, fileName string, content io.Reader) (*domain.ClientDocument, error) {
	if s.store == nil {
		return nil, apperrors.NewAppError(503, "document storage is not configured", nil)
	}
	if _, err := s.loadOwned(ctx, tenantID, clientID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(content, s.maxDocBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", apperrors.ErrValidation)
	}
	if int64(len(data)) > s.maxDocBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrValidation, s.maxDocBytes)
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedDocumentTypes...) {
		s.LogWarn(ctx, "Rejected document type", slog.String("mime", mt.String()))
		return nil, fmt.Errorf("%w: file type %s is not allowed", apperrors.ErrValidation, mt.String())
	}

	docID := uuid.NewString()
	key := clientID + "/" + docID + mt.Extension()
	size, err := s.store.Put(ctx, key, bytes.NewReader(data))
	if err != nil {
		s.LogError(ctx, err, "Failed to store document", slog.String("client_id", clientID))
		return nil, err
	}

	name := strings.TrimSpace(filepath.Base(fileName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = docID + mt.Extension()
	}
	doc := domain.ClientDocument{
		DocumentID: docID,
		ClientID:   clientID,
		Name:       name,
		URL:        s.store.URL(key),
		StorageKey: key,
		MimeType:   mt.String(),
		Size:       size,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.clientRepo.SaveDocument(ctx, doc); err != nil {
		s.removeBlob(ctx, key)
		return nil, err
	}

	s.LogInfo(ctx, "Document uploaded", slog.String("document_id", docID), slog.String("mime", doc.MimeType))
	return &doc, nil
}

func (s *clientService) DeleteDocument(ctx context.Context, tenantID, documentID string) error {
	doc, err := s.clientRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return lookupErr(err, "document", documentID)
	}
	if _, err := s.loadOwned(ctx, tenantID, doc.ClientID); err != nil {
		return err
	}
	if err := s.clientRepo.DeleteDocument(ctx, documentID); err != nil {
		return lookupErr(err, "document", documentID)
	}
	s.removeBlob(ctx, doc.StorageKey)
	return nil
}
