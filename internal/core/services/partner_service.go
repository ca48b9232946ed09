package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hk_loans_app/internal/core/ports/services"
	"github.com/SscSPs/hk_loans_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var maxCommissionRate = decimal.NewFromInt(100)

type partnerService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepositoryFacade
}

func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade) portssvc.PartnerSvcFacade {
	return &partnerService{partnerRepo: partnerRepo}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

func (s *partnerService) ListPartners(ctx context.Context, tenantID string) ([]domain.Partner, error) {
	partners, err := s.partnerRepo.FindPartners(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list partners")
		return nil, err
	}
	return partners, nil
}

func (s *partnerService) CreatePartner(ctx context.Context, tenantID string, req dto.CreatePartnerRequest) (*domain.Partner, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	var rate *decimal.Decimal
	if req.CommissionRate != nil {
		if req.CommissionRate.IsNegative() || req.CommissionRate.GreaterThan(maxCommissionRate) {
			return nil, fmt.Errorf("%w: commissionRate must be between 0 and 100", apperrors.ErrValidation)
		}
		r := req.CommissionRate.Round(2)
		rate = &r
	}

	now := time.Now().UTC()
	partner := domain.Partner{
		PartnerID:      uuid.NewString(),
		UserID:         tenantID,
		Name:           name,
		PixKey:         emptyToNil(req.PixKey),
		CommissionRate: rate,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.partnerRepo.SavePartner(ctx, partner); err != nil {
		s.LogError(ctx, err, "Failed to create partner")
		return nil, err
	}
	s.LogInfo(ctx, "Partner created", slog.String("partner_id", partner.PartnerID))
	return &partner, nil
}

func (s *partnerService) DeletePartner(ctx context.Context, tenantID, partnerID string) error {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return lookupErr(err, "partner", partnerID)
	}
	if err := ensureOwner(partner.UserID, tenantID, "partner"); err != nil {
		return err
	}
	if err := s.partnerRepo.DeletePartner(ctx, partnerID); err != nil {
		return lookupErr(err, "partner", partnerID)
	}
	s.LogInfo(ctx, "Partner deleted", slog.String("partner_id", partnerID))
	return nil
}
