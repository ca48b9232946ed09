package repositories

import (
	"context"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
)

// PartnerRepositoryFacade covers partner persistence.
type PartnerRepositoryFacade interface {
	FindPartners(ctx context.Context, userID string) ([]domain.Partner, error)
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)
	SavePartner(ctx context.Context, partner domain.Partner) error
	// DeletePartner removes the partner; its loans keep their history without the reference.
	DeletePartner(ctx context.Context, partnerID string) error
}
