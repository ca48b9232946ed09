package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	"github.com/SscSPs/hk_loans_app/internal/models"
	"github.com/SscSPs/hk_loans_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxPartnerRepository struct {
	db dbtx
}

func newPgxPartnerRepository(db dbtx) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{db: db}
}

var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

const partnerColumns = `id, user_id, name, pix_key, commission_rate, created_at, updated_at`

func scanPartner(row pgx.Row) (models.Partner, error) {
	var m models.Partner
	err := row.Scan(&m.PartnerID, &m.UserID, &m.Name, &m.PixKey, &m.CommissionRate, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *PgxPartnerRepository) FindPartners(ctx context.Context, userID string) ([]domain.Partner, error) {
	rows, err := r.db.Query(ctx, `SELECT `+partnerColumns+` FROM partners WHERE user_id = $1 ORDER BY name;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		m, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, mapping.ToDomainPartner(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", rows.Err())
	}
	return partners, nil
}

func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	m, err := scanPartner(r.db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1;`, partnerID))
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	partner := mapping.ToDomainPartner(m)
	return &partner, nil
}

func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	m := mapping.ToModelPartner(partner)
	query := `
        INSERT INTO partners (id, user_id, name, pix_key, commission_rate, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	if _, err := r.db.Exec(ctx, query, m.PartnerID, m.UserID, m.Name, m.PixKey, m.CommissionRate, m.CreatedAt, m.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to save partner: %w", err)
	}
	return nil
}

func (r *PgxPartnerRepository) DeletePartner(ctx context.Context, partnerID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM partners WHERE id = $1;`, partnerID)
	if err != nil {
		return fmt.Errorf("failed to delete partner: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("partner %s: %w", partnerID, apperrors.ErrNotFound)
	}
	return nil
}
