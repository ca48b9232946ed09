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

type PgxPlanRepository struct {
	db dbtx
}

func newPgxPlanRepository(db dbtx) portsrepo.PlanRepositoryFacade {
	return &PgxPlanRepository{db: db}
}

var _ portsrepo.PlanRepositoryFacade = (*PgxPlanRepository)(nil)

const planColumns = `id, name, price, description, max_clients, max_loans, created_at, updated_at`

func scanPlan(row pgx.Row) (models.Plan, error) {
	var m models.Plan
	err := row.Scan(&m.PlanID, &m.Name, &m.Price, &m.Description, &m.MaxClients, &m.MaxLoans, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *PgxPlanRepository) FindPlans(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT `+planColumns+` FROM plans ORDER BY price, name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		m, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plans = append(plans, mapping.ToDomainPlan(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", rows.Err())
	}
	return plans, nil
}

func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error) {
	m, err := scanPlan(r.db.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id = $1;`, planID))
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan %s: %w", planID, err)
	}
	plan := mapping.ToDomainPlan(m)
	return &plan, nil
}

func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.Plan) error {
	m := mapping.ToModelPlan(plan)
	query := `
        INSERT INTO plans (id, name, price, description, max_clients, max_loans, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	if _, err := r.db.Exec(ctx, query, m.PlanID, m.Name, m.Price, m.Description, m.MaxClients, m.MaxLoans, m.CreatedAt, m.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

func (r *PgxPlanRepository) DeletePlan(ctx context.Context, planID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1;`, planID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("plan %s: %w", planID, apperrors.ErrNotFound)
	}
	return nil
}
