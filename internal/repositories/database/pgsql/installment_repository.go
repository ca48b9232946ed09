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

type PgxInstallmentRepository struct {
	db dbtx
}

func newPgxInstallmentRepository(db dbtx) portsrepo.InstallmentRepositoryFacade {
	return &PgxInstallmentRepository{db: db}
}

var _ portsrepo.InstallmentRepositoryFacade = (*PgxInstallmentRepository)(nil)

const installmentColumns = `id, loan_id, number, amount, due_date, status, paid_amount, paid_date, created_at, updated_at`

func scanInstallment(row pgx.Row) (models.Installment, error) {
	var m models.Installment
	err := row.Scan(
		&m.InstallmentID,
		&m.LoanID,
		&m.Number,
		&m.Amount,
		&m.DueDate,
		&m.Status,
		&m.PaidAmount,
		&m.PaidDate,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxInstallmentRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	m, err := scanInstallment(r.db.QueryRow(ctx, `SELECT `+installmentColumns+` FROM installments WHERE id = $1;`, installmentID))
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment %s: %w", installmentID, err)
	}
	inst := mapping.ToDomainInstallment(m)
	return &inst, nil
}

// SaveInstallments inserts the schedule in one round trip.
func (r *PgxInstallmentRepository) SaveInstallments(ctx context.Context, installments []domain.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	query := `
        INSERT INTO installments (id, loan_id, number, amount, due_date, status, paid_amount, paid_date, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	batch := &pgx.Batch{}
	for _, inst := range installments {
		m := mapping.ToModelInstallment(inst)
		batch.Queue(query, m.InstallmentID, m.LoanID, m.Number, m.Amount, m.DueDate, m.Status,
			m.PaidAmount, m.PaidDate, m.CreatedAt, m.LastUpdatedAt)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for range installments {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err, "installments_loan_number_key") {
				return fmt.Errorf("%w: installment number already used", apperrors.ErrConflict)
			}
			return fmt.Errorf("failed to save installment: %w", err)
		}
	}
	return nil
}

func (r *PgxInstallmentRepository) UpdateInstallment(ctx context.Context, installment domain.Installment) error {
	m := mapping.ToModelInstallment(installment)
	query := `
        UPDATE installments
        SET amount = $1, due_date = $2, status = $3, paid_amount = $4, paid_date = $5, updated_at = $6
        WHERE id = $7;
    `
	cmdTag, err := r.db.Exec(ctx, query, m.Amount, m.DueDate, m.Status, m.PaidAmount, m.PaidDate, m.LastUpdatedAt, m.InstallmentID)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("installment %s: %w", installment.InstallmentID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxInstallmentRepository) DeleteInstallment(ctx context.Context, installmentID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM installments WHERE id = $1;`, installmentID)
	if err != nil {
		return fmt.Errorf("failed to delete installment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("installment %s: %w", installmentID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxInstallmentRepository) MarkPendingRenegotiated(ctx context.Context, loanID string) (int64, error) {
	query := `
        UPDATE installments
        SET status = 'RENEGOTIATED', paid_amount = NULL, paid_date = NULL, updated_at = NOW()
        WHERE loan_id = $1 AND status = 'PENDING';
    `
	cmdTag, err := r.db.Exec(ctx, query, loanID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark installments renegotiated: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
