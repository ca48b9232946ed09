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

type PgxLoanRepository struct {
	db dbtx
}

func newPgxLoanRepository(db dbtx) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{db: db}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const loanSelect = `
    SELECT l.id, l.client_id, c.user_id, c.name, l.partner_id, l.original_loan_id, l.amount, l.total_amount,
           l.interest_rate, l.interest_type, l.start_date, l.status, l.created_at, l.updated_at
    FROM loans l
    JOIN clients c ON c.id = l.client_id
`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.ClientID,
		&m.UserID,
		&m.ClientName,
		&m.PartnerID,
		&m.OriginalLoanID,
		&m.Amount,
		&m.TotalAmount,
		&m.InterestRate,
		&m.InterestType,
		&m.StartDate,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// queryLoans loads the loans matching where (plus an optional locking suffix)
// and attaches their installments ordered by due date.
func queryLoans(ctx context.Context, db dbtx, where, suffix string, args ...any) ([]domain.Loan, error) {
	query := loanSelect + ` WHERE ` + where + ` ORDER BY l.created_at DESC ` + suffix
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}

	var loanModels []models.Loan
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loanModels = append(loanModels, m)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", rows.Err())
	}

	loans := make([]domain.Loan, 0, len(loanModels))
	if len(loanModels) == 0 {
		return loans, nil
	}

	ids := make([]string, len(loanModels))
	for i, m := range loanModels {
		ids[i] = m.LoanID
	}
	byLoan, err := installmentsByLoan(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range loanModels {
		installments := byLoan[m.LoanID]
		if installments == nil {
			installments = []domain.Installment{}
		}
		loans = append(loans, mapping.ToDomainLoan(m, installments))
	}
	return loans, nil
}

func installmentsByLoan(ctx context.Context, db dbtx, loanIDs []string) (map[string][]domain.Installment, error) {
	rows, err := db.Query(ctx,
		`SELECT `+installmentColumns+` FROM installments WHERE loan_id = ANY($1::uuid[]) ORDER BY due_date ASC, number ASC;`,
		loanIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Installment, len(loanIDs))
	for rows.Next() {
		m, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		out[m.LoanID] = append(out[m.LoanID], mapping.ToDomainInstallment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", rows.Err())
	}
	return out, nil
}

func (r *PgxLoanRepository) FindLoans(ctx context.Context, userID string, filter domain.LoanFilter) ([]domain.Loan, error) {
	where := `c.user_id = $1`
	args := []any{userID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where += fmt.Sprintf(` AND l.status = $%d`, len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		where += fmt.Sprintf(` AND l.client_id = $%d`, len(args))
	}
	return queryLoans(ctx, r.db, where, "", args...)
}

func (r *PgxLoanRepository) findOne(ctx context.Context, loanID, suffix string) (*domain.Loan, error) {
	loans, err := queryLoans(ctx, r.db, `l.id = $1`, suffix, loanID)
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if len(loans) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &loans[0], nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.findOne(ctx, loanID, "")
}

func (r *PgxLoanRepository) FindLoanByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.findOne(ctx, loanID, "FOR UPDATE OF l")
}

func (r *PgxLoanRepository) CountOpenLoans(ctx context.Context, userID string) (int, error) {
	query := `
        SELECT COUNT(*) FROM loans l
        JOIN clients c ON c.id = l.client_id
        WHERE c.user_id = $1 AND l.status <> 'RENEGOTIATED';
    `
	var n int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count loans: %w", err)
	}
	return n, nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
        INSERT INTO loans (id, client_id, partner_id, original_loan_id, amount, total_amount, interest_rate,
                           interest_type, start_date, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.db.Exec(ctx, query,
		m.LoanID, m.ClientID, m.PartnerID, m.OriginalLoanID, m.Amount, m.TotalAmount, m.InterestRate,
		m.InterestType, m.StartDate, m.Status, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan: %w", err)
	}
	return nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
        UPDATE loans
        SET partner_id = $1, amount = $2, total_amount = $3, interest_rate = $4, interest_type = $5,
            start_date = $6, status = $7, updated_at = $8
        WHERE id = $9;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.PartnerID, m.Amount, m.TotalAmount, m.InterestRate, m.InterestType,
		m.StartDate, m.Status, m.LastUpdatedAt, m.LoanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s: %w", loan.LoanID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM loans WHERE id = $1;`, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s: %w", loanID, apperrors.ErrNotFound)
	}
	return nil
}
