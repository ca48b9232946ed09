package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/hk_loans_app/internal/apperrors"
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	"github.com/SscSPs/hk_loans_app/internal/models"
	"github.com/SscSPs/hk_loans_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxTransactionRepository struct {
	db dbtx
}

func newPgxTransactionRepository(db dbtx) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `id, user_id, loan_id, type, amount, category, description, date, created_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(&m.TransactionID, &m.UserID, &m.LoanID, &m.Type, &m.Amount, &m.Category, &m.Description, &m.Date, &m.CreatedAt)
	return m, err
}

func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	conds := []string{"user_id = $1"}
	args := []any{userID}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("date < $%d", len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY date DESC, created_at DESC;`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1;`, transactionID))
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	query := `
        INSERT INTO transactions (id, user_id, loan_id, type, amount, category, description, date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query, m.TransactionID, m.UserID, m.LoanID, m.Type, m.Amount, m.Category, m.Description, m.Date, m.CreatedAt)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for range txns {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to save transaction: %w", err)
		}
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransactionsByLoan(ctx context.Context, loanID string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE loan_id = $1;`, loanID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete loan transactions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
