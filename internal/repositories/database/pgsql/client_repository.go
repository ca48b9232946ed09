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

type PgxClientRepository struct {
	db dbtx
}

func newPgxClientRepository(db dbtx) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `id, user_id, name, whatsapp, cpf, rg, address, mother_name, pix, bank, observation, group_name, rating, created_at, updated_at`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.UserID,
		&m.Name,
		&m.Whatsapp,
		&m.CPF,
		&m.RG,
		&m.Address,
		&m.MotherName,
		&m.Pix,
		&m.Bank,
		&m.Observation,
		&m.GroupName,
		&m.Rating,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxClientRepository) FindClients(ctx context.Context, userID string) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE user_id = $1 ORDER BY name ASC;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	index := map[string]int{}
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		index[m.ClientID] = len(clients)
		clients = append(clients, mapping.ToDomainClient(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}
	if len(clients) == 0 {
		return clients, nil
	}

	loans, err := queryLoans(ctx, r.db, `c.user_id = $1`, "", userID)
	if err != nil {
		return nil, err
	}
	for _, loan := range loans {
		if i, ok := index[loan.ClientID]; ok {
			clients[i].Loans = append(clients[i].Loans, loan)
		}
	}
	return clients, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	m, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1;`, clientID))
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	client := mapping.ToDomainClient(m)

	docs, err := r.FindDocumentsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	client.Documents = docs

	loans, err := queryLoans(ctx, r.db, `l.client_id = $1`, "", clientID)
	if err != nil {
		return nil, err
	}
	client.Loans = loans
	return &client, nil
}

func (r *PgxClientRepository) CountClients(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE user_id = $1;`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return n, nil
}

func (r *PgxClientRepository) ClientStats(ctx context.Context, clientID string) (domain.ClientStats, error) {
	query := `
        SELECT
            COALESCE((SELECT SUM(l.amount) FROM loans l
                      WHERE l.client_id = $1 AND l.status <> 'RENEGOTIATED'), 0),
            COALESCE((SELECT SUM(i.amount) FROM installments i JOIN loans l ON l.id = i.loan_id
                      WHERE l.client_id = $1 AND i.status = 'PENDING'), 0),
            COALESCE((SELECT SUM(i.paid_amount) FROM installments i JOIN loans l ON l.id = i.loan_id
                      WHERE l.client_id = $1 AND i.status IN ('PAID', 'INTEREST_PAID')), 0),
            (SELECT COUNT(DISTINCT l.id) FROM loans l JOIN installments i ON i.loan_id = l.id
             WHERE l.client_id = $1 AND i.status = 'PENDING');
    `
	var stats domain.ClientStats
	err := r.db.QueryRow(ctx, query, clientID).Scan(
		&stats.TotalLoaned,
		&stats.TotalDebt,
		&stats.TotalPaid,
		&stats.ActiveLoansCount,
	)
	if err != nil {
		return domain.ClientStats{}, fmt.Errorf("failed to compute client stats: %w", err)
	}
	return stats, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
        INSERT INTO clients (id, user_id, name, whatsapp, cpf, rg, address, mother_name, pix, bank, observation, group_name, rating, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
    `
	_, err := r.db.Exec(ctx, query,
		m.ClientID, m.UserID, m.Name, m.Whatsapp, m.CPF, m.RG, m.Address, m.MotherName,
		m.Pix, m.Bank, m.Observation, m.GroupName, m.Rating, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "clients_user_cpf_key") {
			return fmt.Errorf("cpf already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	query := `
        UPDATE clients
        SET name = $1, whatsapp = $2, cpf = $3, rg = $4, address = $5, mother_name = $6, pix = $7,
            bank = $8, observation = $9, group_name = $10, rating = $11, updated_at = $12
        WHERE id = $13;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name, m.Whatsapp, m.CPF, m.RG, m.Address, m.MotherName, m.Pix,
		m.Bank, m.Observation, m.GroupName, m.Rating, m.LastUpdatedAt, m.ClientID,
	)
	if err != nil {
		if isUniqueViolation(err, "clients_user_cpf_key") {
			return fmt.Errorf("cpf already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", client.ClientID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
	}
	return nil
}

const documentColumns = `id, client_id, name, url, storage_key, mime_type, size_bytes, created_at`

func scanDocument(row pgx.Row) (models.ClientDocument, error) {
	var m models.ClientDocument
	err := row.Scan(&m.DocumentID, &m.ClientID, &m.Name, &m.URL, &m.StorageKey, &m.MimeType, &m.SizeBytes, &m.CreatedAt)
	return m, err
}

func (r *PgxClientRepository) SaveDocument(ctx context.Context, doc domain.ClientDocument) error {
	m := mapping.ToModelClientDocument(doc)
	query := `
        INSERT INTO client_documents (id, client_id, name, url, storage_key, mime_type, size_bytes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	if _, err := r.db.Exec(ctx, query, m.DocumentID, m.ClientID, m.Name, m.URL, m.StorageKey, m.MimeType, m.SizeBytes, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.ClientDocument, error) {
	m, err := scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM client_documents WHERE id = $1;`, documentID))
	if err != nil {
		if isMissingRow(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	doc := mapping.ToDomainClientDocument(m)
	return &doc, nil
}

func (r *PgxClientRepository) FindDocumentsByClient(ctx context.Context, clientID string) ([]domain.ClientDocument, error) {
	rows, err := r.db.Query(ctx, `SELECT `+documentColumns+` FROM client_documents WHERE client_id = $1 ORDER BY created_at;`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.ClientDocument{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, mapping.ToDomainClientDocument(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}
	return docs, nil
}

func (r *PgxClientRepository) DeleteDocument(ctx context.Context, documentID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM client_documents WHERE id = $1;`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
	}
	return nil
}
