package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	portsrepo "github.com/SscSPs/hk_loans_app/internal/core/ports/repositories"
	"github.com/SscSPs/hk_loans_app/internal/models"
	"github.com/SscSPs/hk_loans_app/internal/utils/mapping"
)

type PgxReportingRepository struct {
	db dbtx
}

func newPgxReportingRepository(db dbtx) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) DashboardSummary(ctx context.Context, userID string, window domain.AlertWindow) (domain.DashboardSummary, error) {
	query := `
        SELECT
            COALESCE((SELECT SUM(l.amount) FROM loans l JOIN clients c ON c.id = l.client_id
                      WHERE c.user_id = $1 AND l.status = 'ACTIVE'), 0),
            COALESCE((SELECT SUM(l.total_amount) FROM loans l JOIN clients c ON c.id = l.client_id
                      WHERE c.user_id = $1 AND l.status = 'ACTIVE'), 0),
            COALESCE((SELECT SUM(i.amount) FROM installments i
                      JOIN loans l ON l.id = i.loan_id
                      JOIN clients c ON c.id = l.client_id
                      WHERE c.user_id = $1 AND l.status = 'ACTIVE' AND i.status = 'PENDING' AND i.due_date < $2), 0),
            COALESCE((SELECT SUM(i.paid_amount) FROM installments i
                      JOIN loans l ON l.id = i.loan_id
                      JOIN clients c ON c.id = l.client_id
                      WHERE c.user_id = $1 AND i.status IN ('PAID', 'INTEREST_PAID')), 0);
    `
	var s domain.DashboardSummary
	err := r.db.QueryRow(ctx, query, userID, window.StartOfToday).Scan(
		&s.TotalInvested,
		&s.TotalReceivable,
		&s.TotalLate,
		&s.TotalReceived,
	)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("failed to compute dashboard summary: %w", err)
	}
	return s, nil
}

func (r *PgxReportingRepository) InstallmentAlerts(ctx context.Context, userID string, window domain.AlertWindow) (domain.Alerts, error) {
	query := `
        SELECT i.id, i.loan_id, i.number, i.amount, i.due_date, i.status, i.paid_amount, i.paid_date,
               i.created_at, i.updated_at, c.id, c.name, c.whatsapp
        FROM installments i
        JOIN loans l ON l.id = i.loan_id
        JOIN clients c ON c.id = l.client_id
        WHERE c.user_id = $1 AND l.status = 'ACTIVE' AND i.status = 'PENDING' AND i.due_date < $2
        ORDER BY i.due_date ASC, c.name ASC;
    `
	rows, err := r.db.Query(ctx, query, userID, window.StartOfTomorrow)
	if err != nil {
		return domain.Alerts{}, fmt.Errorf("failed to query installment alerts: %w", err)
	}
	defer rows.Close()

	alerts := domain.Alerts{DueToday: []domain.InstallmentAlert{}, Late: []domain.InstallmentAlert{}}
	for rows.Next() {
		var (
			m        models.Installment
			clientID string
			name     string
			whatsapp *string
		)
		err := rows.Scan(&m.InstallmentID, &m.LoanID, &m.Number, &m.Amount, &m.DueDate, &m.Status,
			&m.PaidAmount, &m.PaidDate, &m.CreatedAt, &m.LastUpdatedAt, &clientID, &name, &whatsapp)
		if err != nil {
			return domain.Alerts{}, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alert := domain.InstallmentAlert{
			Installment:    mapping.ToDomainInstallment(m),
			LoanID:         m.LoanID,
			ClientID:       clientID,
			ClientName:     name,
			ClientWhatsapp: whatsapp,
		}
		if window.IsLate(m.DueDate) {
			alerts.Late = append(alerts.Late, alert)
		} else {
			alerts.DueToday = append(alerts.DueToday, alert)
		}
	}
	if rows.Err() != nil {
		return domain.Alerts{}, fmt.Errorf("error iterating alert rows: %w", rows.Err())
	}
	return alerts, nil
}

func (r *PgxReportingRepository) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM users),
            (SELECT COUNT(*) FROM clients),
            (SELECT COUNT(*) FROM loans),
            COALESCE((SELECT SUM(amount) FROM loans WHERE status <> 'RENEGOTIATED'), 0);
    `
	var s domain.AdminStats
	if err := r.db.QueryRow(ctx, query).Scan(&s.TotalUsers, &s.TotalClients, &s.TotalLoans, &s.TotalLoaned); err != nil {
		return domain.AdminStats{}, fmt.Errorf("failed to compute admin stats: %w", err)
	}
	return s, nil
}
