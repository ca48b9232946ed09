package mapping

import (
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan. Installments are mapped separately.
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:         d.LoanID,
		ClientID:       d.ClientID,
		UserID:         d.UserID,
		ClientName:     d.ClientName,
		PartnerID:      d.PartnerID,
		OriginalLoanID: d.OriginalLoanID,
		Amount:         d.Amount,
		TotalAmount:    d.TotalAmount,
		InterestRate:   d.InterestRate,
		InterestType:   string(d.InterestType),
		StartDate:      d.StartDate,
		Status:         string(d.Status),
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan with the given installments.
func ToDomainLoan(m models.Loan, installments []domain.Installment) domain.Loan {
	return domain.Loan{
		LoanID:         m.LoanID,
		UserID:         m.UserID,
		ClientID:       m.ClientID,
		ClientName:     m.ClientName,
		PartnerID:      m.PartnerID,
		OriginalLoanID: m.OriginalLoanID,
		Amount:         m.Amount,
		TotalAmount:    m.TotalAmount,
		InterestRate:   m.InterestRate,
		InterestType:   domain.InterestType(m.InterestType),
		StartDate:      m.StartDate,
		Status:         domain.LoanStatus(m.Status),
		Installments:   installments,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID: d.InstallmentID,
		LoanID:        d.LoanID,
		Number:        d.Number,
		Amount:        d.Amount,
		DueDate:       d.DueDate,
		Status:        string(d.Status),
		PaidAmount:    d.PaidAmount,
		PaidDate:      d.PaidDate,
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID: m.InstallmentID,
		LoanID:        m.LoanID,
		Number:        m.Number,
		Amount:        m.Amount,
		DueDate:       m.DueDate,
		Status:        domain.InstallmentStatus(m.Status),
		PaidAmount:    m.PaidAmount,
		PaidDate:      m.PaidDate,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		LoanID:        d.LoanID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		Category:      d.Category,
		Description:   d.Description,
		Date:          d.Date,
		CreatedAt:     d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		LoanID:        m.LoanID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Category:      m.Category,
		Description:   m.Description,
		Date:          m.Date,
		CreatedAt:     m.CreatedAt,
	}
}
