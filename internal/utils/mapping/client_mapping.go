package mapping

import (
	"github.com/SscSPs/hk_loans_app/internal/core/domain"
	"github.com/SscSPs/hk_loans_app/internal/models"
)

// ToModelClient converts a domain Client to a model Client
func ToModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:    d.ClientID,
		UserID:      d.UserID,
		Name:        d.Name,
		Whatsapp:    d.Whatsapp,
		CPF:         d.CPF,
		RG:          d.RG,
		Address:     d.Address,
		MotherName:  d.MotherName,
		Pix:         d.Pix,
		Bank:        d.Bank,
		Observation: d.Observation,
		GroupName:   d.Group,
		Rating:      d.Rating,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainClient converts a model Client to a domain Client
func ToDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:    m.ClientID,
		UserID:      m.UserID,
		Name:        m.Name,
		Whatsapp:    m.Whatsapp,
		CPF:         m.CPF,
		RG:          m.RG,
		Address:     m.Address,
		MotherName:  m.MotherName,
		Pix:         m.Pix,
		Bank:        m.Bank,
		Observation: m.Observation,
		Group:       m.GroupName,
		Rating:      m.Rating,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToModelClientDocument converts a domain ClientDocument to a model ClientDocument
func ToModelClientDocument(d domain.ClientDocument) models.ClientDocument {
	return models.ClientDocument{
		DocumentID: d.DocumentID,
		ClientID:   d.ClientID,
		Name:       d.Name,
		URL:        d.URL,
		StorageKey: d.StorageKey,
		MimeType:   d.MimeType,
		SizeBytes:  d.Size,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainClientDocument converts a model ClientDocument to a domain ClientDocument
func ToDomainClientDocument(m models.ClientDocument) domain.ClientDocument {
	return domain.ClientDocument{
		DocumentID: m.DocumentID,
		ClientID:   m.ClientID,
		Name:       m.Name,
		URL:        m.URL,
		StorageKey: m.StorageKey,
		MimeType:   m.MimeType,
		Size:       m.SizeBytes,
		CreatedAt:  m.CreatedAt,
	}
}

// ToModelPartner converts a domain Partner to a model Partner
func ToModelPartner(d domain.Partner) models.Partner {
	return models.Partner{
		PartnerID:      d.PartnerID,
		UserID:         d.UserID,
		Name:           d.Name,
		PixKey:         d.PixKey,
		CommissionRate: d.CommissionRate,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainPartner converts a model Partner to a domain Partner
func ToDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID:      m.PartnerID,
		UserID:         m.UserID,
		Name:           m.Name,
		PixKey:         m.PixKey,
		CommissionRate: m.CommissionRate,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}
