package mapping

import (
	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		CompanyID:    d.CompanyID,
		Email:        d.Email,
		Name:         d.Name,
		Role:         d.Role,
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		CompanyID:    m.CompanyID,
		Email:        m.Email,
		Name:         m.Name,
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:         d.CompanyID,
		CompanyName:       d.CompanyName,
		RegisteredCountry: d.RegisteredCountry,
		IndustrySector:    d.IndustrySector,
		FXVolumeBand:      d.FXVolumeBand,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:         m.CompanyID,
		CompanyName:       m.CompanyName,
		RegisteredCountry: m.RegisteredCountry,
		IndustrySector:    m.IndustrySector,
		FXVolumeBand:      m.FXVolumeBand,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
