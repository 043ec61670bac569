package services

import (
	"context"

	"github.com/flowpay/flow_backend/internal/core/domain"
	"github.com/flowpay/flow_backend/internal/dto"
)

// UserReaderSvc defines read operations for user and company data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by its ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// GetCompany retrieves a company by its ID.
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
}

// UserWriterSvc defines write operations for user and company data
type UserWriterSvc interface {
	// CreateUser persists a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error)
	// CreateCompany registers a new company.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorID string) (*domain.Company, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
