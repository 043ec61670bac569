package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	portsrepo "github.com/flowpay/flow_backend/internal/core/ports/repositories"
	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/flowpay/flow_backend/internal/utils"
	"github.com/google/uuid"
)

// UserService handles the minimal user plumbing the workflow needs: role
// lookups for decisions and seed-friendly creation.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(ur portsrepo.UserRepositoryFacade) *UserService {
	return &UserService{userRepo: ur, now: time.Now}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreateUser persists a new user with a bcrypt password hash.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorID string) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		UserID:       uuid.NewString(),
		CompanyID:    req.CompanyID,
		Email:        req.Email,
		Name:         req.Name,
		Role:         domain.UserRole(req.Role),
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
			Version:       1,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, req.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetCompany retrieves a company by ID.
func (s *UserService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.userRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// CreateCompany registers a new company.
func (s *UserService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorID string) (*domain.Company, error) {
	now := s.now()
	company := domain.Company{
		CompanyID:         uuid.NewString(),
		CompanyName:       req.CompanyName,
		RegisteredCountry: strings.ToUpper(req.RegisteredCountry),
		IndustrySector:    req.IndustrySector,
		FXVolumeBand:      req.FXVolumeBand,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
			Version:       1,
		},
	}

	if err := s.userRepo.SaveCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &company, nil
}
