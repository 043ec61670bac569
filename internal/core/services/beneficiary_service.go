package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	portsrepo "github.com/flowpay/flow_backend/internal/core/ports/repositories"
	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/flowpay/flow_backend/internal/middleware"
	"github.com/flowpay/flow_backend/internal/utils/bankdetails"
	"github.com/google/uuid"
)

// BeneficiaryService handles business logic for payees and their receiving
// accounts.
type BeneficiaryService struct {
	beneficiaryRepo portsrepo.BeneficiaryRepositoryFacade
	auditSvc        portssvc.AuditRecorder
	now             func() time.Time
}

// NewBeneficiaryService creates a new BeneficiaryService.
func NewBeneficiaryService(br portsrepo.BeneficiaryRepositoryFacade, auditSvc portssvc.AuditRecorder) *BeneficiaryService {
	return &BeneficiaryService{
		beneficiaryRepo: br,
		auditSvc:        auditSvc,
		now:             time.Now,
	}
}

var _ portssvc.BeneficiarySvcFacade = (*BeneficiaryService)(nil)

// GetBeneficiary retrieves one of the company's beneficiaries. A beneficiary
// belonging to another company is reported as not found so its existence never
// leaks.
func (s *BeneficiaryService) GetBeneficiary(ctx context.Context, companyID, beneficiaryID string) (*domain.Beneficiary, error) {
	beneficiary, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: beneficiary %s", apperrors.ErrNotFound, beneficiaryID)
		}
		return nil, fmt.Errorf("failed to get beneficiary: %w", err)
	}
	if beneficiary.CompanyID != companyID {
		return nil, fmt.Errorf("%w: beneficiary %s", apperrors.ErrNotFound, beneficiaryID)
	}
	return beneficiary, nil
}

// ListCompanyBeneficiaries lists a company's beneficiaries.
func (s *BeneficiaryService) ListCompanyBeneficiaries(ctx context.Context, companyID string, includeInactive bool) ([]domain.Beneficiary, error) {
	items, err := s.beneficiaryRepo.ListCompanyBeneficiaries(ctx, companyID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list beneficiaries: %w", err)
	}
	if items == nil {
		return []domain.Beneficiary{}, nil
	}
	return items, nil
}

// CreateBeneficiary persists a new beneficiary for a company.
func (s *BeneficiaryService) CreateBeneficiary(ctx context.Context, companyID string, req dto.CreateBeneficiaryRequest, creatorID string) (*domain.Beneficiary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := s.now()
	beneficiary := domain.Beneficiary{
		BeneficiaryID:   uuid.NewString(),
		CompanyID:       companyID,
		BeneficiaryName: req.BeneficiaryName,
		BeneficiaryType: domain.BeneficiaryType(req.BeneficiaryType),
		Country:         req.Country,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
			Version:       1,
		},
	}

	if err := s.beneficiaryRepo.SaveBeneficiary(ctx, beneficiary); err != nil {
		logger.Error("Failed to save beneficiary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create beneficiary: %w", err)
	}

	s.auditSvc.Record(ctx, &creatorID, "beneficiary", beneficiary.BeneficiaryID, "created", nil, map[string]any{
		"beneficiaryName": beneficiary.BeneficiaryName,
		"beneficiaryType": string(beneficiary.BeneficiaryType),
		"country":         beneficiary.Country,
	})
	return &beneficiary, nil
}

// UpdateBeneficiary applies a partial update to one of the company's
// beneficiaries.
func (s *BeneficiaryService) UpdateBeneficiary(ctx context.Context, companyID, beneficiaryID string, req dto.UpdateBeneficiaryRequest, userID string) (*domain.Beneficiary, error) {
	beneficiary, err := s.GetBeneficiary(ctx, companyID, beneficiaryID)
	if err != nil {
		return nil, err
	}

	before := map[string]any{
		"beneficiaryName": beneficiary.BeneficiaryName,
		"beneficiaryType": string(beneficiary.BeneficiaryType),
		"country":         beneficiary.Country,
	}

	if req.BeneficiaryName != nil {
		beneficiary.BeneficiaryName = *req.BeneficiaryName
	}
	if req.BeneficiaryType != nil {
		beneficiary.BeneficiaryType = domain.BeneficiaryType(*req.BeneficiaryType)
	}
	if req.Country != nil {
		beneficiary.Country = *req.Country
	}
	beneficiary.LastUpdatedAt = s.now()
	beneficiary.LastUpdatedBy = userID
	beneficiary.Version++

	if err := s.beneficiaryRepo.UpdateBeneficiary(ctx, *beneficiary); err != nil {
		return nil, fmt.Errorf("failed to update beneficiary: %w", err)
	}

	s.auditSvc.Record(ctx, &userID, "beneficiary", beneficiary.BeneficiaryID, "updated", before, map[string]any{
		"beneficiaryName": beneficiary.BeneficiaryName,
		"beneficiaryType": string(beneficiary.BeneficiaryType),
		"country":         beneficiary.Country,
	})
	return beneficiary, nil
}

// SetBeneficiaryActive enables or disables one of the company's beneficiaries.
func (s *BeneficiaryService) SetBeneficiaryActive(ctx context.Context, companyID, beneficiaryID string, active bool, userID string) error {
	beneficiary, err := s.GetBeneficiary(ctx, companyID, beneficiaryID)
	if err != nil {
		return err
	}
	if beneficiary.IsActive == active {
		return nil
	}

	if err := s.beneficiaryRepo.SetBeneficiaryActive(ctx, beneficiaryID, active, userID); err != nil {
		return fmt.Errorf("failed to set beneficiary active state: %w", err)
	}

	action := "disabled"
	if active {
		action = "enabled"
	}
	s.auditSvc.Record(ctx, &userID, "beneficiary", beneficiaryID, action, map[string]any{
		"isActive": beneficiary.IsActive,
	}, map[string]any{
		"isActive": active,
	})
	return nil
}

// GetBankAccount retrieves a bank account held by one of the company's
// beneficiaries. The account's beneficiary resolves the ownership check.
func (s *BeneficiaryService) GetBankAccount(ctx context.Context, companyID, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.beneficiaryRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, bankAccountID)
		}
		return nil, fmt.Errorf("failed to get bank account: %w", err)
	}
	if _, err := s.GetBeneficiary(ctx, companyID, account.BeneficiaryID); err != nil {
		return nil, fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, bankAccountID)
	}
	return account, nil
}

// ListBankAccounts retrieves the bank accounts of one of the company's
// beneficiaries.
func (s *BeneficiaryService) ListBankAccounts(ctx context.Context, companyID, beneficiaryID string) ([]domain.BankAccount, error) {
	if _, err := s.GetBeneficiary(ctx, companyID, beneficiaryID); err != nil {
		return nil, err
	}
	accounts, err := s.beneficiaryRepo.ListBankAccounts(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	if accounts == nil {
		return []domain.BankAccount{}, nil
	}
	return accounts, nil
}

// AddBankAccount validates and persists a receiving account. IBAN and SWIFT
// are normalized before storage; the first account becomes the default.
func (s *BeneficiaryService) AddBankAccount(ctx context.Context, companyID, beneficiaryID string, req dto.AddBankAccountRequest, userID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	beneficiary, err := s.GetBeneficiary(ctx, companyID, beneficiaryID)
	if err != nil {
		return nil, err
	}

	if err := bankdetails.ValidateAccountHolderName(req.AccountHolderName); err != nil {
		return nil, err
	}
	if err := bankdetails.ValidateCurrencyCode(req.CurrencyCode); err != nil {
		return nil, err
	}

	iban := bankdetails.NormalizeIBAN(req.IBAN)
	if iban != "" {
		if err := bankdetails.ValidateIBAN(iban); err != nil {
			return nil, err
		}
	}
	swift := bankdetails.NormalizeSwiftBIC(req.SwiftBIC)
	if swift != "" {
		if err := bankdetails.ValidateSwiftBIC(swift); err != nil {
			return nil, err
		}
	}
	if iban == "" && swift == "" {
		return nil, fmt.Errorf("%w: an IBAN or a SWIFT/BIC is required", apperrors.ErrValidation)
	}

	existing, err := s.beneficiaryRepo.ListBankAccounts(ctx, beneficiaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing bank accounts: %w", err)
	}

	now := s.now()
	account := domain.BankAccount{
		BankAccountID:     uuid.NewString(),
		BeneficiaryID:     beneficiary.BeneficiaryID,
		AccountHolderName: req.AccountHolderName,
		IBAN:              iban,
		SwiftBIC:          swift,
		BankName:          req.BankName,
		CurrencyCode:      req.CurrencyCode,
		IsDefault:         len(existing) == 0,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}

	if err := s.beneficiaryRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()), slog.String("beneficiary_id", beneficiaryID))
		return nil, fmt.Errorf("failed to add bank account: %w", err)
	}

	s.auditSvc.Record(ctx, &userID, "bank_account", account.BankAccountID, "created", nil, map[string]any{
		"beneficiaryID": account.BeneficiaryID,
		"currencyCode":  account.CurrencyCode,
		"isDefault":     account.IsDefault,
	})
	return &account, nil
}

// DeleteBankAccount removes a receiving account of one of the company's
// beneficiaries.
func (s *BeneficiaryService) DeleteBankAccount(ctx context.Context, companyID, bankAccountID string, userID string) error {
	account, err := s.GetBankAccount(ctx, companyID, bankAccountID)
	if err != nil {
		return err
	}

	if err := s.beneficiaryRepo.DeleteBankAccount(ctx, bankAccountID); err != nil {
		return fmt.Errorf("failed to delete bank account: %w", err)
	}

	s.auditSvc.Record(ctx, &userID, "bank_account", bankAccountID, "deleted", map[string]any{
		"beneficiaryID": account.BeneficiaryID,
		"currencyCode":  account.CurrencyCode,
	}, nil)
	return nil
}

// SetDefaultBankAccount atomically makes the account the beneficiary's only
// default. The account must belong to one of the company's beneficiaries.
func (s *BeneficiaryService) SetDefaultBankAccount(ctx context.Context, companyID, bankAccountID string, userID string) (*domain.BankAccount, error) {
	if _, err := s.GetBankAccount(ctx, companyID, bankAccountID); err != nil {
		return nil, err
	}

	account, err := s.beneficiaryRepo.SetDefaultBankAccount(ctx, bankAccountID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, bankAccountID)
		}
		return nil, fmt.Errorf("failed to set default bank account: %w", err)
	}

	s.auditSvc.Record(ctx, &userID, "bank_account", bankAccountID, "set_default", nil, map[string]any{
		"beneficiaryID": account.BeneficiaryID,
	})
	return account, nil
}
