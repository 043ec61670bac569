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
	"github.com/flowpay/flow_backend/internal/utils/fxmath"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const autoRejectReason = "quote expired"

// PaymentService drives the maker-checker payment workflow.
type PaymentService struct {
	paymentRepo     portsrepo.PaymentRepositoryWithTx
	beneficiaryRepo portsrepo.BeneficiaryReader
	quoteSvc        portssvc.QuoteValidatorSvc
	userSvc         portssvc.UserReaderSvc
	auditSvc        portssvc.AuditRecorder
	now             func() time.Time
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(pr portsrepo.PaymentRepositoryWithTx, br portsrepo.BeneficiaryReader, qs portssvc.QuoteValidatorSvc, us portssvc.UserReaderSvc, auditSvc portssvc.AuditRecorder) *PaymentService {
	return &PaymentService{
		paymentRepo:     pr,
		beneficiaryRepo: br,
		quoteSvc:        qs,
		userSvc:         us,
		auditSvc:        auditSvc,
		now:             time.Now,
	}
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

// GetPayment retrieves one of the company's payments. A payment belonging to
// another company is reported as not found so its existence never leaks.
func (s *PaymentService) GetPayment(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment.CompanyID != companyID {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	return payment, nil
}

// ListCompanyPayments lists a company's payments, optionally filtered by status.
func (s *PaymentService) ListCompanyPayments(ctx context.Context, companyID string, status *domain.PaymentStatus, limit int) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListCompanyPayments(ctx, companyID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list company payments: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

// ListPendingApprovals lists payments awaiting a checker decision.
func (s *PaymentService) ListPendingApprovals(ctx context.Context, companyID string, limit int) ([]domain.Payment, error) {
	pending := domain.PaymentPendingApproval
	return s.ListCompanyPayments(ctx, companyID, &pending, limit)
}

// GetApprovals retrieves the decision history of one of the company's payments.
func (s *PaymentService) GetApprovals(ctx context.Context, companyID, paymentID string) ([]domain.Approval, error) {
	if _, err := s.GetPayment(ctx, companyID, paymentID); err != nil {
		return nil, err
	}
	approvals, err := s.paymentRepo.FindApprovalsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approvals: %w", err)
	}
	if approvals == nil {
		return []domain.Approval{}, nil
	}
	return approvals, nil
}

// CreateDraft creates a payment in DRAFT for the maker. Converted amounts stay
// zero until a quote is attached and the draft submitted.
func (s *PaymentService) CreateDraft(ctx context.Context, companyID string, req dto.CreateDraftRequest, creatorID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.SourceAmount.IsPositive() {
		return nil, fmt.Errorf("%w: source amount must be positive", apperrors.ErrValidation)
	}

	if err := s.checkPaymentTarget(ctx, companyID, req.BeneficiaryID, req.BankAccountID); err != nil {
		return nil, err
	}

	now := s.now()
	payment := domain.Payment{
		PaymentID:        uuid.NewString(),
		CompanyID:        companyID,
		CreatedByID:      creatorID,
		BeneficiaryID:    req.BeneficiaryID,
		BankAccountID:    req.BankAccountID,
		SourceCurrency:   req.SourceCurrency,
		TargetCurrency:   req.TargetCurrency,
		SourceAmount:     fxmath.RoundAmount(req.SourceAmount),
		TargetAmount:     decimal.Zero,
		FXRate:           decimal.Zero,
		FeeAmount:        decimal.Zero,
		TotalDebit:       decimal.Zero,
		PaymentReference: req.PaymentReference,
		ExecutionDate:    req.ExecutionDate,
		Status:           domain.PaymentDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
			Version:       1,
		},
	}

	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		logger.Error("Failed to save draft payment", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create draft payment: %w", err)
	}

	s.auditSvc.Record(ctx, &creatorID, "payment", payment.PaymentID, "created", nil, map[string]any{
		"status":        string(payment.Status),
		"sourceAmount":  payment.SourceAmount.String(),
		"currencyPair":  payment.SourceCurrency + "/" + payment.TargetCurrency,
		"beneficiaryID": payment.BeneficiaryID,
	})

	logger.Info("Draft payment created", slog.String("payment_id", payment.PaymentID), slog.String("company_id", companyID))
	return &payment, nil
}

// UpdateDraft applies a partial update to a DRAFT payment. Changing the source
// amount detaches any attached quote because its amounts no longer apply.
func (s *PaymentService) UpdateDraft(ctx context.Context, companyID, paymentID string, req dto.UpdateDraftRequest, userID string) (*domain.Payment, error) {
	payment, err := s.GetPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentDraft {
		return nil, fmt.Errorf("%w: payment %s is %s, only drafts can be edited", apperrors.ErrConflict, paymentID, payment.Status)
	}
	if payment.CreatedByID != userID {
		return nil, fmt.Errorf("%w: only the payment's maker can edit it", apperrors.ErrForbidden)
	}

	before := map[string]any{
		"beneficiaryID": payment.BeneficiaryID,
		"bankAccountID": payment.BankAccountID,
		"sourceAmount":  payment.SourceAmount.String(),
	}

	beneficiaryID := payment.BeneficiaryID
	bankAccountID := payment.BankAccountID
	if req.BeneficiaryID != nil {
		beneficiaryID = *req.BeneficiaryID
	}
	if req.BankAccountID != nil {
		bankAccountID = *req.BankAccountID
	}
	if beneficiaryID != payment.BeneficiaryID || bankAccountID != payment.BankAccountID {
		if err := s.checkPaymentTarget(ctx, payment.CompanyID, beneficiaryID, bankAccountID); err != nil {
			return nil, err
		}
		payment.BeneficiaryID = beneficiaryID
		payment.BankAccountID = bankAccountID
	}

	if req.SourceAmount != nil {
		if !req.SourceAmount.IsPositive() {
			return nil, fmt.Errorf("%w: source amount must be positive", apperrors.ErrValidation)
		}
		newAmount := fxmath.RoundAmount(*req.SourceAmount)
		if !newAmount.Equal(payment.SourceAmount) {
			payment.SourceAmount = newAmount
			payment.QuoteID = nil
		}
	}
	if req.ExecutionDate != nil {
		payment.ExecutionDate = *req.ExecutionDate
	}
	if req.PaymentReference != nil {
		payment.PaymentReference = *req.PaymentReference
	}

	expectedVersion := payment.Version
	payment.LastUpdatedAt = s.now()
	payment.LastUpdatedBy = userID
	payment.Version++

	if err := s.paymentRepo.UpdatePayment(ctx, *payment, expectedVersion); err != nil {
		return nil, fmt.Errorf("failed to update draft payment: %w", err)
	}

	s.auditSvc.Record(ctx, &userID, "payment", payment.PaymentID, "draft_updated", before, map[string]any{
		"beneficiaryID": payment.BeneficiaryID,
		"bankAccountID": payment.BankAccountID,
		"sourceAmount":  payment.SourceAmount.String(),
	})
	return payment, nil
}

// AttachQuote binds a usable quote to a draft. The quote must belong to the
// same company, match the draft's pair and amount, and not be referenced by
// another non-terminal payment.
func (s *PaymentService) AttachQuote(ctx context.Context, companyID, paymentID, quoteID, userID string) (*domain.Payment, error) {
	payment, err := s.GetPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentDraft {
		return nil, fmt.Errorf("%w: payment %s is %s, quotes attach to drafts only", apperrors.ErrConflict, paymentID, payment.Status)
	}
	if payment.CreatedByID != userID {
		return nil, fmt.Errorf("%w: only the payment's maker can edit it", apperrors.ErrForbidden)
	}

	quote, err := s.quoteSvc.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.CompanyID != payment.CompanyID {
		return nil, fmt.Errorf("%w: quote %s belongs to a different company", apperrors.ErrForbidden, quoteID)
	}
	if quote.SourceCurrency != payment.SourceCurrency || quote.TargetCurrency != payment.TargetCurrency {
		return nil, fmt.Errorf("%w: quote pair %s does not match payment pair %s/%s", apperrors.ErrValidation, quote.CurrencyPair(), payment.SourceCurrency, payment.TargetCurrency)
	}
	if !quote.SourceAmount.Equal(payment.SourceAmount) {
		return nil, fmt.Errorf("%w: quote amount %s does not match payment amount %s", apperrors.ErrValidation, quote.SourceAmount.String(), payment.SourceAmount.String())
	}
	if !s.quoteSvc.ValidateQuote(ctx, quote, s.now()) {
		return nil, fmt.Errorf("%w: quote %s", apperrors.ErrQuoteExpired, quoteID)
	}

	usage, err := s.paymentRepo.CountActiveQuoteUsage(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to check quote usage: %w", err)
	}
	if usage > 0 {
		return nil, fmt.Errorf("%w: quote %s is already attached to an active payment", apperrors.ErrConflict, quoteID)
	}

	expectedVersion := payment.Version
	payment.QuoteID = &quote.QuoteID
	payment.LastUpdatedAt = s.now()
	payment.LastUpdatedBy = userID
	payment.Version++

	if err := s.paymentRepo.UpdatePayment(ctx, *payment, expectedVersion); err != nil {
		return nil, fmt.Errorf("failed to attach quote: %w", err)
	}

	s.auditSvc.Record(ctx, &userID, "payment", payment.PaymentID, "quote_attached", nil, map[string]any{
		"quoteID":   quote.QuoteID,
		"finalRate": quote.FinalRate.String(),
	})
	return payment, nil
}

// Submit moves a draft to PENDING_APPROVAL, freezing the converted amounts
// from the attached quote. An expired quote fails the submission and the
// payment stays in DRAFT.
func (s *PaymentService) Submit(ctx context.Context, companyID, paymentID, makerID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.GetPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(domain.PaymentPendingApproval) {
		return nil, fmt.Errorf("%w: payment %s is %s, only drafts can be submitted", apperrors.ErrConflict, paymentID, payment.Status)
	}
	if payment.CreatedByID != makerID {
		return nil, fmt.Errorf("%w: only the payment's maker can submit it", apperrors.ErrForbidden)
	}
	if payment.QuoteID == nil {
		return nil, fmt.Errorf("%w: a quote must be attached before submission", apperrors.ErrValidation)
	}

	if err := s.checkPaymentTarget(ctx, payment.CompanyID, payment.BeneficiaryID, payment.BankAccountID); err != nil {
		return nil, err
	}

	quote, err := s.quoteSvc.GetQuote(ctx, *payment.QuoteID)
	if err != nil {
		return nil, err
	}
	if !s.quoteSvc.ValidateQuote(ctx, quote, s.now()) {
		return nil, fmt.Errorf("%w: quote %s", apperrors.ErrQuoteExpired, quote.QuoteID)
	}

	amounts := fxmath.CalculateAmounts(quote, payment.SourceAmount)

	expectedVersion := payment.Version
	payment.TargetAmount = amounts.TargetAmount
	payment.FXRate = amounts.ExchangeRate
	payment.FeeAmount = amounts.MarkupFee
	payment.TotalDebit = payment.SourceAmount.Add(amounts.MarkupFee)
	payment.Status = domain.PaymentPendingApproval
	payment.LastUpdatedAt = s.now()
	payment.LastUpdatedBy = makerID
	payment.Version++

	if err := s.paymentRepo.TransitionStatus(ctx, *payment, domain.PaymentDraft, expectedVersion, nil); err != nil {
		logger.Error("Failed to submit payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to submit payment: %w", err)
	}

	s.auditSvc.Record(ctx, &makerID, "payment", payment.PaymentID, "submitted", map[string]any{
		"status": string(domain.PaymentDraft),
	}, map[string]any{
		"status":       string(payment.Status),
		"fxRate":       payment.FXRate.String(),
		"targetAmount": payment.TargetAmount.String(),
		"feeAmount":    payment.FeeAmount.String(),
		"totalDebit":   payment.TotalDebit.String(),
	})

	logger.Info("Payment submitted for approval", slog.String("payment_id", payment.PaymentID))
	return payment, nil
}

// Decide records a checker's decision. The quote is re-validated at decision
// time; an expired quote auto-rejects the payment regardless of the requested
// action.
func (s *PaymentService) Decide(ctx context.Context, companyID, paymentID, deciderID string, action domain.ApprovalAction, comment string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.GetPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(domain.PaymentApproved) {
		return nil, fmt.Errorf("%w: payment %s is %s, not awaiting approval", apperrors.ErrConflict, paymentID, payment.Status)
	}
	if payment.CreatedByID == deciderID {
		return nil, fmt.Errorf("%w: the maker cannot decide on their own payment", apperrors.ErrSelfApproval)
	}

	decider, err := s.userSvc.GetUserByID(ctx, deciderID)
	if err != nil {
		return nil, err
	}
	if decider.CompanyID != payment.CompanyID {
		return nil, fmt.Errorf("%w: decider belongs to a different company", apperrors.ErrForbidden)
	}
	if !decider.Role.CanDecide() {
		return nil, fmt.Errorf("%w: role %s cannot approve or reject payments", apperrors.ErrForbidden, decider.Role)
	}
	if action == domain.ApprovalReject && comment == "" {
		return nil, fmt.Errorf("%w: a rejection requires a comment", apperrors.ErrValidation)
	}

	if payment.QuoteID != nil {
		quote, err := s.quoteSvc.GetQuote(ctx, *payment.QuoteID)
		if err != nil {
			return nil, err
		}
		if !s.quoteSvc.ValidateQuote(ctx, quote, s.now()) {
			return s.autoReject(ctx, payment, deciderID)
		}
	}

	now := s.now()
	approval := domain.Approval{
		ApprovalID: uuid.NewString(),
		PaymentID:  payment.PaymentID,
		DeciderID:  deciderID,
		Action:     action,
		Comment:    comment,
		CreatedAt:  now,
	}

	expectedVersion := payment.Version
	fromStatus := payment.Status
	switch action {
	case domain.ApprovalApprove:
		payment.Status = domain.PaymentApproved
	case domain.ApprovalReject:
		payment.Status = domain.PaymentRejected
		reason := comment
		payment.FailureReason = &reason
	default:
		return nil, fmt.Errorf("%w: unknown decision action %q", apperrors.ErrValidation, action)
	}
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = deciderID
	payment.Version++

	if err := s.paymentRepo.TransitionStatus(ctx, *payment, fromStatus, expectedVersion, &approval); err != nil {
		logger.Error("Failed to record decision", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	auditAction := "approved"
	if action == domain.ApprovalReject {
		auditAction = "rejected"
	}
	s.auditSvc.Record(ctx, &deciderID, "payment", payment.PaymentID, auditAction, map[string]any{
		"status": string(fromStatus),
	}, map[string]any{
		"status":  string(payment.Status),
		"comment": comment,
	})

	logger.Info("Payment decision recorded", slog.String("payment_id", payment.PaymentID), slog.String("action", string(action)))
	return payment, nil
}

// autoReject moves a pending payment to REJECTED because its quote expired
// before the decision. The system, not the decider, is the actor.
func (s *PaymentService) autoReject(ctx context.Context, payment *domain.Payment, deciderID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := s.now()

	approval := domain.Approval{
		ApprovalID: uuid.NewString(),
		PaymentID:  payment.PaymentID,
		DeciderID:  deciderID,
		Action:     domain.ApprovalReject,
		Comment:    autoRejectReason,
		CreatedAt:  now,
	}

	expectedVersion := payment.Version
	reason := autoRejectReason
	payment.Status = domain.PaymentRejected
	payment.FailureReason = &reason
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = deciderID
	payment.Version++

	if err := s.paymentRepo.TransitionStatus(ctx, *payment, domain.PaymentPendingApproval, expectedVersion, &approval); err != nil {
		return nil, fmt.Errorf("failed to auto-reject payment: %w", err)
	}

	s.auditSvc.Record(ctx, nil, "payment", payment.PaymentID, "auto_rejected", map[string]any{
		"status": string(domain.PaymentPendingApproval),
	}, map[string]any{
		"status": string(payment.Status),
		"reason": autoRejectReason,
	})

	logger.Warn("Payment auto-rejected, quote expired before decision", slog.String("payment_id", payment.PaymentID))
	return payment, nil
}

// MarkProcessing moves an approved payment to PROCESSING when it is handed to
// the execution collaborator.
func (s *PaymentService) MarkProcessing(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	payment, err := s.GetPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(domain.PaymentProcessing) {
		return nil, fmt.Errorf("%w: payment %s is %s, only approved payments can start processing", apperrors.ErrConflict, paymentID, payment.Status)
	}

	expectedVersion := payment.Version
	payment.Status = domain.PaymentProcessing
	payment.LastUpdatedAt = s.now()
	payment.LastUpdatedBy = "system"
	payment.Version++

	if err := s.paymentRepo.TransitionStatus(ctx, *payment, domain.PaymentApproved, expectedVersion, nil); err != nil {
		return nil, fmt.Errorf("failed to mark payment processing: %w", err)
	}

	s.auditSvc.Record(ctx, nil, "payment", payment.PaymentID, "processing", map[string]any{
		"status": string(domain.PaymentApproved),
	}, map[string]any{
		"status": string(payment.Status),
	})
	return payment, nil
}

// ReportExecutionOutcome resolves a PROCESSING payment to COMPLETED or FAILED.
func (s *PaymentService) ReportExecutionOutcome(ctx context.Context, companyID, paymentID string, outcome domain.ExecutionOutcome, referenceOrReason string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.GetPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(domain.PaymentCompleted) {
		return nil, fmt.Errorf("%w: payment %s is %s, only processing payments can resolve", apperrors.ErrConflict, paymentID, payment.Status)
	}

	expectedVersion := payment.Version
	after := map[string]any{}
	switch outcome {
	case domain.ExecutionSucceeded:
		if referenceOrReason == "" {
			return nil, fmt.Errorf("%w: a successful execution requires the provider reference", apperrors.ErrValidation)
		}
		payment.Status = domain.PaymentCompleted
		ref := referenceOrReason
		payment.ExternalID = &ref
		after["externalID"] = ref
	case domain.ExecutionFailed:
		payment.Status = domain.PaymentFailed
		reason := referenceOrReason
		if reason == "" {
			reason = "execution failed"
		}
		payment.FailureReason = &reason
		after["failureReason"] = reason
	default:
		return nil, fmt.Errorf("%w: unknown execution outcome %q", apperrors.ErrValidation, outcome)
	}
	after["status"] = string(payment.Status)

	payment.LastUpdatedAt = s.now()
	payment.LastUpdatedBy = "system"
	payment.Version++

	if err := s.paymentRepo.TransitionStatus(ctx, *payment, domain.PaymentProcessing, expectedVersion, nil); err != nil {
		logger.Error("Failed to record execution outcome", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to record execution outcome: %w", err)
	}

	auditAction := "completed"
	if payment.Status == domain.PaymentFailed {
		auditAction = "failed"
	}
	s.auditSvc.Record(ctx, nil, "payment", payment.PaymentID, auditAction, map[string]any{
		"status": string(domain.PaymentProcessing),
	}, after)

	logger.Info("Payment execution resolved", slog.String("payment_id", payment.PaymentID), slog.String("status", string(payment.Status)))
	return payment, nil
}

// ReopenRejected moves a rejected payment back to DRAFT for edit and
// resubmission. The attached quote and frozen amounts are cleared.
func (s *PaymentService) ReopenRejected(ctx context.Context, companyID, paymentID, makerID string) (*domain.Payment, error) {
	payment, err := s.GetPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(domain.PaymentDraft) {
		return nil, fmt.Errorf("%w: payment %s is %s, only rejected payments can be reopened", apperrors.ErrConflict, paymentID, payment.Status)
	}
	if payment.CreatedByID != makerID {
		return nil, fmt.Errorf("%w: only the payment's maker can reopen it", apperrors.ErrForbidden)
	}

	expectedVersion := payment.Version
	payment.Status = domain.PaymentDraft
	payment.QuoteID = nil
	payment.FailureReason = nil
	payment.TargetAmount = decimal.Zero
	payment.FXRate = decimal.Zero
	payment.FeeAmount = decimal.Zero
	payment.TotalDebit = decimal.Zero
	payment.LastUpdatedAt = s.now()
	payment.LastUpdatedBy = makerID
	payment.Version++

	if err := s.paymentRepo.TransitionStatus(ctx, *payment, domain.PaymentRejected, expectedVersion, nil); err != nil {
		return nil, fmt.Errorf("failed to reopen payment: %w", err)
	}

	s.auditSvc.Record(ctx, &makerID, "payment", payment.PaymentID, "reopened", map[string]any{
		"status": string(domain.PaymentRejected),
	}, map[string]any{
		"status": string(payment.Status),
	})
	return payment, nil
}

// checkPaymentTarget verifies the beneficiary and bank account form a usable
// payment destination for the company.
func (s *PaymentService) checkPaymentTarget(ctx context.Context, companyID, beneficiaryID, bankAccountID string) error {
	beneficiary, err := s.beneficiaryRepo.FindBeneficiaryByID(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: beneficiary %s", apperrors.ErrNotFound, beneficiaryID)
		}
		return fmt.Errorf("failed to check beneficiary: %w", err)
	}
	if beneficiary.CompanyID != companyID {
		return fmt.Errorf("%w: beneficiary %s belongs to a different company", apperrors.ErrForbidden, beneficiaryID)
	}
	if !beneficiary.IsActive {
		return fmt.Errorf("%w: beneficiary %s is disabled", apperrors.ErrValidation, beneficiaryID)
	}

	account, err := s.beneficiaryRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, bankAccountID)
		}
		return fmt.Errorf("failed to check bank account: %w", err)
	}
	if account.BeneficiaryID != beneficiaryID {
		return fmt.Errorf("%w: bank account %s does not belong to beneficiary %s", apperrors.ErrValidation, bankAccountID, beneficiaryID)
	}
	return nil
}
