package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/core/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListCompanyPayments(ctx context.Context, companyID string, status *domain.PaymentStatus, limit int) ([]domain.Payment, error) {
	args := m.Called(ctx, companyID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountActiveQuoteUsage(ctx context.Context, quoteID string) (int, error) {
	args := m.Called(ctx, quoteID)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) FindApprovalsByPaymentID(ctx context.Context, paymentID string) ([]domain.Approval, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment, expectedVersion int64) error {
	args := m.Called(ctx, payment, expectedVersion)
	return args.Error(0)
}

func (m *MockPaymentRepository) TransitionStatus(ctx context.Context, payment domain.Payment, fromStatus domain.PaymentStatus, expectedVersion int64, approval *domain.Approval) error {
	args := m.Called(ctx, payment, fromStatus, expectedVersion, approval)
	return args.Error(0)
}

func (m *MockPaymentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPaymentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock BeneficiaryReader ---
type MockBeneficiaryReader struct {
	mock.Mock
}

func (m *MockBeneficiaryReader) FindBeneficiaryByID(ctx context.Context, beneficiaryID string) (*domain.Beneficiary, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryReader) ListCompanyBeneficiaries(ctx context.Context, companyID string, includeInactive bool) ([]domain.Beneficiary, error) {
	args := m.Called(ctx, companyID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Beneficiary), args.Error(1)
}

func (m *MockBeneficiaryReader) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBeneficiaryReader) ListBankAccounts(ctx context.Context, beneficiaryID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

// --- Mock QuoteValidator ---
type MockQuoteValidator struct {
	mock.Mock
}

func (m *MockQuoteValidator) GetQuote(ctx context.Context, quoteID string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteValidator) ValidateQuote(ctx context.Context, quote *domain.Quote, now time.Time) bool {
	args := m.Called(ctx, quote, now)
	return args.Bool(0)
}

// --- Mock UserReader ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockBenefRepo   *MockBeneficiaryReader
	mockQuoteSvc    *MockQuoteValidator
	mockUserSvc     *MockUserReader
	mockAudit       *MockAuditRecorder
	service         *services.PaymentService

	companyID string
	makerID   string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockBenefRepo = new(MockBeneficiaryReader)
	suite.mockQuoteSvc = new(MockQuoteValidator)
	suite.mockUserSvc = new(MockUserReader)
	suite.mockAudit = new(MockAuditRecorder)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockBenefRepo,
		suite.mockQuoteSvc,
		suite.mockUserSvc,
		suite.mockAudit,
	)
	suite.companyID = uuid.NewString()
	suite.makerID = uuid.NewString()
}

// validTarget wires an active beneficiary and a matching bank account.
func (suite *PaymentServiceTestSuite) validTarget(ctx context.Context) (string, string) {
	beneficiaryID := uuid.NewString()
	bankAccountID := uuid.NewString()
	suite.mockBenefRepo.On("FindBeneficiaryByID", ctx, beneficiaryID).Return(&domain.Beneficiary{
		BeneficiaryID: beneficiaryID,
		CompanyID:     suite.companyID,
		IsActive:      true,
	}, nil)
	suite.mockBenefRepo.On("FindBankAccountByID", ctx, bankAccountID).Return(&domain.BankAccount{
		BankAccountID: bankAccountID,
		BeneficiaryID: beneficiaryID,
	}, nil)
	return beneficiaryID, bankAccountID
}

func (suite *PaymentServiceTestSuite) draftPayment() *domain.Payment {
	return &domain.Payment{
		PaymentID:      uuid.NewString(),
		CompanyID:      suite.companyID,
		CreatedByID:    suite.makerID,
		BeneficiaryID:  uuid.NewString(),
		BankAccountID:  uuid.NewString(),
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		SourceAmount:   decimal.RequireFromString("10000.00"),
		Status:         domain.PaymentDraft,
		AuditFields:    domain.AuditFields{Version: 1},
	}
}

func (suite *PaymentServiceTestSuite) usableQuote(payment *domain.Payment) *domain.Quote {
	return &domain.Quote{
		QuoteID:        uuid.NewString(),
		CompanyID:      payment.CompanyID,
		SourceCurrency: payment.SourceCurrency,
		TargetCurrency: payment.TargetCurrency,
		BaseRate:       decimal.RequireFromString("1.1650"),
		MarkupFraction: decimal.RequireFromString("0.005"),
		FinalRate:      decimal.RequireFromString("1.1708"),
		SourceAmount:   payment.SourceAmount,
		TargetAmount:   decimal.RequireFromString("11708.00"),
		ExpiresAt:      time.Now().Add(2 * time.Minute),
	}
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestCreateDraft_Success() {
	ctx := context.Background()
	beneficiaryID, bankAccountID := suite.validTarget(ctx)
	req := dto.CreateDraftRequest{
		BeneficiaryID:  beneficiaryID,
		BankAccountID:  bankAccountID,
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		SourceAmount:   decimal.RequireFromString("10000"),
		ExecutionDate:  time.Now().AddDate(0, 0, 1),
	}

	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, &suite.makerID, "payment", mock.AnythingOfType("string"), "created", mock.Anything, mock.Anything).Once()

	payment, err := suite.service.CreateDraft(ctx, suite.companyID, req, suite.makerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(domain.PaymentDraft, payment.Status)
	suite.Equal(suite.makerID, payment.CreatedByID)
	suite.Nil(payment.QuoteID)
	suite.True(payment.TargetAmount.IsZero())
	suite.True(payment.FXRate.IsZero())
	suite.True(payment.TotalDebit.IsZero())
	suite.Equal(int64(1), payment.Version)

	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateDraft_DisabledBeneficiary() {
	ctx := context.Background()
	beneficiaryID := uuid.NewString()
	req := dto.CreateDraftRequest{
		BeneficiaryID:  beneficiaryID,
		BankAccountID:  uuid.NewString(),
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		SourceAmount:   decimal.RequireFromString("100"),
	}

	suite.mockBenefRepo.On("FindBeneficiaryByID", ctx, beneficiaryID).Return(&domain.Beneficiary{
		BeneficiaryID: beneficiaryID,
		CompanyID:     suite.companyID,
		IsActive:      false,
	}, nil).Once()

	payment, err := suite.service.CreateDraft(ctx, suite.companyID, req, suite.makerID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment")
}

func (suite *PaymentServiceTestSuite) TestCreateDraft_CrossCompanyBeneficiary() {
	ctx := context.Background()
	beneficiaryID := uuid.NewString()
	req := dto.CreateDraftRequest{
		BeneficiaryID:  beneficiaryID,
		BankAccountID:  uuid.NewString(),
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		SourceAmount:   decimal.RequireFromString("100"),
	}

	suite.mockBenefRepo.On("FindBeneficiaryByID", ctx, beneficiaryID).Return(&domain.Beneficiary{
		BeneficiaryID: beneficiaryID,
		CompanyID:     uuid.NewString(),
		IsActive:      true,
	}, nil).Once()

	_, err := suite.service.CreateDraft(ctx, suite.companyID, req, suite.makerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PaymentServiceTestSuite) TestUpdateDraft_AmountChangeDetachesQuote() {
	ctx := context.Background()
	payment := suite.draftPayment()
	quoteID := uuid.NewString()
	payment.QuoteID = &quoteID
	newAmount := decimal.RequireFromString("5000")

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.QuoteID == nil && p.SourceAmount.Equal(decimal.RequireFromString("5000.00")) && p.Version == 2
	}), int64(1)).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, &suite.makerID, "payment", payment.PaymentID, "draft_updated", mock.Anything, mock.Anything).Once()

	updated, err := suite.service.UpdateDraft(ctx, suite.companyID, payment.PaymentID, dto.UpdateDraftRequest{SourceAmount: &newAmount}, suite.makerID)

	suite.Require().NoError(err)
	suite.Nil(updated.QuoteID)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdateDraft_NotDraft() {
	ctx := context.Background()
	payment := suite.draftPayment()
	payment.Status = domain.PaymentPendingApproval

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.UpdateDraft(ctx, suite.companyID, payment.PaymentID, dto.UpdateDraftRequest{}, suite.makerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment")
}

func (suite *PaymentServiceTestSuite) TestUpdateDraft_OnlyMaker() {
	ctx := context.Background()
	payment := suite.draftPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.UpdateDraft(ctx, suite.companyID, payment.PaymentID, dto.UpdateDraftRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment")
}

func (suite *PaymentServiceTestSuite) TestAttachQuote_Success() {
	ctx := context.Background()
	payment := suite.draftPayment()
	quote := suite.usableQuote(payment)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()
	suite.mockQuoteSvc.On("ValidateQuote", ctx, quote, mock.AnythingOfType("time.Time")).Return(true).Once()
	suite.mockPaymentRepo.On("CountActiveQuoteUsage", ctx, quote.QuoteID).Return(0, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.QuoteID != nil && *p.QuoteID == quote.QuoteID && p.Version == 2
	}), int64(1)).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, &suite.makerID, "payment", payment.PaymentID, "quote_attached", mock.Anything, mock.Anything).Once()

	updated, err := suite.service.AttachQuote(ctx, suite.companyID, payment.PaymentID, quote.QuoteID, suite.makerID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.QuoteID)
	suite.Equal(quote.QuoteID, *updated.QuoteID)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestAttachQuote_Expired() {
	ctx := context.Background()
	payment := suite.draftPayment()
	quote := suite.usableQuote(payment)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()
	suite.mockQuoteSvc.On("ValidateQuote", ctx, quote, mock.AnythingOfType("time.Time")).Return(false).Once()

	_, err := suite.service.AttachQuote(ctx, suite.companyID, payment.PaymentID, quote.QuoteID, suite.makerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrQuoteExpired)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment")
}

func (suite *PaymentServiceTestSuite) TestAttachQuote_AmountMismatch() {
	ctx := context.Background()
	payment := suite.draftPayment()
	quote := suite.usableQuote(payment)
	quote.SourceAmount = decimal.RequireFromString("9999.00")

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()

	_, err := suite.service.AttachQuote(ctx, suite.companyID, payment.PaymentID, quote.QuoteID, suite.makerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestAttachQuote_AlreadyInUse() {
	ctx := context.Background()
	payment := suite.draftPayment()
	quote := suite.usableQuote(payment)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()
	suite.mockQuoteSvc.On("ValidateQuote", ctx, quote, mock.AnythingOfType("time.Time")).Return(true).Once()
	suite.mockPaymentRepo.On("CountActiveQuoteUsage", ctx, quote.QuoteID).Return(1, nil).Once()

	_, err := suite.service.AttachQuote(ctx, suite.companyID, payment.PaymentID, quote.QuoteID, suite.makerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment")
}

func (suite *PaymentServiceTestSuite) TestSubmit_FreezesAmounts() {
	ctx := context.Background()
	payment := suite.draftPayment()
	quote := suite.usableQuote(payment)
	payment.QuoteID = &quote.QuoteID
	payment.BeneficiaryID, payment.BankAccountID = suite.validTarget(ctx)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()
	suite.mockQuoteSvc.On("ValidateQuote", ctx, quote, mock.AnythingOfType("time.Time")).Return(true).Once()
	suite.mockPaymentRepo.On("TransitionStatus", ctx, mock.AnythingOfType("domain.Payment"), domain.PaymentDraft, int64(1), (*domain.Approval)(nil)).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, &suite.makerID, "payment", payment.PaymentID, "submitted", mock.Anything, mock.Anything).Once()

	submitted, err := suite.service.Submit(ctx, suite.companyID, payment.PaymentID, suite.makerID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPendingApproval, submitted.Status)
	// 10000 * 1.1708 = 11708.00; fee = 11708.00 - 11650.00 = 58.00
	suite.True(submitted.TargetAmount.Equal(decimal.RequireFromString("11708.00")), "target amount was %s", submitted.TargetAmount)
	suite.True(submitted.FXRate.Equal(decimal.RequireFromString("1.1708")))
	suite.True(submitted.FeeAmount.Equal(decimal.RequireFromString("58.00")), "fee was %s", submitted.FeeAmount)
	suite.True(submitted.TotalDebit.Equal(decimal.RequireFromString("10058.00")), "total debit was %s", submitted.TotalDebit)
	suite.Equal(int64(2), submitted.Version)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestSubmit_ExpiredQuoteStaysDraft() {
	ctx := context.Background()
	payment := suite.draftPayment()
	quote := suite.usableQuote(payment)
	payment.QuoteID = &quote.QuoteID
	payment.BeneficiaryID, payment.BankAccountID = suite.validTarget(ctx)

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()
	suite.mockQuoteSvc.On("ValidateQuote", ctx, quote, mock.AnythingOfType("time.Time")).Return(false).Once()

	_, err := suite.service.Submit(ctx, suite.companyID, payment.PaymentID, suite.makerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrQuoteExpired)
	suite.Equal(domain.PaymentDraft, payment.Status)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "TransitionStatus")
}

func (suite *PaymentServiceTestSuite) TestSubmit_OnlyMaker() {
	ctx := context.Background()
	payment := suite.draftPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.Submit(ctx, suite.companyID, payment.PaymentID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PaymentServiceTestSuite) TestSubmit_RequiresQuote() {
	ctx := context.Background()
	payment := suite.draftPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.Submit(ctx, suite.companyID, payment.PaymentID, suite.makerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) pendingPayment() (*domain.Payment, *domain.Quote) {
	payment := suite.draftPayment()
	quote := suite.usableQuote(payment)
	payment.QuoteID = &quote.QuoteID
	payment.Status = domain.PaymentPendingApproval
	payment.TargetAmount = decimal.RequireFromString("11708.00")
	payment.FXRate = quote.FinalRate
	payment.FeeAmount = decimal.RequireFromString("58.00")
	payment.TotalDebit = decimal.RequireFromString("10058.00")
	payment.Version = 2
	return payment, quote
}

func (suite *PaymentServiceTestSuite) TestDecide_ApproveSuccess() {
	ctx := context.Background()
	payment, quote := suite.pendingPayment()
	deciderID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, deciderID).Return(&domain.User{UserID: deciderID, CompanyID: suite.companyID, Role: domain.RoleApprover}, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()
	suite.mockQuoteSvc.On("ValidateQuote", ctx, quote, mock.AnythingOfType("time.Time")).Return(true).Once()
	suite.mockPaymentRepo.On("TransitionStatus", ctx, mock.AnythingOfType("domain.Payment"), domain.PaymentPendingApproval, int64(2), mock.MatchedBy(func(a *domain.Approval) bool {
		return a != nil && a.Action == domain.ApprovalApprove && a.DeciderID == deciderID
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, &deciderID, "payment", payment.PaymentID, "approved", mock.Anything, mock.Anything).Once()

	decided, err := suite.service.Decide(ctx, suite.companyID, payment.PaymentID, deciderID, domain.ApprovalApprove, "looks good")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentApproved, decided.Status)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDecide_SelfApprovalForbidden() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.Decide(ctx, suite.companyID, payment.PaymentID, suite.makerID, domain.ApprovalApprove, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrSelfApproval)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "GetUserByID")
}

func (suite *PaymentServiceTestSuite) TestDecide_MakerRoleCannotDecide() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	deciderID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, deciderID).Return(&domain.User{UserID: deciderID, CompanyID: suite.companyID, Role: domain.RoleMaker}, nil).Once()

	_, err := suite.service.Decide(ctx, suite.companyID, payment.PaymentID, deciderID, domain.ApprovalApprove, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PaymentServiceTestSuite) TestDecide_RejectRequiresComment() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	deciderID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, deciderID).Return(&domain.User{UserID: deciderID, CompanyID: suite.companyID, Role: domain.RoleApprover}, nil).Once()

	_, err := suite.service.Decide(ctx, suite.companyID, payment.PaymentID, deciderID, domain.ApprovalReject, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "TransitionStatus")
}

func (suite *PaymentServiceTestSuite) TestDecide_ExpiredQuoteAutoRejects() {
	ctx := context.Background()
	payment, quote := suite.pendingPayment()
	deciderID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, deciderID).Return(&domain.User{UserID: deciderID, CompanyID: suite.companyID, Role: domain.RoleApprover}, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()
	suite.mockQuoteSvc.On("ValidateQuote", ctx, quote, mock.AnythingOfType("time.Time")).Return(false).Once()
	suite.mockPaymentRepo.On("TransitionStatus", ctx, mock.AnythingOfType("domain.Payment"), domain.PaymentPendingApproval, int64(2), mock.MatchedBy(func(a *domain.Approval) bool {
		return a != nil && a.Action == domain.ApprovalReject && a.Comment == "quote expired"
	})).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, (*string)(nil), "payment", payment.PaymentID, "auto_rejected", mock.Anything, mock.Anything).Once()

	decided, err := suite.service.Decide(ctx, suite.companyID, payment.PaymentID, deciderID, domain.ApprovalApprove, "")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRejected, decided.Status)
	suite.Require().NotNil(decided.FailureReason)
	suite.Equal("quote expired", *decided.FailureReason)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDecide_StaleVersion() {
	ctx := context.Background()
	payment, quote := suite.pendingPayment()
	deciderID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, deciderID).Return(&domain.User{UserID: deciderID, CompanyID: suite.companyID, Role: domain.RoleApprover}, nil).Once()
	suite.mockQuoteSvc.On("GetQuote", ctx, quote.QuoteID).Return(quote, nil).Once()
	suite.mockQuoteSvc.On("ValidateQuote", ctx, quote, mock.AnythingOfType("time.Time")).Return(true).Once()
	suite.mockPaymentRepo.On("TransitionStatus", ctx, mock.AnythingOfType("domain.Payment"), domain.PaymentPendingApproval, int64(2), mock.Anything).
		Return(apperrors.ErrStaleState).Once()

	_, err := suite.service.Decide(ctx, suite.companyID, payment.PaymentID, deciderID, domain.ApprovalApprove, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStaleState)
}

// An approver authenticated under another company must not be able to decide
// a payment; the payment reads as not found before any role check runs.
func (suite *PaymentServiceTestSuite) TestDecide_OtherCompanyNotFound() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	deciderID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.Decide(ctx, uuid.NewString(), payment.PaymentID, deciderID, domain.ApprovalApprove, "looks good")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserSvc.AssertNotCalled(suite.T(), "GetUserByID")
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "TransitionStatus")
}

func (suite *PaymentServiceTestSuite) TestDecide_DeciderRecordFromOtherCompany() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	deciderID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, deciderID).Return(&domain.User{UserID: deciderID, CompanyID: uuid.NewString(), Role: domain.RoleApprover}, nil).Once()

	_, err := suite.service.Decide(ctx, suite.companyID, payment.PaymentID, deciderID, domain.ApprovalApprove, "looks good")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "TransitionStatus")
}

// Every payment operation is scoped to the caller's company, so a caller from
// another company can neither read nor act on the payment.
func (suite *PaymentServiceTestSuite) TestPaymentOpsScopedToCompany() {
	ctx := context.Background()
	otherCompany := uuid.NewString()

	ops := []struct {
		name string
		call func(paymentID string) error
	}{
		{"get", func(id string) error {
			_, err := suite.service.GetPayment(ctx, otherCompany, id)
			return err
		}},
		{"approvals", func(id string) error {
			_, err := suite.service.GetApprovals(ctx, otherCompany, id)
			return err
		}},
		{"update draft", func(id string) error {
			_, err := suite.service.UpdateDraft(ctx, otherCompany, id, dto.UpdateDraftRequest{}, suite.makerID)
			return err
		}},
		{"attach quote", func(id string) error {
			_, err := suite.service.AttachQuote(ctx, otherCompany, id, uuid.NewString(), suite.makerID)
			return err
		}},
		{"submit", func(id string) error {
			_, err := suite.service.Submit(ctx, otherCompany, id, suite.makerID)
			return err
		}},
		{"decide", func(id string) error {
			_, err := suite.service.Decide(ctx, otherCompany, id, uuid.NewString(), domain.ApprovalApprove, "")
			return err
		}},
		{"mark processing", func(id string) error {
			_, err := suite.service.MarkProcessing(ctx, otherCompany, id)
			return err
		}},
		{"report outcome", func(id string) error {
			_, err := suite.service.ReportExecutionOutcome(ctx, otherCompany, id, domain.ExecutionSucceeded, "prov-ref-42")
			return err
		}},
		{"reopen", func(id string) error {
			_, err := suite.service.ReopenRejected(ctx, otherCompany, id, suite.makerID)
			return err
		}},
	}

	for _, op := range ops {
		payment := suite.draftPayment()
		suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

		err := op.call(payment.PaymentID)

		suite.Require().Error(err, op.name)
		suite.ErrorIs(err, apperrors.ErrNotFound, op.name)
	}
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePayment")
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "TransitionStatus")
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindApprovalsByPaymentID")
}

func (suite *PaymentServiceTestSuite) TestMarkProcessing_Success() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	payment.Status = domain.PaymentApproved
	payment.Version = 3

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("TransitionStatus", ctx, mock.AnythingOfType("domain.Payment"), domain.PaymentApproved, int64(3), (*domain.Approval)(nil)).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, (*string)(nil), "payment", payment.PaymentID, "processing", mock.Anything, mock.Anything).Once()

	processing, err := suite.service.MarkProcessing(ctx, suite.companyID, payment.PaymentID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentProcessing, processing.Status)
	suite.Equal("system", processing.LastUpdatedBy)
}

func (suite *PaymentServiceTestSuite) TestReportExecutionOutcome_Succeeded() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	payment.Status = domain.PaymentProcessing
	payment.Version = 4

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("TransitionStatus", ctx, mock.AnythingOfType("domain.Payment"), domain.PaymentProcessing, int64(4), (*domain.Approval)(nil)).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, (*string)(nil), "payment", payment.PaymentID, "completed", mock.Anything, mock.Anything).Once()

	done, err := suite.service.ReportExecutionOutcome(ctx, suite.companyID, payment.PaymentID, domain.ExecutionSucceeded, "prov-ref-42")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentCompleted, done.Status)
	suite.Require().NotNil(done.ExternalID)
	suite.Equal("prov-ref-42", *done.ExternalID)
}

func (suite *PaymentServiceTestSuite) TestReportExecutionOutcome_FailedDefaultsReason() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	payment.Status = domain.PaymentProcessing
	payment.Version = 4

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("TransitionStatus", ctx, mock.AnythingOfType("domain.Payment"), domain.PaymentProcessing, int64(4), (*domain.Approval)(nil)).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, (*string)(nil), "payment", payment.PaymentID, "failed", mock.Anything, mock.Anything).Once()

	failed, err := suite.service.ReportExecutionOutcome(ctx, suite.companyID, payment.PaymentID, domain.ExecutionFailed, "")

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentFailed, failed.Status)
	suite.Require().NotNil(failed.FailureReason)
	suite.Equal("execution failed", *failed.FailureReason)
}

func (suite *PaymentServiceTestSuite) TestReportExecutionOutcome_SucceededRequiresReference() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	payment.Status = domain.PaymentProcessing
	payment.Version = 4

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.ReportExecutionOutcome(ctx, suite.companyID, payment.PaymentID, domain.ExecutionSucceeded, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "TransitionStatus")
}

func (suite *PaymentServiceTestSuite) TestReportExecutionOutcome_NotProcessing() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.ReportExecutionOutcome(ctx, suite.companyID, payment.PaymentID, domain.ExecutionSucceeded, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PaymentServiceTestSuite) TestReopenRejected_ClearsQuoteAndAmounts() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	payment.Status = domain.PaymentRejected
	reason := "amount too high"
	payment.FailureReason = &reason
	payment.Version = 3

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("TransitionStatus", ctx, mock.AnythingOfType("domain.Payment"), domain.PaymentRejected, int64(3), (*domain.Approval)(nil)).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, &suite.makerID, "payment", payment.PaymentID, "reopened", mock.Anything, mock.Anything).Once()

	reopened, err := suite.service.ReopenRejected(ctx, suite.companyID, payment.PaymentID, suite.makerID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentDraft, reopened.Status)
	suite.Nil(reopened.QuoteID)
	suite.Nil(reopened.FailureReason)
	suite.True(reopened.TargetAmount.IsZero())
	suite.True(reopened.TotalDebit.IsZero())
}

func (suite *PaymentServiceTestSuite) TestReopenRejected_OnlyMaker() {
	ctx := context.Background()
	payment, _ := suite.pendingPayment()
	payment.Status = domain.PaymentRejected

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.ReopenRejected(ctx, suite.companyID, payment.PaymentID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PaymentServiceTestSuite) TestListPendingApprovals_FiltersStatus() {
	ctx := context.Background()
	pending := domain.PaymentPendingApproval

	suite.mockPaymentRepo.On("ListCompanyPayments", ctx, suite.companyID, &pending, 20).
		Return([]domain.Payment{{PaymentID: uuid.NewString(), Status: pending}}, nil).Once()

	payments, err := suite.service.ListPendingApprovals(ctx, suite.companyID, 20)

	suite.Require().NoError(err)
	suite.Len(payments, 1)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func TestNewPaymentService(t *testing.T) {
	service := services.NewPaymentService(
		new(MockPaymentRepository),
		new(MockBeneficiaryReader),
		new(MockQuoteValidator),
		new(MockUserReader),
		new(MockAuditRecorder),
	)
	assert.NotNil(t, service)
	var _ portssvc.PaymentSvcFacade = service
}

// --- Run Suite ---
func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
