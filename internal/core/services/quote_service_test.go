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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock QuoteRepository ---
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListActiveQuotes(ctx context.Context, companyID string, sourceCurrency, targetCurrency *string, now time.Time) ([]domain.Quote, error) {
	args := m.Called(ctx, companyID, sourceCurrency, targetCurrency, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) ListCompanyQuotes(ctx context.Context, companyID string, includeExpired bool, limit int) ([]domain.Quote, error) {
	args := m.Called(ctx, companyID, includeExpired, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) CountQuoteStatistics(ctx context.Context, companyID string, since time.Time) (*domain.QuoteStatistics, error) {
	args := m.Called(ctx, companyID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteStatistics), args.Error(1)
}

func (m *MockQuoteRepository) SaveQuote(ctx context.Context, quote domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) MarkExpired(ctx context.Context, quoteID string) error {
	args := m.Called(ctx, quoteID)
	return args.Error(0)
}

func (m *MockQuoteRepository) ExpireQuotesBefore(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRate(ctx context.Context, sourceCurrency, targetCurrency string) (domain.RateInfo, error) {
	args := m.Called(ctx, sourceCurrency, targetCurrency)
	return args.Get(0).(domain.RateInfo), args.Error(1)
}

func (m *MockRateProvider) SupportedCurrencies() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// --- Mock AuditRecorder ---
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, actorID *string, entityType, entityID, action string, oldValues, newValues map[string]any) {
	m.Called(ctx, actorID, entityType, entityID, action, oldValues, newValues)
}

// --- Test Suite ---
type QuoteServiceTestSuite struct {
	suite.Suite
	mockQuoteRepo *MockQuoteRepository
	mockProvider  *MockRateProvider
	mockAudit     *MockAuditRecorder
	service       *services.QuoteService
}

func (suite *QuoteServiceTestSuite) SetupTest() {
	suite.mockQuoteRepo = new(MockQuoteRepository)
	suite.mockProvider = new(MockRateProvider)
	suite.mockAudit = new(MockAuditRecorder)
	suite.service = services.NewQuoteService(
		suite.mockQuoteRepo,
		suite.mockProvider,
		suite.mockAudit,
		decimal.RequireFromString("0.005"),
		120*time.Second,
	)
}

// --- Test Cases ---

func (suite *QuoteServiceTestSuite) TestGetRate_Success() {
	ctx := context.Background()
	expected := domain.RateInfo{
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		Rate:           decimal.RequireFromString("1.1650"),
		Provider:       "mock",
	}

	suite.mockProvider.On("FetchRate", ctx, "GBP", "EUR").Return(expected, nil).Once()

	rate, err := suite.service.GetRate(ctx, "gbp", " eur ")

	suite.Require().NoError(err)
	suite.Equal("GBP", rate.SourceCurrency)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("1.1650")))
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestGetRate_SameCurrencyIdentity() {
	ctx := context.Background()

	rate, err := suite.service.GetRate(ctx, "EUR", "EUR")

	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("1.0000")))
	suite.Equal("identity", rate.Provider)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRate")
}

func (suite *QuoteServiceTestSuite) TestGetRate_InvalidCode() {
	ctx := context.Background()

	_, err := suite.service.GetRate(ctx, "EU", "USD")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRate")
}

func (suite *QuoteServiceTestSuite) TestGetRate_ProviderError() {
	ctx := context.Background()

	suite.mockProvider.On("FetchRate", ctx, "GBP", "XAU").
		Return(domain.RateInfo{}, apperrors.ErrUnsupportedCurrency).Once()

	_, err := suite.service.GetRate(ctx, "GBP", "XAU")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnsupportedCurrency)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestRequestQuote_AppliesMarkupAndRounding() {
	ctx := context.Background()
	companyID := uuid.NewString()
	requestorID := uuid.NewString()
	req := dto.RequestQuoteRequest{
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		Amount:         decimal.RequireFromString("10000"),
	}

	suite.mockProvider.On("FetchRate", ctx, "GBP", "EUR").Return(domain.RateInfo{
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		Rate:           decimal.RequireFromString("1.1650"),
		Provider:       "mock",
	}, nil).Once()
	suite.mockQuoteRepo.On("SaveQuote", ctx, mock.AnythingOfType("domain.Quote")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, &requestorID, "quote", mock.AnythingOfType("string"), "requested", mock.Anything, mock.Anything).Once()

	quote, err := suite.service.RequestQuote(ctx, companyID, req, requestorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(quote)
	// 1.1650 * 1.005 = 1.170825, banker's rounding to 4dp gives 1.1708
	suite.True(quote.FinalRate.Equal(decimal.RequireFromString("1.1708")), "final rate was %s", quote.FinalRate)
	suite.True(quote.TargetAmount.Equal(decimal.RequireFromString("11708.00")), "target amount was %s", quote.TargetAmount)
	suite.True(quote.BaseRate.Equal(decimal.RequireFromString("1.1650")))
	suite.Equal(companyID, quote.CompanyID)
	suite.Equal(requestorID, quote.CreatedBy)
	suite.Equal(int64(1), quote.Version)
	suite.False(quote.IsExpired)
	suite.WithinDuration(time.Now().Add(120*time.Second), quote.ExpiresAt, 5*time.Second)

	suite.mockQuoteRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestRequestQuote_CustomValidity() {
	ctx := context.Background()
	requestorID := uuid.NewString()
	req := dto.RequestQuoteRequest{
		SourceCurrency:  "GBP",
		TargetCurrency:  "USD",
		Amount:          decimal.RequireFromString("250.50"),
		ValiditySeconds: 600,
	}

	suite.mockProvider.On("FetchRate", ctx, "GBP", "USD").Return(domain.RateInfo{
		SourceCurrency: "GBP",
		TargetCurrency: "USD",
		Rate:           decimal.RequireFromString("1.2720"),
		Provider:       "mock",
	}, nil).Once()
	suite.mockQuoteRepo.On("SaveQuote", ctx, mock.AnythingOfType("domain.Quote")).Return(nil).Once()
	suite.mockAudit.On("Record", ctx, &requestorID, "quote", mock.AnythingOfType("string"), "requested", mock.Anything, mock.Anything).Once()

	quote, err := suite.service.RequestQuote(ctx, uuid.NewString(), req, requestorID)

	suite.Require().NoError(err)
	suite.WithinDuration(time.Now().Add(600*time.Second), quote.ExpiresAt, 5*time.Second)
}

func (suite *QuoteServiceTestSuite) TestRequestQuote_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RequestQuoteRequest{
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		Amount:         decimal.Zero,
	}

	quote, err := suite.service.RequestQuote(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(quote)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRate")
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "SaveQuote")
}

func (suite *QuoteServiceTestSuite) TestRequestQuote_SaveFails() {
	ctx := context.Background()
	req := dto.RequestQuoteRequest{
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		Amount:         decimal.RequireFromString("100"),
	}

	suite.mockProvider.On("FetchRate", ctx, "GBP", "EUR").Return(domain.RateInfo{
		SourceCurrency: "GBP",
		TargetCurrency: "EUR",
		Rate:           decimal.RequireFromString("1.1650"),
	}, nil).Once()
	suite.mockQuoteRepo.On("SaveQuote", ctx, mock.AnythingOfType("domain.Quote")).
		Return(apperrors.NewAppError(500, "insert failed", nil)).Once()

	quote, err := suite.service.RequestQuote(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(quote)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record")
}

func (suite *QuoteServiceTestSuite) TestValidateQuote_StillValid() {
	ctx := context.Background()
	now := time.Now()
	quote := &domain.Quote{QuoteID: uuid.NewString(), ExpiresAt: now.Add(30 * time.Second)}

	suite.True(suite.service.ValidateQuote(ctx, quote, now))
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "MarkExpired")
}

func (suite *QuoteServiceTestSuite) TestValidateQuote_ExactExpiryIsInvalid() {
	ctx := context.Background()
	now := time.Now()
	quote := &domain.Quote{QuoteID: uuid.NewString(), ExpiresAt: now}

	suite.mockQuoteRepo.On("MarkExpired", ctx, quote.QuoteID).Return(nil).Once()

	suite.False(suite.service.ValidateQuote(ctx, quote, now))
	suite.True(quote.IsExpired)
	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestValidateQuote_FlagFlipFailureTolerated() {
	ctx := context.Background()
	now := time.Now()
	quote := &domain.Quote{QuoteID: uuid.NewString(), ExpiresAt: now.Add(-time.Minute)}

	suite.mockQuoteRepo.On("MarkExpired", ctx, quote.QuoteID).
		Return(apperrors.NewAppError(500, "update failed", nil)).Once()

	suite.False(suite.service.ValidateQuote(ctx, quote, now))
	suite.True(quote.IsExpired)
}

func (suite *QuoteServiceTestSuite) TestValidateQuote_PersistedFlagWins() {
	ctx := context.Background()
	now := time.Now()
	// Flag already set: no repository call, even though the clock says valid.
	quote := &domain.Quote{QuoteID: uuid.NewString(), ExpiresAt: now.Add(time.Hour), IsExpired: true}

	suite.False(suite.service.ValidateQuote(ctx, quote, now))
	suite.mockQuoteRepo.AssertNotCalled(suite.T(), "MarkExpired")
}

func (suite *QuoteServiceTestSuite) TestTimeRemaining() {
	now := time.Now()
	quote := &domain.Quote{ExpiresAt: now.Add(45 * time.Second)}

	suite.Equal(45*time.Second, suite.service.TimeRemaining(quote, now))
	suite.Equal(time.Duration(0), suite.service.TimeRemaining(quote, now.Add(45*time.Second)))
	suite.Equal(time.Duration(0), suite.service.TimeRemaining(nil, now))
}

func (suite *QuoteServiceTestSuite) TestGetActiveQuotes_NilBecomesEmpty() {
	ctx := context.Background()
	companyID := uuid.NewString()

	suite.mockQuoteRepo.On("ListActiveQuotes", ctx, companyID, (*string)(nil), (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(nil, nil).Once()

	quotes, err := suite.service.GetActiveQuotes(ctx, companyID, nil, nil)

	suite.Require().NoError(err)
	suite.NotNil(quotes)
	suite.Empty(quotes)
}

func (suite *QuoteServiceTestSuite) TestGetQuoteStatistics_DefaultWindow() {
	ctx := context.Background()
	companyID := uuid.NewString()
	expected := &domain.QuoteStatistics{TotalQuotes: 12, ExpiredQuotes: 4, ActiveQuotes: 8, CurrencyPairs: []string{"GBP/EUR"}}

	suite.mockQuoteRepo.On("CountQuoteStatistics", ctx, companyID, mock.MatchedBy(func(since time.Time) bool {
		return time.Since(since) > 29*24*time.Hour && time.Since(since) < 31*24*time.Hour
	})).Return(expected, nil).Once()

	stats, err := suite.service.GetQuoteStatistics(ctx, companyID, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, stats)
	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func (suite *QuoteServiceTestSuite) TestSweepExpired() {
	ctx := context.Background()
	now := time.Now()

	suite.mockQuoteRepo.On("ExpireQuotesBefore", ctx, now).Return(int64(3), nil).Once()

	count, err := suite.service.SweepExpired(ctx, now)

	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
	suite.mockQuoteRepo.AssertExpectations(suite.T())
}

func TestNewQuoteService(t *testing.T) {
	service := services.NewQuoteService(
		new(MockQuoteRepository),
		new(MockRateProvider),
		new(MockAuditRecorder),
		decimal.RequireFromString("0.005"),
		time.Minute,
	)
	assert.NotNil(t, service)
	var _ portssvc.QuoteSvcFacade = service
}

// --- Run Suite ---
func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceTestSuite))
}
