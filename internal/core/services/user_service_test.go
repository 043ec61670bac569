package services_test

import (
	"context"
	"testing"

	"github.com/flowpay/flow_backend/internal/apperrors"
	"github.com/flowpay/flow_backend/internal/core/domain"
	portssvc "github.com/flowpay/flow_backend/internal/core/ports/services"
	"github.com/flowpay/flow_backend/internal/core/services"
	"github.com/flowpay/flow_backend/internal/dto"
	"github.com/flowpay/flow_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  *services.UserService
	ctx      context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	req := dto.CreateUserRequest{
		CompanyID: "comp-1",
		Email:     "maker@acme.example",
		Name:      "Maker One",
		Role:      "MAKER",
		Password:  "s3cret-pass",
	}

	suite.mockRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID != "" &&
			u.CompanyID == "comp-1" &&
			u.Role == domain.RoleMaker &&
			u.IsActive &&
			u.Version == 1 &&
			utils.CheckPasswordHash("s3cret-pass", u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(suite.ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("admin-1", user.CreatedBy)
	suite.NotEqual("s3cret-pass", user.PasswordHash)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	req := dto.CreateUserRequest{
		CompanyID: "comp-1",
		Email:     "maker@acme.example",
		Name:      "Maker One",
		Role:      "MAKER",
		Password:  "s3cret-pass",
	}

	suite.mockRepo.On("SaveUser", suite.ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(suite.ctx, req, "admin-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	suite.mockRepo.On("FindUserByID", suite.ctx, "missing").
		Return(nil, apperrors.NewNotFoundError("user with ID missing not found")).Once()

	user, err := suite.service.GetUserByID(suite.ctx, "missing")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestCreateCompany_UppercasesCountry() {
	req := dto.CreateCompanyRequest{
		CompanyName:       "Acme GmbH",
		RegisteredCountry: "de",
		IndustrySector:    "Manufacturing",
		FXVolumeBand:      "1M-10M",
	}

	suite.mockRepo.On("SaveCompany", suite.ctx, mock.MatchedBy(func(c domain.Company) bool {
		return c.CompanyID != "" &&
			c.RegisteredCountry == "DE" &&
			c.Version == 1
	})).Return(nil).Once()

	company, err := suite.service.CreateCompany(suite.ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("Acme GmbH", company.CompanyName)
	suite.Equal("DE", company.RegisteredCountry)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetCompany_Success() {
	expected := &domain.Company{CompanyID: "comp-1", CompanyName: "Acme GmbH", RegisteredCountry: "DE"}
	suite.mockRepo.On("FindCompanyByID", suite.ctx, "comp-1").Return(expected, nil).Once()

	company, err := suite.service.GetCompany(suite.ctx, "comp-1")

	suite.Require().NoError(err)
	suite.Equal(expected, company)
}

func TestNewUserService(t *testing.T) {
	service := services.NewUserService(new(MockUserRepository))
	if service == nil {
		t.Fatal("NewUserService returned nil")
	}
	var _ portssvc.UserSvcFacade = service
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
