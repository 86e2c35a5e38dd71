package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fintrack/fintrack_backend/internal/apperrors"
	"github.com/fintrack/fintrack_backend/internal/core/domain"
	portssvc "github.com/fintrack/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack/fintrack_backend/internal/dto"
	"github.com/fintrack/fintrack_backend/internal/handlers"
	"github.com/fintrack/fintrack_backend/internal/money"
	"github.com/fintrack/fintrack_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateOperation(ctx context.Context, req dto.CreateOperationRequest) (*domain.Operation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}

func (m *MockLedgerService) UpdateOperation(ctx context.Context, operationID string, req dto.UpdateOperationRequest) (*domain.Operation, error) {
	args := m.Called(ctx, operationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}

func (m *MockLedgerService) DeleteOperation(ctx context.Context, operationID string) error {
	args := m.Called(ctx, operationID)
	return args.Error(0)
}

func (m *MockLedgerService) GetOperationByID(ctx context.Context, operationID string) (*domain.Operation, error) {
	args := m.Called(ctx, operationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operation), args.Error(1)
}

func (m *MockLedgerService) ListOperationsByAccount(ctx context.Context, accountID string, params dto.ListOperationsParams) (*dto.ListOperationsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListOperationsResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type OperationHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *OperationHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fintrack-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *OperationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Ledger: suite.mockLedgerService,
		Rates:  money.DefaultRates(),
	})
}

func (suite *OperationHandlerTestSuite) authedRequest(method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *OperationHandlerTestSuite) TestCreateOperation_Success() {
	op := &domain.Operation{
		OperationID: uuid.NewString(),
		Type:        domain.Expense,
		Amount:      decimal.RequireFromString("100.50"),
		AccountID:   "acc-1",
		Date:        time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
	}
	suite.mockLedgerService.On("CreateOperation", mock.Anything, mock.AnythingOfType("dto.CreateOperationRequest")).
		Return(op, nil).Once()

	body := []byte(`{"type":"expense","amount":"100.50","accountId":"acc-1","date":"2024-06-05T00:00:00Z"}`)
	w := suite.authedRequest(http.MethodPost, "/api/v1/operations", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.OperationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(op.OperationID, resp.OperationID)
	suite.Equal("100.5", resp.Amount)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *OperationHandlerTestSuite) TestCreateOperation_ObjectShapedAccountRef() {
	var captured dto.CreateOperationRequest
	suite.mockLedgerService.On("CreateOperation", mock.Anything, mock.AnythingOfType("dto.CreateOperationRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(dto.CreateOperationRequest)
		}).
		Return(&domain.Operation{OperationID: uuid.NewString()}, nil).Once()

	body := []byte(`{"type":"income","amount":"10","accountId":{"id":"acc-7"},"date":"2024-06-05T00:00:00Z"}`)
	w := suite.authedRequest(http.MethodPost, "/api/v1/operations", body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("acc-7", captured.AccountID.String())
}

func (suite *OperationHandlerTestSuite) TestCreateOperation_UnknownTypeRejected() {
	body := []byte(`{"type":"withdrawal","amount":"10","accountId":"acc-1","date":"2024-06-05T00:00:00Z"}`)
	w := suite.authedRequest(http.MethodPost, "/api/v1/operations", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "CreateOperation", mock.Anything, mock.Anything)
}

func (suite *OperationHandlerTestSuite) TestGetOperation_NotFound() {
	operationID := uuid.NewString()
	suite.mockLedgerService.On("GetOperationByID", mock.Anything, operationID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/operations/"+operationID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *OperationHandlerTestSuite) TestDeleteOperation_NoContent() {
	operationID := uuid.NewString()
	suite.mockLedgerService.On("DeleteOperation", mock.Anything, operationID).Return(nil).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/operations/"+operationID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *OperationHandlerTestSuite) TestListOperations_RequiresAccountID() {
	w := suite.authedRequest(http.MethodGet, "/api/v1/operations", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *OperationHandlerTestSuite) TestUnauthenticatedRequestRejected() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/operations?accountId=acc-1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestOperationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(OperationHandlerTestSuite))
}
