package handlers_test

import (
	"net/http"
	"testing"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	handlerSuite
	mockTransactionService *MockTransactionService
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.setupRouter()
	s.mockTransactionService = new(MockTransactionService)
	handlers.RegisterTransactionRoutes(s.v1, s.mockTransactionService)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	s.mockTransactionService.AssertExpectations(s.T())
}

func validCreateBody() gin.H {
	return gin.H{
		"description": "Venda balcão",
		"amount":      "89.90",
		"type":        "INCOME",
		"category":    "OTHER",
		"status":      "PAID",
		"dueDate":     "2024-03-15",
		"tender":      "PIX",
	}
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction() {
	created := &domain.FinancialTransaction{ID: "t-1", Status: domain.StatusPaid}
	s.mockTransactionService.On("CreateTransaction", mock.Anything,
		mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
			return r.Amount.Equal(decimal.RequireFromString("89.90")) && r.Tender == domain.TenderPix && r.DueDate == "2024-03-15"
		}), "user-1").Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/transactions", validCreateBody(), "")

	s.Equal(http.StatusCreated, w.Code)
}

func (s *TransactionHandlerTestSuite) TestCreateTransactionBindingErrors() {
	tests := []struct {
		name   string
		mutate func(gin.H)
	}{
		{"zero amount", func(b gin.H) { b["amount"] = "0" }},
		{"bad date", func(b gin.H) { b["dueDate"] = "15/03/2024" }},
		{"unknown category", func(b gin.H) { b["category"] = "LOTTERY" }},
		{"unknown tender", func(b gin.H) { b["tender"] = "CHEQUE" }},
		{"missing description", func(b gin.H) { delete(b, "description") }},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := validCreateBody()
			tt.mutate(body)

			w := s.do(http.MethodPost, "/api/v1/transactions", body, "")

			s.Equal(http.StatusBadRequest, w.Code)
		})
	}
	s.mockTransactionService.AssertNotCalled(s.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (s *TransactionHandlerTestSuite) TestListTransactionsPassesFilters() {
	query := dto.ListTransactionsQuery{DueFrom: "2024-03-01", DueTo: "2024-03-31", Status: "PENDING"}
	s.mockTransactionService.On("ListTransactions", mock.Anything, query).Return([]domain.FinancialTransaction{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions?dueFrom=2024-03-01&dueTo=2024-03-31&status=PENDING", nil, "")

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"transactions":[]}`, w.Body.String())
}

func (s *TransactionHandlerTestSuite) TestUpdatePaidTransactionConflicts() {
	s.mockTransactionService.On("UpdateTransaction", mock.Anything, "t-1", mock.Anything, "user-1").
		Return(nil, apperrors.NewConflictError("paid transactions cannot be changed")).Once()

	w := s.do(http.MethodPut, "/api/v1/transactions/t-1", gin.H{"description": "x"}, "")

	s.Equal(http.StatusConflict, w.Code)
}

func (s *TransactionHandlerTestSuite) TestDeleteTransaction() {
	s.mockTransactionService.On("DeleteTransaction", mock.Anything, "t-1").Return(nil).Once()
	s.mockTransactionService.On("DeleteTransaction", mock.Anything, "t-2").Return(apperrors.NewNotFoundError("transaction not found")).Once()

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/v1/transactions/t-1", nil, "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/v1/transactions/t-2", nil, "").Code)
}

func (s *TransactionHandlerTestSuite) TestSettleTwiceConflicts() {
	paid := &domain.FinancialTransaction{ID: "t-1", Status: domain.StatusPaid}
	s.mockTransactionService.On("SettleTransaction", mock.Anything, "t-1", "user-1").Return(paid, nil).Once()
	s.mockTransactionService.On("SettleTransaction", mock.Anything, "t-1", "user-1").
		Return(nil, apperrors.NewInvalidTransitionError("transaction is already paid")).Once()

	s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/transactions/t-1/settle", nil, "").Code)
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/api/v1/transactions/t-1/settle", nil, "").Code)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
