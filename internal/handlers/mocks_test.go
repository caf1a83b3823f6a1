package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, id string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, query dto.ListTransactionsQuery) ([]domain.FinancialTransaction, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialTransaction), args.Error(1)
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, id string, req dto.UpdateTransactionRequest, userID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, id, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockTransactionService) SettleTransaction(ctx context.Context, id string, userID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ShiftService ---
type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) GetCurrentShift(ctx context.Context, terminalID string) (*domain.ShiftView, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftView), args.Error(1)
}
func (m *MockShiftService) PollTransactions(ctx context.Context, terminalID string) (*domain.ShiftSnapshot, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSnapshot), args.Error(1)
}
func (m *MockShiftService) PollInterval() time.Duration {
	return m.Called().Get(0).(time.Duration)
}
func (m *MockShiftService) CloseReport(ctx context.Context, terminalID string) (*domain.ShiftReport, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftReport), args.Error(1)
}
func (m *MockShiftService) ShiftHistory(ctx context.Context, terminalID string, limit int) ([]domain.CashAudit, error) {
	args := m.Called(ctx, terminalID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAudit), args.Error(1)
}
func (m *MockShiftService) OpenShift(ctx context.Context, terminalID string, req dto.OpenShiftRequest, operator string) (*domain.ShiftSession, error) {
	args := m.Called(ctx, terminalID, req, operator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}
func (m *MockShiftService) AddSupply(ctx context.Context, terminalID string, req dto.TillMovementRequest, userID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, terminalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}
func (m *MockShiftService) AddWithdrawal(ctx context.Context, terminalID string, req dto.TillMovementRequest, userID string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, terminalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}
func (m *MockShiftService) ConfirmCount(ctx context.Context, terminalID string, req dto.ConfirmCountRequest, userID string) (*domain.ShiftSession, error) {
	args := m.Called(ctx, terminalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}
func (m *MockShiftService) ReopenCount(ctx context.Context, terminalID string, userID string) (*domain.ShiftSession, error) {
	args := m.Called(ctx, terminalID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}
func (m *MockShiftService) CommitClose(ctx context.Context, terminalID string, req dto.CommitCloseRequest, userID string) (*domain.CashAudit, error) {
	args := m.Called(ctx, terminalID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAudit), args.Error(1)
}

var _ portssvc.ShiftSvcFacade = (*MockShiftService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) GetAudit(ctx context.Context, id string) (*domain.CashAudit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAudit), args.Error(1)
}
func (m *MockAuditService) ListAudits(ctx context.Context, query dto.ListCashAuditsQuery) ([]domain.CashAudit, *string, error) {
	args := m.Called(ctx, query)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.CashAudit), next, args.Error(2)
}
func (m *MockAuditService) ExportAudits(ctx context.Context, query dto.ListCashAuditsQuery, w io.Writer) error {
	return m.Called(ctx, query, w).Error(0)
}
func (m *MockAuditService) ApproveAudit(ctx context.Context, id string, req dto.ApproveAuditRequest, reviewer string) (*domain.CashAudit, error) {
	args := m.Called(ctx, id, req, reviewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAudit), args.Error(1)
}
func (m *MockAuditService) ContestAudit(ctx context.Context, id string, req dto.ContestAuditRequest, reviewer string) (*domain.CashAudit, error) {
	args := m.Called(ctx, id, req, reviewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAudit), args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, month time.Time) (*domain.IncomeStatement, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatement), args.Error(1)
}
func (m *MockReportingService) CashProjection(ctx context.Context, from time.Time, days int) (*domain.CashProjection, error) {
	args := m.Called(ctx, from, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashProjection), args.Error(1)
}
func (m *MockReportingService) CardSettlementSchedule(ctx context.Context, from, to time.Time) (*domain.SettlementSchedule, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementSchedule), args.Error(1)
}
func (m *MockReportingService) ExportIncomeStatement(ctx context.Context, month time.Time, w io.Writer) error {
	return m.Called(ctx, month, w).Error(0)
}
func (m *MockReportingService) ExportCashProjection(ctx context.Context, from time.Time, days int, w io.Writer) error {
	return m.Called(ctx, from, days, w).Error(0)
}
func (m *MockReportingService) Today() time.Time {
	return m.Called().Get(0).(time.Time)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock RecurringBillService ---
type MockRecurringBillService struct {
	mock.Mock
}

func (m *MockRecurringBillService) CreateRecurringBill(ctx context.Context, req dto.CreateRecurringBillRequest, userID string) (*domain.RecurringBill, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringBill), args.Error(1)
}
func (m *MockRecurringBillService) GetRecurringBill(ctx context.Context, id string) (*domain.RecurringBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringBill), args.Error(1)
}
func (m *MockRecurringBillService) ListRecurringBills(ctx context.Context, activeOnly bool) ([]domain.RecurringBill, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringBill), args.Error(1)
}
func (m *MockRecurringBillService) UpdateRecurringBill(ctx context.Context, id string, req dto.UpdateRecurringBillRequest, userID string) (*domain.RecurringBill, error) {
	args := m.Called(ctx, id, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringBill), args.Error(1)
}
func (m *MockRecurringBillService) DeleteRecurringBill(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockRecurringBillService) GenerateMonthBills(ctx context.Context, month time.Time, userID string) ([]domain.FinancialTransaction, error) {
	args := m.Called(ctx, month, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialTransaction), args.Error(1)
}

var _ portssvc.RecurringBillSvcFacade = (*MockRecurringBillService)(nil)

// --- Mock AttachmentService ---
type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) Upload(ctx context.Context, kind, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, kind, filename, contentType, body)
	return args.String(0), args.Error(1)
}

var _ portssvc.AttachmentSvc = (*MockAttachmentService)(nil)

// --- Mock PaymentMethodService ---
type MockPaymentMethodService struct {
	mock.Mock
}

func (m *MockPaymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}
func (m *MockPaymentMethodService) GetPaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}
func (m *MockPaymentMethodService) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}
func (m *MockPaymentMethodService) UpdatePaymentMethod(ctx context.Context, id string, req dto.UpdatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, id, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}
func (m *MockPaymentMethodService) DeletePaymentMethod(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ portssvc.PaymentMethodSvcFacade = (*MockPaymentMethodService)(nil)
