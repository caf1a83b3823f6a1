package services_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock FinancialTransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, id string) (*domain.FinancialTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.FinancialTransaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txs []domain.FinancialTransaction) ([]domain.FinancialTransaction, error) {
	args := m.Called(ctx, txs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialTransaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdatePendingTransaction(ctx context.Context, tx domain.FinancialTransaction) (bool, error) {
	args := m.Called(ctx, tx)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) SettleTransaction(ctx context.Context, id string, paidAt time.Time, userID string) (bool, error) {
	args := m.Called(ctx, id, paidAt, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) DeletePendingTransaction(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Mock CashAuditRepository ---
type MockCashAuditRepository struct {
	mock.Mock
}

func (m *MockCashAuditRepository) FindCashAuditByID(ctx context.Context, id string) (*domain.CashAudit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAudit), args.Error(1)
}

func (m *MockCashAuditRepository) FindCashAuditByTerminalDate(ctx context.Context, terminalID string, date time.Time) (*domain.CashAudit, error) {
	args := m.Called(ctx, terminalID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAudit), args.Error(1)
}

func (m *MockCashAuditRepository) ListCashAudits(ctx context.Context, filter domain.CashAuditFilter) ([]domain.CashAudit, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAudit), args.Error(1)
}

func (m *MockCashAuditRepository) SaveCashAudit(ctx context.Context, audit domain.CashAudit) (*domain.CashAudit, error) {
	args := m.Called(ctx, audit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAudit), args.Error(1)
}

func (m *MockCashAuditRepository) ReviewCashAudit(ctx context.Context, id string, review domain.CashAuditReview) (bool, error) {
	args := m.Called(ctx, id, review)
	return args.Bool(0), args.Error(1)
}

func (m *MockCashAuditRepository) RecountCashAudit(ctx context.Context, id string, figures domain.CashAuditFigures) (bool, error) {
	args := m.Called(ctx, id, figures)
	return args.Bool(0), args.Error(1)
}

// --- Mock ShiftSessionRepository ---
type MockShiftSessionRepository struct {
	mock.Mock
}

func (m *MockShiftSessionRepository) FindLiveShiftSession(ctx context.Context, terminalID string) (*domain.ShiftSession, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}

func (m *MockShiftSessionRepository) FindLatestClosedShiftSession(ctx context.Context, terminalID string) (*domain.ShiftSession, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}

func (m *MockShiftSessionRepository) SaveShiftSession(ctx context.Context, session domain.ShiftSession) (*domain.ShiftSession, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftSession), args.Error(1)
}

func (m *MockShiftSessionRepository) TransitionShiftSession(ctx context.Context, session domain.ShiftSession, from domain.ShiftStep) (bool, error) {
	args := m.Called(ctx, session, from)
	return args.Bool(0), args.Error(1)
}

// --- Mock PaymentMethodRepository ---
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) DeletePaymentMethod(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock RecurringBillRepository ---
type MockRecurringBillRepository struct {
	mock.Mock
}

func (m *MockRecurringBillRepository) FindRecurringBillByID(ctx context.Context, id string) (*domain.RecurringBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringBill), args.Error(1)
}

func (m *MockRecurringBillRepository) ListRecurringBills(ctx context.Context, activeOnly bool) ([]domain.RecurringBill, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringBill), args.Error(1)
}

func (m *MockRecurringBillRepository) SaveRecurringBill(ctx context.Context, bill domain.RecurringBill) (*domain.RecurringBill, error) {
	args := m.Called(ctx, bill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurringBill), args.Error(1)
}

func (m *MockRecurringBillRepository) UpdateRecurringBill(ctx context.Context, bill domain.RecurringBill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockRecurringBillRepository) DeleteRecurringBill(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock collaborators ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) Put(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, name, contentType, body)
	return args.String(0), args.Error(1)
}

// fixedClock pins the business date in tests.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
