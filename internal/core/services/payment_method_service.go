package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

type paymentMethodService struct {
	BaseService
	methodRepo portsrepo.PaymentMethodRepositoryFacade
}

// NewPaymentMethodService creates a new PaymentMethodService.
func NewPaymentMethodService(methodRepo portsrepo.PaymentMethodRepositoryFacade, options ...Option) portssvc.PaymentMethodSvcFacade {
	return &paymentMethodService{
		BaseService: newBaseService(options),
		methodRepo:  methodRepo,
	}
}

var _ portssvc.PaymentMethodSvcFacade = (*paymentMethodService)(nil)

var maxFeePercentage = decimal.NewFromInt(100)

func validatePaymentMethod(m domain.PaymentMethod) error {
	if m.Name == "" {
		return apperrors.NewValidationFailedError("name is required")
	}
	if m.FeePercentage.IsNegative() || m.FeePercentage.GreaterThan(maxFeePercentage) {
		return apperrors.NewValidationFailedError("feePercentage must be between 0 and 100")
	}
	if m.SettlementDays < 0 {
		return apperrors.NewValidationFailedError("settlementDays must not be negative")
	}
	if !m.Tender.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid tender %q", m.Tender))
	}
	return nil
}

func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error) {
	now := s.Now()
	method := domain.PaymentMethod{
		Name:           strings.TrimSpace(req.Name),
		Tender:         req.Tender,
		FeePercentage:  req.FeePercentage,
		SettlementDays: req.SettlementDays,
		Active:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := validatePaymentMethod(method); err != nil {
		return nil, err
	}

	saved, err := s.methodRepo.SavePaymentMethod(ctx, method)
	if err != nil {
		s.LogError(ctx, err, "Failed to save payment method", slog.String("name", method.Name))
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}
	s.LogInfo(ctx, "Payment method created", slog.String("payment_method_id", saved.ID))
	return saved, nil
}

func (s *paymentMethodService) GetPaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	method, err := s.methodRepo.FindPaymentMethodByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method %s: %w", id, err)
	}
	return method, nil
}

func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error) {
	methods, err := s.methodRepo.ListPaymentMethods(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment methods")
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	if methods == nil {
		return []domain.PaymentMethod{}, nil
	}
	return methods, nil
}

func (s *paymentMethodService) UpdatePaymentMethod(ctx context.Context, id string, req dto.UpdatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error) {
	method, err := s.methodRepo.FindPaymentMethodByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method %s: %w", id, err)
	}

	if req.Name != nil {
		method.Name = strings.TrimSpace(*req.Name)
	}
	if req.Tender != nil {
		method.Tender = *req.Tender
	}
	if req.FeePercentage != nil {
		method.FeePercentage = *req.FeePercentage
	}
	if req.SettlementDays != nil {
		method.SettlementDays = *req.SettlementDays
	}
	if req.Active != nil {
		method.Active = *req.Active
	}
	if err := validatePaymentMethod(*method); err != nil {
		return nil, err
	}
	method.LastUpdatedAt = s.Now()
	method.LastUpdatedBy = userID

	if err := s.methodRepo.UpdatePaymentMethod(ctx, *method); err != nil {
		s.LogError(ctx, err, "Failed to update payment method", slog.String("payment_method_id", id))
		return nil, fmt.Errorf("failed to update payment method %s: %w", id, err)
	}
	return method, nil
}

func (s *paymentMethodService) DeletePaymentMethod(ctx context.Context, id string) error {
	if err := s.methodRepo.DeletePaymentMethod(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment method %s: %w", id, err)
	}
	s.LogInfo(ctx, "Payment method deleted", slog.String("payment_method_id", id))
	return nil
}
