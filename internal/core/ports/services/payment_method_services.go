package services

import (
	"context"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
)

// PaymentMethodSvcFacade manages payment method settings
type PaymentMethodSvcFacade interface {
	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id string, req dto.UpdatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error
}
