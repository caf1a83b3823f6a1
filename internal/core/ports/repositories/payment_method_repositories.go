package repositories

import (
	"context"

	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
)

// PaymentMethodReader defines read operations for payment methods
type PaymentMethodReader interface {
	FindPaymentMethodByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, activeOnly bool) ([]domain.PaymentMethod, error)
}

// PaymentMethodWriter defines write operations for payment methods
type PaymentMethodWriter interface {
	SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) (*domain.PaymentMethod, error)
	// UpdatePaymentMethod returns apperrors.ErrNotFound when the id is unknown.
	UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, id string) error
}

// PaymentMethodRepositoryFacade combines all payment method repository interfaces
type PaymentMethodRepositoryFacade interface {
	PaymentMethodReader
	PaymentMethodWriter
}
