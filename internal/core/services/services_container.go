package services

import (
	"github.com/SscSPs/pdv_backoffice/internal/core/ports"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/platform/config"
	"github.com/SscSPs/pdv_backoffice/internal/platform/metrics"
)

// Infrastructure groups the optional collaborators built by the entry point.
// Nil fields fall back to no-op implementations.
type Infrastructure struct {
	Locker      ports.TerminalLocker
	Cache       ports.SnapshotCache
	Publisher   ports.EventPublisher
	Attachments ports.AttachmentStore
	Metrics     *metrics.Metrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, infra Infrastructure, extra ...Option) *portssvc.ServiceContainer {
	options := []Option{
		WithLocation(cfg.BusinessLocation),
		WithPollInterval(cfg.ShiftPollInterval),
		WithProjectionDays(cfg.ProjectionDays),
		WithTerminalLocker(infra.Locker),
		WithSnapshotCache(infra.Cache),
		WithEventPublisher(infra.Publisher),
		WithMetrics(infra.Metrics),
	}
	options = append(options, extra...)

	return &portssvc.ServiceContainer{
		Transaction:   NewTransactionService(repos.TransactionRepo, options...),
		Shift:         NewShiftService(repos.TransactionRepo, repos.CashAuditRepo, repos.ShiftSessionRepo, options...),
		Audit:         NewAuditService(repos.CashAuditRepo, options...),
		Reporting:     NewReportingService(repos.TransactionRepo, repos.PaymentMethodRepo, options...),
		PaymentMethod: NewPaymentMethodService(repos.PaymentMethodRepo, options...),
		RecurringBill: NewRecurringBillService(repos.RecurringBillRepo, repos.TransactionRepo, options...),
		Attachment:    NewAttachmentService(infra.Attachments, options...),
	}
}
