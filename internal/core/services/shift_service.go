package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const defaultHistoryLimit = 30

// shiftService drives the per-terminal shift lifecycle.
type shiftService struct {
	BaseService
	txRepo      portsrepo.FinancialTransactionRepositoryFacade
	auditRepo   portsrepo.CashAuditRepositoryFacade
	sessionRepo portsrepo.ShiftSessionRepositoryFacade
}

// NewShiftService creates a new ShiftService.
func NewShiftService(
	txRepo portsrepo.FinancialTransactionRepositoryFacade,
	auditRepo portsrepo.CashAuditRepositoryFacade,
	sessionRepo portsrepo.ShiftSessionRepositoryFacade,
	options ...Option,
) portssvc.ShiftSvcFacade {
	return &shiftService{
		BaseService: newBaseService(options),
		txRepo:      txRepo,
		auditRepo:   auditRepo,
		sessionRepo: sessionRepo,
	}
}

var _ portssvc.ShiftSvcFacade = (*shiftService)(nil)

func snapshotKey(terminalID string) string {
	return "shift:snapshot:" + terminalID
}

func validateTerminal(terminalID string) error {
	if strings.TrimSpace(terminalID) == "" {
		return apperrors.NewValidationFailedError("terminal id is required")
	}
	return nil
}

func requireNonNegative(field string, v *decimal.Decimal) error {
	if v == nil {
		return apperrors.NewValidationFailedError(field + " is required")
	}
	if v.IsNegative() {
		return apperrors.NewValidationFailedError(field + " must not be negative")
	}
	return nil
}

func countedCash(session *domain.ShiftSession) decimal.Decimal {
	if session.CountedCash == nil {
		return decimal.Zero
	}
	return *session.CountedCash
}

// liveSession returns the terminal's live session when it is at one of steps.
func (s *shiftService) liveSession(ctx context.Context, terminalID string, steps ...domain.ShiftStep) (*domain.ShiftSession, error) {
	session, err := s.sessionRepo.FindLiveShiftSession(ctx, terminalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidTransitionError("terminal has no open shift")
		}
		return nil, fmt.Errorf("failed to load shift for terminal %s: %w", terminalID, err)
	}
	for _, step := range steps {
		if session.Step == step {
			return session, nil
		}
	}
	return nil, apperrors.NewInvalidTransitionError(fmt.Sprintf("shift is %s", session.Step))
}

// sessionTransactions returns the rows of the session's business date that
// belong to the terminal. Rows without a terminal count for every terminal.
func (s *shiftService) sessionTransactions(ctx context.Context, session *domain.ShiftSession) ([]domain.FinancialTransaction, error) {
	day := session.BusinessDate
	txs, err := s.txRepo.ListTransactions(ctx, domain.TransactionFilter{DueFrom: &day, DueTo: &day})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for terminal %s: %w", session.TerminalID, err)
	}
	out := make([]domain.FinancialTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx.TerminalID == nil || *tx.TerminalID == session.TerminalID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// seedOpeningBalance is the reserve left by the terminal's last close.
func (s *shiftService) seedOpeningBalance(ctx context.Context, terminalID string) (decimal.Decimal, error) {
	last, err := s.sessionRepo.FindLatestClosedShiftSession(ctx, terminalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to load last shift of terminal %s: %w", terminalID, err)
	}
	if last.NextOpeningBalance == nil {
		return decimal.Zero, nil
	}
	return *last.NextOpeningBalance, nil
}

func (s *shiftService) closedOn(ctx context.Context, terminalID string, day time.Time) (bool, error) {
	_, err := s.auditRepo.FindCashAuditByTerminalDate(ctx, terminalID, day)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check audits of terminal %s: %w", terminalID, err)
}

func (s *shiftService) invalidateSnapshot(ctx context.Context, terminalID string) {
	if err := s.cache.Delete(ctx, snapshotKey(terminalID)); err != nil {
		s.GetLogger(ctx).Warn("Failed to invalidate shift snapshot",
			slog.String("terminal_id", terminalID),
			slog.String("error", err.Error()))
	}
}

func (s *shiftService) transition(ctx context.Context, next domain.ShiftSession, from domain.ShiftStep) error {
	if !from.CanTransitionTo(next.Step) {
		return apperrors.NewInvalidTransitionError(fmt.Sprintf("cannot move shift from %s to %s", from, next.Step))
	}
	moved, err := s.sessionRepo.TransitionShiftSession(ctx, next, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to move shift session",
			slog.String("session_id", next.ID),
			slog.String("from", string(from)),
			slog.String("to", string(next.Step)))
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if !moved {
		return apperrors.NewInvalidTransitionError("shift was changed by another request")
	}
	s.invalidateSnapshot(ctx, next.TerminalID)
	return nil
}

func (s *shiftService) GetCurrentShift(ctx context.Context, terminalID string) (*domain.ShiftView, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}

	live, err := s.sessionRepo.FindLiveShiftSession(ctx, terminalID)
	switch {
	case err == nil:
		return &domain.ShiftView{
			TerminalID:         terminalID,
			Step:               live.Step,
			BusinessDate:       live.BusinessDate,
			Session:            live,
			SeedOpeningBalance: live.OpeningBalance,
		}, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to load shift for terminal %s: %w", terminalID, err)
	}

	today := s.Today()
	seed, err := s.seedOpeningBalance(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	closed, err := s.closedOn(ctx, terminalID, today)
	if err != nil {
		return nil, err
	}
	return &domain.ShiftView{
		TerminalID:         terminalID,
		Step:               domain.ShiftOpen,
		BusinessDate:       today,
		SeedOpeningBalance: seed,
		ClosedToday:        closed,
	}, nil
}

func (s *shiftService) OpenShift(ctx context.Context, terminalID string, req dto.OpenShiftRequest, operator string) (*domain.ShiftSession, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}
	if req.OpeningBalance != nil && req.OpeningBalance.IsNegative() {
		return nil, apperrors.NewValidationFailedError("openingBalance must not be negative")
	}

	var opened *domain.ShiftSession
	err := s.withTerminalLock(ctx, terminalID, func() error {
		if _, err := s.sessionRepo.FindLiveShiftSession(ctx, terminalID); err == nil {
			return apperrors.NewConflictError("terminal already has an open shift")
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to load shift for terminal %s: %w", terminalID, err)
		}

		today := s.Today()
		closed, err := s.closedOn(ctx, terminalID, today)
		if err != nil {
			return err
		}
		if closed {
			return apperrors.NewConflictError("terminal already closed a shift today")
		}

		opening := decimal.Zero
		if req.OpeningBalance != nil {
			opening = *req.OpeningBalance
		} else if opening, err = s.seedOpeningBalance(ctx, terminalID); err != nil {
			return err
		}

		session, err := s.sessionRepo.SaveShiftSession(ctx, domain.ShiftSession{
			TerminalID:     terminalID,
			BusinessDate:   today,
			Step:           domain.ShiftActive,
			OpeningBalance: opening,
			Operator:       operator,
			OpenedAt:       s.Now(),
		})
		if err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return apperrors.NewConflictError("terminal already opened a shift today")
			}
			s.LogError(ctx, err, "Failed to save shift session", slog.String("terminal_id", terminalID))
			return fmt.Errorf("failed to open shift: %w", err)
		}
		opened = session
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSnapshot(ctx, terminalID)
	s.publish(ctx, domain.EventShiftOpened, opened.ID, operator, map[string]any{
		"terminal_id":     terminalID,
		"opening_balance": opened.OpeningBalance.String(),
	})
	s.LogInfo(ctx, "Shift opened",
		slog.String("terminal_id", terminalID),
		slog.String("session_id", opened.ID),
		slog.String("opening_balance", opened.OpeningBalance.String()))
	return opened, nil
}

func (s *shiftService) AddSupply(ctx context.Context, terminalID string, req dto.TillMovementRequest, userID string) (*domain.FinancialTransaction, error) {
	return s.addTillMovement(ctx, terminalID, req, userID, domain.PurposeTillSupply)
}

func (s *shiftService) AddWithdrawal(ctx context.Context, terminalID string, req dto.TillMovementRequest, userID string) (*domain.FinancialTransaction, error) {
	return s.addTillMovement(ctx, terminalID, req, userID, domain.PurposeTillWithdrawal)
}

// addTillMovement records cash put into or taken out of the drawer. The
// description keeps the legacy tag so tag-based readers classify it too.
func (s *shiftService) addTillMovement(ctx context.Context, terminalID string, req dto.TillMovementRequest, userID string, purpose domain.TransactionPurpose) (*domain.FinancialTransaction, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}
	session, err := s.liveSession(ctx, terminalID, domain.ShiftActive)
	if err != nil {
		return nil, err
	}

	note := strings.TrimSpace(req.Description)
	txType, description := domain.Income, accounting.SupplyTag
	if purpose == domain.PurposeTillWithdrawal {
		txType, description = domain.Expense, accounting.WithdrawalTag
		if note == "" {
			note = "Sangria"
		}
	}
	if note != "" {
		if purpose == domain.PurposeTillSupply {
			description += ":"
		}
		description += " " + note
	}

	now := s.Now()
	terminal := terminalID
	tx := domain.FinancialTransaction{
		Description: description,
		Amount:      req.Amount,
		Type:        txType,
		Category:    domain.CategoryOther,
		Status:      domain.StatusPaid,
		DueDate:     session.BusinessDate,
		Purpose:     purpose,
		Tender:      domain.TenderCash,
		TerminalID:  &terminal,
		PaidAt:      &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.txRepo.SaveTransactions(ctx, []domain.FinancialTransaction{tx})
	if err != nil {
		s.LogError(ctx, err, "Failed to save till movement",
			slog.String("terminal_id", terminalID),
			slog.String("purpose", string(purpose)))
		return nil, fmt.Errorf("failed to record till movement: %w", err)
	}
	s.invalidateSnapshot(ctx, terminalID)
	s.LogInfo(ctx, "Till movement recorded",
		slog.String("terminal_id", terminalID),
		slog.String("purpose", string(purpose)),
		slog.String("amount", tx.Amount.String()))
	return &saved[0], nil
}

func (s *shiftService) PollTransactions(ctx context.Context, terminalID string) (*domain.ShiftSnapshot, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}

	var cached domain.ShiftSnapshot
	hit, err := s.cache.GetJSON(ctx, snapshotKey(terminalID), &cached)
	if err != nil {
		s.GetLogger(ctx).Warn("Failed to read shift snapshot", slog.String("terminal_id", terminalID), slog.String("error", err.Error()))
	} else if hit {
		return &cached, nil
	}

	session, err := s.liveSession(ctx, terminalID, domain.ShiftActive, domain.ShiftClosing)
	if err != nil {
		return nil, err
	}
	txs, err := s.sessionTransactions(ctx, session)
	if err != nil {
		return nil, err
	}
	snapshot := domain.ShiftSnapshot{
		TerminalID:   terminalID,
		BusinessDate: session.BusinessDate,
		Transactions: txs,
		Breakdown:    accounting.Reconcile(session.OpeningBalance, txs, countedCash(session)),
		FetchedAt:    s.Now().UTC(),
	}
	if err := s.cache.SetJSON(ctx, snapshotKey(terminalID), snapshot, s.pollInterval); err != nil {
		s.GetLogger(ctx).Warn("Failed to cache shift snapshot", slog.String("terminal_id", terminalID), slog.String("error", err.Error()))
	}
	return &snapshot, nil
}

func (s *shiftService) ConfirmCount(ctx context.Context, terminalID string, req dto.ConfirmCountRequest, userID string) (*domain.ShiftSession, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}
	if err := requireNonNegative("countedCash", req.CountedCash); err != nil {
		return nil, err
	}

	var next domain.ShiftSession
	err := s.withTerminalLock(ctx, terminalID, func() error {
		session, err := s.liveSession(ctx, terminalID, domain.ShiftActive)
		if err != nil {
			return err
		}
		now := s.Now()
		counted := *req.CountedCash
		next = *session
		next.Step = domain.ShiftClosing
		next.CountedCash = &counted
		next.CountConfirmedAt = &now
		return s.transition(ctx, next, domain.ShiftActive)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Cash count confirmed",
		slog.String("terminal_id", terminalID),
		slog.String("user_id", userID),
		slog.String("counted_cash", next.CountedCash.String()))
	return &next, nil
}

func (s *shiftService) ReopenCount(ctx context.Context, terminalID string, userID string) (*domain.ShiftSession, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}

	var next domain.ShiftSession
	err := s.withTerminalLock(ctx, terminalID, func() error {
		session, err := s.liveSession(ctx, terminalID, domain.ShiftClosing)
		if err != nil {
			return err
		}
		// A close attempt that stored the audit but not the session leaves
		// the count committed; only retrying the close can finish it.
		recorded, err := s.closedOn(ctx, terminalID, session.BusinessDate)
		if err != nil {
			return err
		}
		if recorded {
			return apperrors.NewInvalidTransitionError("cash audit already recorded for this shift, retry the close")
		}
		next = *session
		next.Step = domain.ShiftActive
		next.CountedCash = nil
		next.CountConfirmedAt = nil
		return s.transition(ctx, next, domain.ShiftClosing)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Cash count reopened", slog.String("terminal_id", terminalID), slog.String("user_id", userID))
	return &next, nil
}

func (s *shiftService) CloseReport(ctx context.Context, terminalID string) (*domain.ShiftReport, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}
	session, err := s.liveSession(ctx, terminalID, domain.ShiftClosing)
	if err != nil {
		return nil, err
	}
	txs, err := s.sessionTransactions(ctx, session)
	if err != nil {
		return nil, err
	}
	return &domain.ShiftReport{
		Session:      *session,
		Transactions: txs,
		Breakdown:    accounting.Reconcile(session.OpeningBalance, txs, countedCash(session)),
	}, nil
}

// CommitClose writes the audit first and closes the session second. Both
// steps tolerate having already happened, so a retry converges.
func (s *shiftService) CommitClose(ctx context.Context, terminalID string, req dto.CommitCloseRequest, userID string) (*domain.CashAudit, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}
	if err := requireNonNegative("reserve", req.Reserve); err != nil {
		return nil, err
	}

	var (
		audit     *domain.CashAudit
		breakdown domain.CashBreakdown
		replayed  bool
	)
	err := s.withTerminalLock(ctx, terminalID, func() error {
		session, err := s.sessionRepo.FindLiveShiftSession(ctx, terminalID)
		if errors.Is(err, apperrors.ErrNotFound) {
			audit, err = s.committedToday(ctx, terminalID)
			replayed = audit != nil
			return err
		}
		if err != nil {
			return fmt.Errorf("failed to load shift for terminal %s: %w", terminalID, err)
		}
		if session.Step != domain.ShiftClosing {
			return apperrors.NewInvalidTransitionError("cash count must be confirmed before closing")
		}
		if req.Reserve.GreaterThan(countedCash(session)) {
			return apperrors.NewValidationFailedError("reserve cannot exceed the counted cash")
		}

		txs, err := s.sessionTransactions(ctx, session)
		if err != nil {
			return err
		}
		breakdown = accounting.Reconcile(session.OpeningBalance, txs, countedCash(session))

		audit, err = s.recordAudit(ctx, session, breakdown, req.Notes, userID)
		if err != nil {
			return err
		}

		now := s.Now()
		reserve := *req.Reserve
		auditID := audit.ID
		next := *session
		next.Step = domain.ShiftClosed
		next.NextOpeningBalance = &reserve
		next.AuditID = &auditID
		next.ClosedAt = &now
		return s.transition(ctx, next, domain.ShiftClosing)
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return audit, nil
	}

	s.metrics.ShiftClosed(breakdown.Balanced, breakdown.Difference)
	s.publish(ctx, domain.EventShiftClosed, audit.ID, userID, map[string]any{
		"terminal_id": terminalID,
		"difference":  breakdown.Difference.String(),
		"balanced":    breakdown.Balanced,
	})
	s.LogInfo(ctx, "Shift closed",
		slog.String("terminal_id", terminalID),
		slog.String("audit_id", audit.ID),
		slog.String("difference", breakdown.Difference.String()),
		slog.Bool("balanced", breakdown.Balanced))
	return audit, nil
}

// recordAudit inserts the session's audit, or returns the one a previous
// attempt already inserted.
func (s *shiftService) recordAudit(ctx context.Context, session *domain.ShiftSession, b domain.CashBreakdown, notes, userID string) (*domain.CashAudit, error) {
	sessionID := session.ID
	saved, err := s.auditRepo.SaveCashAudit(ctx, domain.CashAudit{
		TerminalID:      session.TerminalID,
		ShiftSessionID:  &sessionID,
		Date:            session.BusinessDate,
		Status:          domain.AuditPending,
		OpeningBalance:  b.OpeningBalance,
		ExpectedCash:    b.ExpectedCash,
		CountedCash:     b.CountedCash,
		DifferenceValue: b.Difference,
		AuditedBy:       userID,
		Notes:           strings.TrimSpace(notes),
		CreatedAt:       s.Now(),
	})
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicate) {
		s.LogError(ctx, err, "Failed to save cash audit", slog.String("session_id", session.ID))
		return nil, fmt.Errorf("failed to record cash audit: %w", err)
	}

	existing, err := s.auditRepo.FindCashAuditByTerminalDate(ctx, session.TerminalID, session.BusinessDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing cash audit: %w", err)
	}
	if existing.ShiftSessionID != nil && *existing.ShiftSessionID != session.ID {
		return nil, apperrors.NewConflictError("terminal already has an audit for this date")
	}
	s.LogInfo(ctx, "Reusing cash audit from an earlier close attempt",
		slog.String("audit_id", existing.ID),
		slog.String("session_id", session.ID))

	figures := domain.CashAuditFigures{
		OpeningBalance:  b.OpeningBalance,
		ExpectedCash:    b.ExpectedCash,
		CountedCash:     b.CountedCash,
		DifferenceValue: b.Difference,
	}
	if existing.Figures().Equal(figures) {
		return existing, nil
	}
	// The day's transactions moved since the first attempt. A reviewed
	// audit is final, so only a PENDING one may follow the till.
	ok, err := s.auditRepo.RecountCashAudit(ctx, existing.ID, figures)
	if err != nil {
		return nil, fmt.Errorf("failed to update cash audit %s: %w", existing.ID, err)
	}
	if !ok {
		return nil, apperrors.NewConflictError("cash audit was already reviewed with different figures")
	}
	s.LogInfo(ctx, "Cash audit recounted",
		slog.String("audit_id", existing.ID),
		slog.String("expected_cash", figures.ExpectedCash.String()),
		slog.String("counted_cash", figures.CountedCash.String()))
	recounted := *existing
	recounted.OpeningBalance = figures.OpeningBalance
	recounted.ExpectedCash = figures.ExpectedCash
	recounted.CountedCash = figures.CountedCash
	recounted.DifferenceValue = figures.DifferenceValue
	return &recounted, nil
}

// committedToday returns the audit of a close that already completed today,
// so that repeating the last commit is answered instead of rejected.
func (s *shiftService) committedToday(ctx context.Context, terminalID string) (*domain.CashAudit, error) {
	last, err := s.sessionRepo.FindLatestClosedShiftSession(ctx, terminalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidTransitionError("terminal has no open shift")
		}
		return nil, fmt.Errorf("failed to load last shift of terminal %s: %w", terminalID, err)
	}
	if last.AuditID == nil || !last.BusinessDate.Equal(s.Today()) {
		return nil, apperrors.NewInvalidTransitionError("terminal has no open shift")
	}
	audit, err := s.auditRepo.FindCashAuditByID(ctx, *last.AuditID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash audit %s: %w", *last.AuditID, err)
	}
	return audit, nil
}

func (s *shiftService) ShiftHistory(ctx context.Context, terminalID string, limit int) ([]domain.CashAudit, error) {
	if err := validateTerminal(terminalID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	audits, err := s.auditRepo.ListCashAudits(ctx, domain.CashAuditFilter{TerminalID: terminalID, Limit: limit})
	if err != nil {
		s.LogError(ctx, err, "Failed to list shift history", slog.String("terminal_id", terminalID))
		return nil, fmt.Errorf("failed to list shift history: %w", err)
	}
	if audits == nil {
		return []domain.CashAudit{}, nil
	}
	return audits, nil
}

func (s *shiftService) PollInterval() time.Duration {
	return s.pollInterval
}
