package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/core/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/collections"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/memory"
	"github.com/stretchr/testify/suite"
)

var (
	errSessionWrite = errors.New("session write lost")
	retryDay        = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	retryNow        = retryDay.Add(22 * time.Hour)
)

// closeFailingStore fails the first attempt to mark a shift session CLOSED,
// leaving the audit of that close already stored.
type closeFailingStore struct {
	portsrepo.Store
	failed bool
}

func (s *closeFailingStore) Update(ctx context.Context, collection string, patch portsrepo.Record, filter portsrepo.Filter) (int64, error) {
	if collection == portsrepo.CollectionShiftSessions && patch["step"] == string(domain.ShiftClosed) && !s.failed {
		s.failed = true
		return 0, errSessionWrite
	}
	return s.Store.Update(ctx, collection, patch, filter)
}

// ShiftCloseRetryTestSuite runs the close saga against the in-memory store.
type ShiftCloseRetryTestSuite struct {
	suite.Suite
	ctx     context.Context
	repos   portsrepo.RepositoryProvider
	service portssvc.ShiftSvcFacade
}

func (suite *ShiftCloseRetryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repos = collections.NewRepositoryProvider(&closeFailingStore{Store: memory.NewStore()})
	suite.service = services.NewShiftService(suite.repos.TransactionRepo, suite.repos.CashAuditRepo, suite.repos.ShiftSessionRepo,
		services.WithClock(fixedClock(retryNow)),
	)
}

func TestShiftCloseRetryTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftCloseRetryTestSuite))
}

// failFirstClose opens with 100, counts 100 and attempts a close that
// stores the audit but leaves the session CLOSING.
func (suite *ShiftCloseRetryTestSuite) failFirstClose() {
	_, err := suite.service.OpenShift(suite.ctx, terminal, dto.OpenShiftRequest{OpeningBalance: decPtr("100")}, "Ana")
	suite.Require().NoError(err)
	_, err = suite.service.ConfirmCount(suite.ctx, terminal, dto.ConfirmCountRequest{CountedCash: decPtr("100")}, "op-1")
	suite.Require().NoError(err)

	_, err = suite.service.CommitClose(suite.ctx, terminal, dto.CommitCloseRequest{Reserve: decPtr("50")}, "op-1")
	suite.Require().ErrorIs(err, errSessionWrite)
}

func (suite *ShiftCloseRetryTestSuite) TestReopenRejectedOnceAuditIsRecorded() {
	suite.failFirstClose()

	_, err := suite.service.ReopenCount(suite.ctx, terminal, "op-1")
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)

	_, err = suite.service.AddWithdrawal(suite.ctx, terminal, dto.TillMovementRequest{Amount: dec("40")}, "op-1")
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)

	audit, err := suite.service.CommitClose(suite.ctx, terminal, dto.CommitCloseRequest{Reserve: decPtr("50")}, "op-1")
	suite.Require().NoError(err)
	suite.True(audit.CountedCash.Equal(dec("100")))
	suite.True(audit.DifferenceValue.Equal(audit.CountedCash.Sub(audit.ExpectedCash)))

	current, err := suite.service.GetCurrentShift(suite.ctx, terminal)
	suite.Require().NoError(err)
	suite.True(current.ClosedToday)
}

func (suite *ShiftCloseRetryTestSuite) TestRetryRecountsPendingAuditWhenTillMoved() {
	suite.failFirstClose()

	// A cash sale lands on the day between the two attempts.
	_, err := suite.repos.TransactionRepo.SaveTransactions(suite.ctx, []domain.FinancialTransaction{{
		Description: "PDV venda",
		Amount:      dec("30"),
		Type:        domain.Income,
		Category:    domain.CategoryOther,
		Status:      domain.StatusPaid,
		Purpose:     domain.PurposeSale,
		Tender:      domain.TenderCash,
		DueDate:     retryDay,
		AuditFields: domain.AuditFields{CreatedAt: retryNow},
	}})
	suite.Require().NoError(err)

	audit, err := suite.service.CommitClose(suite.ctx, terminal, dto.CommitCloseRequest{Reserve: decPtr("50")}, "op-1")
	suite.Require().NoError(err)
	suite.True(audit.ExpectedCash.Equal(dec("130")))
	suite.True(audit.DifferenceValue.Equal(dec("-30")))

	stored, err := suite.repos.CashAuditRepo.FindCashAuditByID(suite.ctx, audit.ID)
	suite.Require().NoError(err)
	suite.True(stored.ExpectedCash.Equal(dec("130")))
	suite.True(stored.DifferenceValue.Equal(stored.CountedCash.Sub(stored.ExpectedCash)))
}

func (suite *ShiftCloseRetryTestSuite) TestRetryRejectedWhenReviewedAuditDisagrees() {
	suite.failFirstClose()

	first, err := suite.repos.CashAuditRepo.FindCashAuditByTerminalDate(suite.ctx, terminal, retryDay)
	suite.Require().NoError(err)
	ok, err := suite.repos.CashAuditRepo.ReviewCashAudit(suite.ctx, first.ID, domain.CashAuditReview{
		Status:     domain.AuditApproved,
		ReviewedBy: "gerente",
		ReviewedAt: retryNow,
	})
	suite.Require().NoError(err)
	suite.Require().True(ok)

	_, err = suite.repos.TransactionRepo.SaveTransactions(suite.ctx, []domain.FinancialTransaction{{
		Description: "PDV venda",
		Amount:      dec("30"),
		Type:        domain.Income,
		Category:    domain.CategoryOther,
		Status:      domain.StatusPaid,
		Purpose:     domain.PurposeSale,
		Tender:      domain.TenderCash,
		DueDate:     retryDay,
		AuditFields: domain.AuditFields{CreatedAt: retryNow},
	}})
	suite.Require().NoError(err)

	_, err = suite.service.CommitClose(suite.ctx, terminal, dto.CommitCloseRequest{Reserve: decPtr("50")}, "op-1")
	suite.ErrorIs(err, apperrors.ErrConflict)

	stored, err := suite.repos.CashAuditRepo.FindCashAuditByID(suite.ctx, first.ID)
	suite.Require().NoError(err)
	suite.True(stored.ExpectedCash.Equal(dec("100")))
}
