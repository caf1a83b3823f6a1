package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
}

func (suite *MemoryStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
}

func day(d int) time.Time {
	return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)
}

func (suite *MemoryStoreTestSuite) audit(terminal string, date time.Time, status string) portsrepo.Record {
	return portsrepo.Record{
		"terminal_id": terminal, "date": date, "status": status,
		"opening_balance": decimal.Zero, "expected_cash": decimal.Zero, "counted_cash": decimal.Zero,
		"difference_value": decimal.Zero, "audited_by": "ana", "notes": "", "created_at": date,
	}
}

func (suite *MemoryStoreTestSuite) TestInsertAssignsIDs() {
	out, err := suite.store.Insert(suite.ctx, portsrepo.CollectionCashAudits, []portsrepo.Record{
		suite.audit("T1", day(1), "PENDING"),
		suite.audit("T1", day(2), "PENDING"),
	})
	suite.Require().NoError(err)
	suite.Len(out, 2)
	suite.NotEmpty(out[0]["id"])
	suite.NotEqual(out[0]["id"], out[1]["id"])
	suite.Nil(out[0]["deposit_proof_url"])
}

func (suite *MemoryStoreTestSuite) TestInsertRejectsUniqueViolationAtomically() {
	_, err := suite.store.Insert(suite.ctx, portsrepo.CollectionCashAudits, []portsrepo.Record{suite.audit("T1", day(1), "PENDING")})
	suite.Require().NoError(err)

	_, err = suite.store.Insert(suite.ctx, portsrepo.CollectionCashAudits, []portsrepo.Record{
		suite.audit("T2", day(1), "PENDING"),
		suite.audit("T1", day(1), "PENDING"),
	})
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	all, err := suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{})
	suite.Require().NoError(err)
	suite.Len(all, 1, "failed batch must not leave partial rows")
}

func (suite *MemoryStoreTestSuite) TestUnknownCollectionAndField() {
	_, err := suite.store.Insert(suite.ctx, "inventory", []portsrepo.Record{{"x": 1}})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.store.Insert(suite.ctx, portsrepo.CollectionCashAudits, []portsrepo.Record{{"bogus": 1}})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{
		Filter: portsrepo.Filter{portsrepo.Eq("bogus", 1)},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MemoryStoreTestSuite) TestSelectFilterOrderLimit() {
	_, err := suite.store.Insert(suite.ctx, portsrepo.CollectionCashAudits, []portsrepo.Record{
		suite.audit("T1", day(1), "APPROVED"),
		suite.audit("T1", day(3), "PENDING"),
		suite.audit("T1", day(2), "PENDING"),
		suite.audit("T2", day(2), "PENDING"),
	})
	suite.Require().NoError(err)

	rows, err := suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{
		Filter: portsrepo.Filter{portsrepo.Eq("terminal_id", "T1"), portsrepo.Gte("date", day(2))},
		Order:  []portsrepo.Order{{Field: "date", Desc: true}},
	})
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal(day(3), rows[0]["date"])
	suite.Equal(day(2), rows[1]["date"])

	rows, err = suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{
		Filter: portsrepo.Filter{portsrepo.Neq("status", "APPROVED")},
		Order:  []portsrepo.Order{{Field: "date"}, {Field: "terminal_id", Desc: true}},
		Limit:  2,
	})
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)
	suite.Equal("T2", rows[0]["terminal_id"])
	suite.Equal("T1", rows[1]["terminal_id"])
}

func (suite *MemoryStoreTestSuite) TestNilFiltersFollowSQLSemantics() {
	proof := "gs://bucket/proof.pdf"
	withProof := suite.audit("T1", day(1), "APPROVED")
	withProof["deposit_proof_url"] = &proof
	_, err := suite.store.Insert(suite.ctx, portsrepo.CollectionCashAudits, []portsrepo.Record{
		withProof,
		suite.audit("T1", day(2), "PENDING"),
	})
	suite.Require().NoError(err)

	isNull, err := suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{
		Filter: portsrepo.Filter{portsrepo.Eq("deposit_proof_url", nil)},
	})
	suite.Require().NoError(err)
	suite.Len(isNull, 1)

	notEqual, err := suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{
		Filter: portsrepo.Filter{portsrepo.Neq("deposit_proof_url", "other")},
	})
	suite.Require().NoError(err)
	suite.Len(notEqual, 1, "NULL never compares unequal")
	suite.Equal(proof, notEqual[0]["deposit_proof_url"])
}

func (suite *MemoryStoreTestSuite) TestUpdateIsCompareAndSet() {
	out, err := suite.store.Insert(suite.ctx, portsrepo.CollectionCashAudits, []portsrepo.Record{suite.audit("T1", day(1), "PENDING")})
	suite.Require().NoError(err)
	id := out[0]["id"]

	filter := portsrepo.Filter{portsrepo.Eq("id", id), portsrepo.Eq("status", "PENDING")}
	n, err := suite.store.Update(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Record{"status": "APPROVED"}, filter)
	suite.Require().NoError(err)
	suite.EqualValues(1, n)

	n, err = suite.store.Update(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Record{"status": "CONTESTED"}, filter)
	suite.Require().NoError(err)
	suite.EqualValues(0, n)

	rows, err := suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{Filter: portsrepo.Filter{portsrepo.Eq("id", id)}})
	suite.Require().NoError(err)
	suite.Equal("APPROVED", rows[0]["status"])
}

func (suite *MemoryStoreTestSuite) TestSelectReturnsCopies() {
	_, err := suite.store.Insert(suite.ctx, portsrepo.CollectionCashAudits, []portsrepo.Record{suite.audit("T1", day(1), "PENDING")})
	suite.Require().NoError(err)

	rows, _ := suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{})
	rows[0]["status"] = "APPROVED"

	again, _ := suite.store.Select(suite.ctx, portsrepo.CollectionCashAudits, portsrepo.Query{})
	suite.Equal("PENDING", again[0]["status"])
}

func (suite *MemoryStoreTestSuite) TestDelete() {
	_, err := suite.store.Insert(suite.ctx, portsrepo.CollectionRecurringBills, []portsrepo.Record{
		{"title": "Aluguel", "amount": decimal.NewFromInt(2000), "day_of_month": 5, "category": "OTHER", "active": true},
		{"title": "Luz", "amount": decimal.NewFromInt(300), "day_of_month": 10, "category": "UTILITY", "active": false},
	})
	suite.Require().NoError(err)

	n, err := suite.store.Delete(suite.ctx, portsrepo.CollectionRecurringBills, portsrepo.Filter{portsrepo.Eq("active", false)})
	suite.Require().NoError(err)
	suite.EqualValues(1, n)

	rows, err := suite.store.Select(suite.ctx, portsrepo.CollectionRecurringBills, portsrepo.Query{
		Filter: portsrepo.Filter{portsrepo.Lt("day_of_month", 6)},
	})
	suite.Require().NoError(err)
	suite.Len(rows, 1)
	suite.Equal(int64(5), rows[0]["day_of_month"])
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func TestConcurrentInsertsRespectUniqueKey(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := store.Insert(ctx, portsrepo.CollectionShiftSessions, []portsrepo.Record{{
				"terminal_id": "T1", "business_date": day(19), "step": "ACTIVE",
				"opening_balance": decimal.Zero, "operator": "ana", "opened_at": day(19),
			}})
			errs <- err
		}()
	}
	var ok, dup int
	for i := 0; i < 8; i++ {
		err := <-errs
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, apperrors.ErrDuplicate)
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 7, dup)
}
