package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/schema"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func audits(t *testing.T) schema.Collection {
	t.Helper()
	coll, err := schema.Lookup(portsrepo.CollectionCashAudits)
	require.NoError(t, err)
	return coll
}

func TestBuildSelect(t *testing.T) {
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	query, args := buildSelect(audits(t), portsrepo.Query{
		Filter: portsrepo.Filter{
			portsrepo.Eq("terminal_id", "T1"),
			portsrepo.Lte("date", day),
			portsrepo.Eq("reviewed_at", nil),
			portsrepo.Neq("deposit_proof_url", nil),
		},
		Order: []portsrepo.Order{{Field: "date", Desc: true}, {Field: "id", Desc: true}},
		Limit: 20,
	})

	assert.Contains(t, query, `FROM "cash_audits" WHERE "terminal_id" = $1 AND "date" <= $2 AND "reviewed_at" IS NULL AND "deposit_proof_url" IS NOT NULL`)
	assert.Contains(t, query, `ORDER BY "date" DESC, "id" DESC LIMIT 20`)
	assert.Equal(t, []any{"T1", day}, args)
}

func TestBuildInsertSkipsEmptyID(t *testing.T) {
	query, args := buildInsert(audits(t), portsrepo.Record{
		"id":          "",
		"terminal_id": "T1",
		"notes":       "ok",
	})
	assert.Contains(t, query, `INSERT INTO "cash_audits" ("notes", "terminal_id") VALUES ($1, $2) RETURNING "id", "terminal_id"`)
	assert.Equal(t, []any{"ok", "T1"}, args)
}

func TestBuildUpdateNumbersWhereAfterSet(t *testing.T) {
	query, args := buildUpdate(audits(t),
		portsrepo.Record{"status": "APPROVED", "notes": "ok"},
		portsrepo.Filter{portsrepo.Eq("id", "a1"), portsrepo.Eq("status", "PENDING")},
	)
	assert.Equal(t, `UPDATE "cash_audits" SET "notes" = $1, "status" = $2 WHERE "id" = $3 AND "status" = $4`, query)
	assert.Equal(t, []any{"ok", "APPROVED", "a1", "PENDING"}, args)
}

func TestToRecordNormalisesNullables(t *testing.T) {
	coll, err := schema.Lookup(portsrepo.CollectionShiftSessions)
	require.NoError(t, err)

	targets := scanTargets(coll)
	for i, col := range coll.Columns {
		switch col.Name {
		case "id":
			*targets[i].(*string) = "s1"
		case "opening_balance":
			*targets[i].(*decimal.NullDecimal) = decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true}
		}
	}
	rec := toRecord(coll, targets)

	assert.Equal(t, "s1", rec["id"])
	assert.True(t, decimal.NewFromInt(100).Equal(rec["opening_balance"].(decimal.Decimal)))
	assert.Nil(t, rec["counted_cash"])
	assert.Nil(t, rec["audit_id"])
	assert.Nil(t, rec["closed_at"])
}

func TestMapError(t *testing.T) {
	err := mapError("insert into", "cash_audits", &pgconn.PgError{Code: "23505", ConstraintName: "cash_audits_terminal_date_key"})
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))

	err = mapError("insert into", "cash_audits", &pgconn.PgError{Code: "23514", ConstraintName: "cash_audits_status_check"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	err = mapError("select from", "cash_audits", errors.New("connection reset"))
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.Code)
}
