package pgsql

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxStore implements portsrepo.Store over PostgreSQL. Table and column
// names come from the schema package, never from callers, so they can be
// interpolated into SQL.
type PgxStore struct {
	BaseRepository
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.Store = (*PgxStore)(nil)

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func columnList(coll schema.Collection) string {
	names := coll.ColumnNames()
	for i, n := range names {
		names[i] = ident(n)
	}
	return strings.Join(names, ", ")
}

// buildWhere renders filter as a WHERE clause whose placeholders start at $next.
func buildWhere(filter portsrepo.Filter, next int) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(filter))
	args := make([]any, 0, len(filter))
	for _, cond := range filter {
		col := ident(cond.Field)
		if cond.Value == nil {
			if cond.Op == portsrepo.OpNeq {
				parts = append(parts, col+" IS NOT NULL")
			} else {
				parts = append(parts, col+" IS NULL")
			}
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s $%d", col, cond.Op, next))
		args = append(args, cond.Value)
		next++
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func buildOrder(order []portsrepo.Order) string {
	if len(order) == 0 {
		return ""
	}
	parts := make([]string, len(order))
	for i, o := range order {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts[i] = ident(o.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// buildInsert renders an INSERT for the non-empty fields of rec.
func buildInsert(coll schema.Collection, rec portsrepo.Record) (string, []any) {
	fields := make([]string, 0, len(rec))
	for field, v := range rec {
		if field == schema.IDColumn {
			if id, _ := v.(string); id == "" {
				continue
			}
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	cols := make([]string, len(fields))
	holders := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = ident(f)
		holders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = rec[f]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		ident(coll.Name), strings.Join(cols, ", "), strings.Join(holders, ", "), columnList(coll))
	return query, args
}

func buildSelect(coll schema.Collection, q portsrepo.Query) (string, []any) {
	where, args := buildWhere(q.Filter, 1)
	query := fmt.Sprintf("SELECT %s FROM %s%s%s", columnList(coll), ident(coll.Name), where, buildOrder(q.Order))
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	return query, args
}

func buildUpdate(coll schema.Collection, patch portsrepo.Record, filter portsrepo.Filter) (string, []any) {
	fields := make([]string, 0, len(patch))
	for f := range patch {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	sets := make([]string, len(fields))
	args := make([]any, 0, len(fields)+len(filter))
	for i, f := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", ident(f), i+1)
		args = append(args, patch[f])
	}
	where, whereArgs := buildWhere(filter, len(fields)+1)
	return fmt.Sprintf("UPDATE %s SET %s%s", ident(coll.Name), strings.Join(sets, ", "), where), append(args, whereArgs...)
}

func scanTargets(coll schema.Collection) []any {
	targets := make([]any, len(coll.Columns))
	for i, col := range coll.Columns {
		switch col.Kind {
		case schema.Text:
			if col.Nullable {
				targets[i] = new(*string)
			} else {
				targets[i] = new(string)
			}
		case schema.Decimal:
			targets[i] = new(decimal.NullDecimal)
		case schema.Date, schema.Timestamp:
			if col.Nullable {
				targets[i] = new(*time.Time)
			} else {
				targets[i] = new(time.Time)
			}
		case schema.Bool:
			targets[i] = new(bool)
		case schema.Int:
			targets[i] = new(int64)
		}
	}
	return targets
}

func toRecord(coll schema.Collection, targets []any) portsrepo.Record {
	rec := make(portsrepo.Record, len(coll.Columns))
	for i, col := range coll.Columns {
		var v any
		switch t := targets[i].(type) {
		case *string:
			v = *t
		case **string:
			if *t != nil {
				v = **t
			}
		case *decimal.NullDecimal:
			if t.Valid {
				v = t.Decimal
			}
		case *time.Time:
			v = *t
		case **time.Time:
			if *t != nil {
				v = **t
			}
		case *bool:
			v = *t
		case *int64:
			v = *t
		}
		rec[col.Name] = v
	}
	return rec
}

func scanRecord(coll schema.Collection, row pgx.Row) (portsrepo.Record, error) {
	targets := scanTargets(coll)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return toRecord(coll, targets), nil
}

func (s *PgxStore) Insert(ctx context.Context, collection string, records []portsrepo.Record) ([]portsrepo.Record, error) {
	coll, err := schema.Lookup(collection)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := coll.CheckFields(rec); err != nil {
			return nil, err
		}
	}

	tx, err := s.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Rollback(ctx, tx) //nolint:errcheck

	out := make([]portsrepo.Record, 0, len(records))
	for _, rec := range records {
		query, args := buildInsert(coll, rec)
		stored, err := scanRecord(coll, tx.QueryRow(ctx, query, args...))
		if err != nil {
			return nil, mapError("insert into", collection, err)
		}
		out = append(out, stored)
	}

	if err := s.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PgxStore) Select(ctx context.Context, collection string, q portsrepo.Query) ([]portsrepo.Record, error) {
	coll, err := schema.Lookup(collection)
	if err != nil {
		return nil, err
	}
	if err := coll.CheckQuery(q.Filter, q.Order); err != nil {
		return nil, err
	}

	query, args := buildSelect(coll, q)
	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("select from", collection, err)
	}
	defer rows.Close()

	out := make([]portsrepo.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(coll, rows)
		if err != nil {
			return nil, mapError("scan", collection, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("iterate", collection, err)
	}
	return out, nil
}

func (s *PgxStore) Update(ctx context.Context, collection string, patch portsrepo.Record, filter portsrepo.Filter) (int64, error) {
	coll, err := schema.Lookup(collection)
	if err != nil {
		return 0, err
	}
	if err := coll.CheckFields(patch); err != nil {
		return 0, err
	}
	if err := coll.CheckQuery(filter, nil); err != nil {
		return 0, err
	}
	if len(patch) == 0 {
		return 0, nil
	}

	query, args := buildUpdate(coll, patch, filter)
	tag, err := s.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, mapError("update", collection, err)
	}
	return tag.RowsAffected(), nil
}

func (s *PgxStore) Delete(ctx context.Context, collection string, filter portsrepo.Filter) (int64, error) {
	coll, err := schema.Lookup(collection)
	if err != nil {
		return 0, err
	}
	if err := coll.CheckQuery(filter, nil); err != nil {
		return 0, err
	}

	where, args := buildWhere(filter, 1)
	tag, err := s.Pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s%s", ident(coll.Name), where), args...)
	if err != nil {
		return 0, mapError("delete from", collection, err)
	}
	return tag.RowsAffected(), nil
}
