// Package memory is an in-process Store used by tests and by deployments that
// run with STORE_DRIVER=memory. Data does not survive a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/pdv_backoffice/internal/repositories/schema"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store keeps every collection as a slice of records guarded by one mutex.
type Store struct {
	mu   sync.RWMutex
	data map[string][]portsrepo.Record
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[string][]portsrepo.Record)}
}

var _ portsrepo.Store = (*Store)(nil)

func clone(r portsrepo.Record) portsrepo.Record {
	out := make(portsrepo.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// normalize coerces integer kinds to int64 so comparisons agree with values
// read back from PostgreSQL.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case *string:
		if n == nil {
			return nil
		}
		return *n
	case *decimal.Decimal:
		if n == nil {
			return nil
		}
		return *n
	case *time.Time:
		if n == nil {
			return nil
		}
		return *n
	}
	return v
}

func (s *Store) Insert(ctx context.Context, collection string, records []portsrepo.Record) ([]portsrepo.Record, error) {
	coll, err := schema.Lookup(collection)
	if err != nil {
		return nil, err
	}

	prepared := make([]portsrepo.Record, 0, len(records))
	for _, rec := range records {
		if err := coll.CheckFields(rec); err != nil {
			return nil, err
		}
		row := make(portsrepo.Record, len(coll.Columns))
		for _, col := range coll.Columns {
			row[col.Name] = normalize(rec[col.Name])
		}
		if id, _ := row[schema.IDColumn].(string); id == "" {
			row[schema.IDColumn] = uuid.NewString()
		}
		prepared = append(prepared, row)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.data[collection]
	for i, row := range prepared {
		others := make([]portsrepo.Record, 0, len(existing)+i)
		others = append(others, existing...)
		others = append(others, prepared[:i]...)
		for _, other := range others {
			if row[schema.IDColumn] == other[schema.IDColumn] {
				return nil, fmt.Errorf("%w: %s id %v", apperrors.ErrDuplicate, collection, row[schema.IDColumn])
			}
			for _, key := range coll.UniqueKeys {
				if sameKey(row, other, key) {
					return nil, fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, collection, strings.Join(key, ", "))
				}
			}
		}
	}

	out := make([]portsrepo.Record, 0, len(prepared))
	for _, row := range prepared {
		s.data[collection] = append(s.data[collection], row)
		out = append(out, clone(row))
	}
	return out, nil
}

func (s *Store) Select(ctx context.Context, collection string, q portsrepo.Query) ([]portsrepo.Record, error) {
	coll, err := schema.Lookup(collection)
	if err != nil {
		return nil, err
	}
	if err := coll.CheckQuery(q.Filter, q.Order); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]portsrepo.Record, 0)
	for _, row := range s.data[collection] {
		if matches(row, q.Filter) {
			out = append(out, clone(row))
		}
	}
	s.mu.RUnlock()

	if len(q.Order) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.Order {
				c := compareForOrder(out[i][o.Field], out[j][o.Field])
				if c == 0 {
					continue
				}
				if o.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, collection string, patch portsrepo.Record, filter portsrepo.Filter) (int64, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64
	for _, row := range s.data[collection] {
		if !matches(row, filter) {
			continue
		}
		for k, v := range patch {
			row[k] = normalize(v)
		}
		affected++
	}
	return affected, nil
}

func (s *Store) Delete(ctx context.Context, collection string, filter portsrepo.Filter) (int64, error) {
	coll, err := schema.Lookup(collection)
	if err != nil {
		return 0, err
	}
	if err := coll.CheckQuery(filter, nil); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.data[collection]
	kept := rows[:0]
	var affected int64
	for _, row := range rows {
		if matches(row, filter) {
			affected++
			continue
		}
		kept = append(kept, row)
	}
	s.data[collection] = kept
	return affected, nil
}

func sameKey(a, b portsrepo.Record, key []string) bool {
	for _, field := range key {
		c, ok := compare(a[field], b[field])
		if !ok || c != 0 {
			return false
		}
	}
	return true
}

func matches(row portsrepo.Record, filter portsrepo.Filter) bool {
	for _, cond := range filter {
		value := row[cond.Field]
		target := normalize(cond.Value)
		if target == nil {
			switch cond.Op {
			case portsrepo.OpEq:
				if value != nil {
					return false
				}
			case portsrepo.OpNeq:
				if value == nil {
					return false
				}
			default:
				return false
			}
			continue
		}
		c, ok := compare(value, target)
		if !ok {
			return false
		}
		var pass bool
		switch cond.Op {
		case portsrepo.OpEq:
			pass = c == 0
		case portsrepo.OpNeq:
			pass = c != 0
		case portsrepo.OpGt:
			pass = c > 0
		case portsrepo.OpGte:
			pass = c >= 0
		case portsrepo.OpLt:
			pass = c < 0
		case portsrepo.OpLte:
			pass = c <= 0
		}
		if !pass {
			return false
		}
	}
	return true
}

// compare orders two non-nil values of the same kind. ok is false when
// either side is nil or the kinds differ, mirroring SQL NULL semantics.
func compare(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case decimal.Decimal:
		y, ok := b.(decimal.Decimal)
		if !ok {
			return 0, false
		}
		return x.Cmp(y), true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case int64:
		y, ok := b.(int64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

// compareForOrder sorts nil after every value, as PostgreSQL does for ASC.
func compareForOrder(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c, _ := compare(a, b)
	return c
}
