package repositories

import "context"

// Collection names understood by every Store implementation.
const (
	CollectionFinancialTransactions = "financial_transactions"
	CollectionCashAudits            = "cash_audits"
	CollectionPaymentMethods        = "payment_methods"
	CollectionRecurringBills        = "recurring_bills"
	CollectionShiftSessions         = "shift_sessions"
)

// Record is one row of a collection keyed by column name. Values are nil,
// string, bool, int64, decimal.Decimal or time.Time.
type Record map[string]any

// Operator is a comparison used in a filter condition.
type Operator string

const (
	OpEq  Operator = "="
	OpNeq Operator = "<>"
	OpGt  Operator = ">"
	OpGte Operator = ">="
	OpLt  Operator = "<"
	OpLte Operator = "<="
)

// Condition compares one field against a value. A nil Value with OpEq or
// OpNeq tests for absence or presence.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Filter is a conjunction of conditions. An empty filter matches everything.
type Filter []Condition

func Eq(field string, value any) Condition { return Condition{Field: field, Op: OpEq, Value: value} }
func Neq(field string, value any) Condition { return Condition{Field: field, Op: OpNeq, Value: value} }
func Gt(field string, value any) Condition { return Condition{Field: field, Op: OpGt, Value: value} }
func Gte(field string, value any) Condition { return Condition{Field: field, Op: OpGte, Value: value} }
func Lt(field string, value any) Condition { return Condition{Field: field, Op: OpLt, Value: value} }
func Lte(field string, value any) Condition { return Condition{Field: field, Op: OpLte, Value: value} }

// Order sorts a selection by one field.
type Order struct {
	Field string
	Desc  bool
}

// Query describes a selection.
type Query struct {
	Filter Filter
	Order  []Order
	Limit  int // 0 means unlimited
}

// Store is the generic persistence collaborator: create, read, update and
// delete over named collections.
type Store interface {
	// Insert persists records and returns them as stored, including
	// store-assigned ids. A unique-key violation returns apperrors.ErrDuplicate
	// and inserts nothing.
	Insert(ctx context.Context, collection string, records []Record) ([]Record, error)

	// Select returns the records matching q.
	Select(ctx context.Context, collection string, q Query) ([]Record, error)

	// Update applies patch to every record matching filter and reports how
	// many records changed. Callers use the count for compare-and-set
	// transitions.
	Update(ctx context.Context, collection string, patch Record, filter Filter) (int64, error)

	// Delete removes every record matching filter and reports how many went away.
	Delete(ctx context.Context, collection string, filter Filter) (int64, error)
}
