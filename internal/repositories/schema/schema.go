// Package schema describes the collections the Store exposes: their columns,
// value kinds and unique keys. Both Store implementations use it to reject
// unknown fields and to agree on value types.
package schema

import (
	"fmt"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	portsrepo "github.com/SscSPs/pdv_backoffice/internal/core/ports/repositories"
)

// Kind is the value type of a column.
type Kind int

const (
	Text Kind = iota
	Decimal
	Date
	Timestamp
	Bool
	Int
)

// IDColumn is the store-assigned primary key of every collection.
const IDColumn = "id"

// Column is one field of a collection.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Collection is the shape of one named collection.
type Collection struct {
	Name       string
	Columns    []Column
	UniqueKeys [][]string
	index      map[string]Column
}

func newCollection(name string, uniqueKeys [][]string, columns ...Column) Collection {
	c := Collection{Name: name, Columns: columns, UniqueKeys: uniqueKeys, index: make(map[string]Column, len(columns))}
	for _, col := range columns {
		c.index[col.Name] = col
	}
	return c
}

func text(name string) Column { return Column{Name: name, Kind: Text} }
func nullText(name string) Column { return Column{Name: name, Kind: Text, Nullable: true} }
func money(name string) Column { return Column{Name: name, Kind: Decimal} }
func nullMoney(name string) Column { return Column{Name: name, Kind: Decimal, Nullable: true} }
func date(name string) Column { return Column{Name: name, Kind: Date} }
func stamp(name string) Column { return Column{Name: name, Kind: Timestamp} }
func nullStamp(name string) Column { return Column{Name: name, Kind: Timestamp, Nullable: true} }
func boolean(name string) Column { return Column{Name: name, Kind: Bool} }
func integer(name string) Column { return Column{Name: name, Kind: Int} }

func auditColumns() []Column {
	return []Column{stamp("created_at"), text("created_by"), stamp("last_updated_at"), text("last_updated_by")}
}

var collections = map[string]Collection{
	portsrepo.CollectionFinancialTransactions: newCollection(portsrepo.CollectionFinancialTransactions,
		[][]string{{"recurring_bill_id", "due_date"}},
		append([]Column{
			text(IDColumn), text("description"), money("amount"), text("type"), text("category"),
			text("status"), date("due_date"), nullText("supplier"), nullText("attachment_url"),
			text("purpose"), text("tender"), nullText("terminal_id"), nullText("recurring_bill_id"),
			nullStamp("paid_at"),
		}, auditColumns()...)...,
	),
	portsrepo.CollectionCashAudits: newCollection(portsrepo.CollectionCashAudits,
		[][]string{{"terminal_id", "date"}},
		text(IDColumn), text("terminal_id"), nullText("shift_session_id"), date("date"), text("status"),
		money("opening_balance"), money("expected_cash"), money("counted_cash"), money("difference_value"),
		text("audited_by"), text("notes"), nullText("deposit_proof_url"), nullText("reviewed_by"),
		nullStamp("reviewed_at"), stamp("created_at"),
	),
	portsrepo.CollectionPaymentMethods: newCollection(portsrepo.CollectionPaymentMethods, nil,
		append([]Column{
			text(IDColumn), text("name"), text("tender"), money("fee_percentage"),
			integer("settlement_days"), boolean("active"),
		}, auditColumns()...)...,
	),
	portsrepo.CollectionRecurringBills: newCollection(portsrepo.CollectionRecurringBills, nil,
		append([]Column{
			text(IDColumn), text("title"), money("amount"), integer("day_of_month"), text("category"),
			nullText("supplier"), boolean("active"),
		}, auditColumns()...)...,
	),
	portsrepo.CollectionShiftSessions: newCollection(portsrepo.CollectionShiftSessions,
		[][]string{{"terminal_id", "business_date"}},
		text(IDColumn), text("terminal_id"), date("business_date"), text("step"),
		money("opening_balance"), nullMoney("counted_cash"), nullMoney("next_opening_balance"),
		text("operator"), nullText("audit_id"), stamp("opened_at"), nullStamp("count_confirmed_at"),
		nullStamp("closed_at"),
	),
}

// Lookup returns the collection named name.
func Lookup(name string) (Collection, error) {
	c, ok := collections[name]
	if !ok {
		return Collection{}, fmt.Errorf("%w: unknown collection %q", apperrors.ErrValidation, name)
	}
	return c, nil
}

// Column returns the column named name.
func (c Collection) Column(name string) (Column, bool) {
	col, ok := c.index[name]
	return col, ok
}

// ColumnNames lists the columns in declaration order.
func (c Collection) ColumnNames() []string {
	names := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		names[i] = col.Name
	}
	return names
}

// CheckFields rejects any record key that is not a column.
func (c Collection) CheckFields(rec portsrepo.Record) error {
	for field := range rec {
		if _, ok := c.index[field]; !ok {
			return fmt.Errorf("%w: unknown field %q in %s", apperrors.ErrValidation, field, c.Name)
		}
	}
	return nil
}

// CheckQuery rejects filters or orderings over unknown fields.
func (c Collection) CheckQuery(filter portsrepo.Filter, order []portsrepo.Order) error {
	for _, cond := range filter {
		if _, ok := c.index[cond.Field]; !ok {
			return fmt.Errorf("%w: unknown filter field %q in %s", apperrors.ErrValidation, cond.Field, c.Name)
		}
		switch cond.Op {
		case portsrepo.OpEq, portsrepo.OpNeq, portsrepo.OpGt, portsrepo.OpGte, portsrepo.OpLt, portsrepo.OpLte:
		default:
			return fmt.Errorf("%w: unsupported operator %q", apperrors.ErrValidation, cond.Op)
		}
	}
	for _, o := range order {
		if _, ok := c.index[o.Field]; !ok {
			return fmt.Errorf("%w: unknown order field %q in %s", apperrors.ErrValidation, o.Field, c.Name)
		}
	}
	return nil
}
