// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"strings"
)

// Select is a plain SELECT statement as understood by the resolver. Dialects
// convert the AST of their SQL parser into a Select.
type Select struct {
	// From lists the tables of the FROM clause in declaration order. Joined
	// tables are listed as if they had been separated by commas.
	From []TableRef

	// Items are the projection items in the order they were written.
	Items []SelectItem
}

func (s *Select) String() string {
	var b strings.Builder
	b.WriteString("Select[From[")
	for i, t := range s.From {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(t.String())
	}
	b.WriteString("] Items[")
	for i, item := range s.Items {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(item.String())
	}
	b.WriteString("]]")
	return b.String()
}

// TableRef is a table named in the FROM clause.
type TableRef struct {
	// Name is the declared name split into its parts, e.g. ["shop", "orders"]
	// for shop.orders.
	Name []string

	// Alias is empty when the table is not aliased.
	Alias string
}

func (t TableRef) String() string {
	name := strings.Join(t.Name, ".")
	if t.Alias == "" {
		return name
	}
	return name + " AS " + t.Alias
}

// SelectItem is one element of the projection list.
type SelectItem struct {
	Expr Expr

	// Alias is the output name given with AS, empty if there is none.
	Alias string
}

func (item SelectItem) String() string {
	if item.Alias == "" {
		return item.Expr.String()
	}
	return item.Expr.String() + " AS " + item.Alias
}

// Expr is the closed set of projection expressions: *ColumnRef, *Wildcard
// and *Unsupported.
type Expr interface {
	// String returns a string representation of the expression for
	// debugging and testing purposes.
	String() string

	// expr is a marker method.
	expr()
}

// ColumnRef is a bare or qualified column name such as id, u.id or
// shop.users.id.
type ColumnRef struct {
	Parts []string
}

func (e *ColumnRef) String() string {
	return "Column[" + strings.Join(e.Parts, ".") + "]"
}

// Marker function for Expr.
func (e *ColumnRef) expr() {}

// Wildcard is * or table.*.
type Wildcard struct {
	// Table is empty for a bare asterisk.
	Table string
}

func (e *Wildcard) String() string {
	if e.Table == "" {
		return "Wildcard[*]"
	}
	return "Wildcard[" + e.Table + ".*]"
}

// Marker function for Expr.
func (e *Wildcard) expr() {}

// Unsupported is any expression the resolver cannot bind to a column, such
// as function calls, literals or subqueries.
type Unsupported struct {
	// Kind describes the expression, e.g. "function call".
	Kind string

	// Raw is the SQL text of the expression.
	Raw string
}

func (e *Unsupported) String() string {
	return "Unsupported[" + e.Kind + " " + e.Raw + "]"
}

// Marker function for Expr.
func (e *Unsupported) expr() {}
