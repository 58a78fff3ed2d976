// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"fmt"
)

// ColumnSource reports the columns of a table. The second result is false
// if the table is unknown to the source.
type ColumnSource interface {
	Columns(table string) ([]string, bool)
}

// provenance is the resolved origin of one projected column.
type provenance struct {
	// table is the declared name of the table.
	table string
	// column is the column name in that table.
	column string
	// alias is the output name if the item was aliased.
	alias string
}

// Bind resolves the tables and columns of sel and returns its binding plan.
// cols may be nil, in which case bare columns can only be used when a single
// table is in scope.
func Bind(sel *Select, cols ColumnSource) (plan []Field, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("cannot bind query: %w", err)
		}
	}()

	registry := newTableRegistry(sel.From)
	provs := make([]provenance, 0, len(sel.Items))
	for _, item := range sel.Items {
		p, err := registry.resolve(item, cols)
		if err != nil {
			return nil, err
		}
		provs = append(provs, p)
	}

	plan = assemble(provs)
	if err := validate(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// resolve finds the table of a projection item.
func (r *tableRegistry) resolve(item SelectItem, cols ColumnSource) (provenance, error) {
	switch e := item.Expr.(type) {
	case *ColumnRef:
		if len(e.Parts) == 0 {
			return provenance{}, fmt.Errorf("%w: empty column name", ErrUnsupportedExpression)
		}
		column := e.Parts[len(e.Parts)-1]
		if len(e.Parts) == 1 {
			table, err := r.owner(column, cols)
			if err != nil {
				return provenance{}, err
			}
			return provenance{table: table, column: column, alias: item.Alias}, nil
		}
		// The part before the column is the table; anything before that is
		// a schema, which table names do not keep either.
		qualifier := e.Parts[len(e.Parts)-2]
		table, ok := r.lookup(qualifier)
		if !ok {
			return provenance{}, fmt.Errorf("%w %q", ErrUnknownTable, qualifier)
		}
		return provenance{table: table, column: column, alias: item.Alias}, nil
	case *Wildcard:
		if e.Table == "" {
			return provenance{}, fmt.Errorf("%w: wildcard *", ErrUnsupportedExpression)
		}
		return provenance{}, fmt.Errorf("%w: wildcard %s.*", ErrUnsupportedExpression, e.Table)
	case *Unsupported:
		return provenance{}, fmt.Errorf("%w: %s %s", ErrUnsupportedExpression, e.Kind, e.Raw)
	}
	return provenance{}, fmt.Errorf("%w: %T", ErrUnsupportedExpression, item.Expr)
}

// owner returns the declared name of the table a bare column belongs to.
func (r *tableRegistry) owner(column string, cols ColumnSource) (string, error) {
	switch r.len() {
	case 0:
		return "", ErrNoTables
	case 1:
		return r.tables[r.keys[0]], nil
	}
	if cols == nil {
		return "", fmt.Errorf("%w %q: qualify it with one of %s", ErrAmbiguousColumn, column, r)
	}

	// A table the source does not know about may hold any column.
	var candidates []string
	for _, key := range r.keys {
		known, ok := cols.Columns(r.tables[key])
		if !ok || contains(known, column) {
			candidates = append(candidates, key)
		}
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w %q: not found in %s", ErrUnknownColumn, column, r)
	case 1:
		return r.tables[candidates[0]], nil
	}
	return "", fmt.Errorf("%w %q: found in more than one of %s", ErrAmbiguousColumn, column, r)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
