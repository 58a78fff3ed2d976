// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import (
	"fmt"
	"go/token"

	"github.com/canonical/sqlgen/internal/naming"
)

// Field describes one field of the generated result value.
type Field struct {
	// Table is the declared name of the source table.
	Table string
	// Column is the source column name.
	Column string
	// Alias is the output name given in the query, if any.
	Alias string

	// Target is the name of the field in the result type.
	Target string
	// Schema is the symbol holding the schema of Table.
	Schema string
	// ColumnIdent is the member of Schema describing Column.
	ColumnIdent string
}

func (f Field) String() string {
	return fmt.Sprintf("Field[%s.%s -> %s %s.%s]", f.Table, f.Column, f.Target, f.Schema, f.ColumnIdent)
}

// assemble converts provenance records into Fields, keeping their order.
func assemble(provs []provenance) []Field {
	fields := make([]Field, 0, len(provs))
	for _, p := range provs {
		output := p.column
		if p.alias != "" {
			output = p.alias
		}
		fields = append(fields, Field{
			Table:       p.table,
			Column:      p.column,
			Alias:       p.alias,
			Target:      naming.Snake(output),
			Schema:      naming.SchemaIdent(p.table),
			ColumnIdent: naming.ScreamingSnake(p.column),
		})
	}
	return fields
}

// validate checks that the generated code for the plan can compile as far as
// naming goes: every identifier is a Go identifier and target fields are
// unique.
func validate(plan []Field) error {
	seen := make(map[string]bool, len(plan))
	for _, f := range plan {
		for _, ident := range []string{f.Target, f.Schema, f.ColumnIdent} {
			if !IsIdentifier(ident) {
				return fmt.Errorf("%w %q derived from %s.%s", ErrInvalidIdentifier, ident, f.Table, f.Column)
			}
		}
		if seen[f.Target] {
			return fmt.Errorf("%w %q", ErrDuplicateField, f.Target)
		}
		seen[f.Target] = true
	}
	return nil
}

// IsIdentifier reports whether s can name a Go variable or field.
func IsIdentifier(s string) bool {
	return s != "_" && token.IsIdentifier(s)
}
