// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlgen

import (
	"fmt"

	"github.com/canonical/sqlgen/internal/dialect"
	"github.com/canonical/sqlgen/internal/emit"
	"github.com/canonical/sqlgen/internal/expr"
)

// Dialect parses the SQL of one database flavour. Use [MySQL] or
// [LookupDialect].
type Dialect = dialect.Dialect

// MySQL is the MySQL dialect.
var MySQL Dialect = dialect.MySQL{}

// LookupDialect returns the dialect registered under name, e.g. "mysql".
func LookupDialect(name string) (Dialect, error) {
	return dialect.Lookup(name)
}

// Dialects returns the names of the dialects LookupDialect knows about.
func Dialects() []string {
	return dialect.Names()
}

// Field describes how one projected column fills one field of the result
// type.
type Field = expr.Field

// ColumnSource reports the columns of a table. [catalog.Catalog] implements
// it.
type ColumnSource = expr.ColumnSource

var (
	ErrSyntax                = expr.ErrSyntax
	ErrUnsupportedStatement  = expr.ErrUnsupportedStatement
	ErrUnsupportedExpression = expr.ErrUnsupportedExpression
	ErrNoTables              = expr.ErrNoTables
	ErrUnknownTable          = expr.ErrUnknownTable
	ErrAmbiguousColumn       = expr.ErrAmbiguousColumn
	ErrUnknownColumn         = expr.ErrUnknownColumn
	ErrInvalidIdentifier     = expr.ErrInvalidIdentifier
	ErrDuplicateField        = expr.ErrDuplicateField
)

// Option configures [Plan], [Generate] and [GenerateFile].
type Option func(*options)

type options struct {
	pos     Position
	columns ColumnSource
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCatalog resolves bare columns of queries reading from several tables
// against the columns listed in cols. Without a catalog such columns are
// reported as ambiguous.
func WithCatalog(cols ColumnSource) Option {
	return func(o *options) {
		o.columns = cols
	}
}

// WithPosition sets the position errors are reported at.
func WithPosition(pos Position) Option {
	return func(o *options) {
		o.pos = pos
	}
}

// Plan resolves query into the fields of its result, in projection order.
func Plan(d Dialect, query string, opts ...Option) ([]Field, error) {
	o := newOptions(opts)
	plan, err := bindQuery(d, query, o)
	if err != nil {
		return nil, &Error{Pos: o.pos, Err: err}
	}
	return plan, nil
}

func bindQuery(d Dialect, query string, o *options) ([]Field, error) {
	if d == nil {
		return nil, fmt.Errorf("cannot parse query: no dialect")
	}
	sel, err := d.Parse(query)
	if err != nil {
		return nil, err
	}
	return expr.Bind(sel, o.columns)
}

// Generate resolves query and returns a Go function literal that builds a
// value of type into from one result row:
//
//	func(row []any) (into, error)
//
// Each field of into is set by the Parse method of the column symbol of its
// table schema, e.g. UsersSchema.FULL_NAME.Parse(row[1]); the first failing
// Parse is returned. into may be qualified with a package name.
func Generate(d Dialect, query, into string, opts ...Option) (string, error) {
	o := newOptions(opts)
	plan, err := bindQuery(d, query, o)
	if err != nil {
		return "", &Error{Pos: o.pos, Err: err}
	}
	fragment, err := emit.Fragment(into, plan)
	if err != nil {
		return "", &Error{Pos: o.pos, Err: err}
	}
	return fragment, nil
}

// MustGenerate is the same as [Generate] except that it panics on error.
func MustGenerate(d Dialect, query, into string, opts ...Option) string {
	s, err := Generate(d, query, into, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Query is one query of a generated file.
type Query struct {
	// Name is the name of the generated function.
	Name string
	// Into is the result type, declared in the package of the file.
	Into string
	SQL  string
	// Pos is where the query was written. It overrides the position set
	// with WithPosition.
	Pos Position
}

// GenerateFile returns the source of a Go file of package pkg declaring one
// function per query:
//
//	func Name(row []any) (Into, error)
//
// Generation stops at the first query that fails.
func GenerateFile(d Dialect, pkg string, queries []Query, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	fns := make([]emit.Function, 0, len(queries))
	seen := make(map[string]bool, len(queries))
	for _, q := range queries {
		pos := o.pos
		if q.Pos.IsValid() {
			pos = q.Pos
		}
		if err := emit.CheckFunction(q.Name, q.Into); err != nil {
			return nil, &Error{Pos: pos, Err: fmt.Errorf("%s: cannot emit file: %w", q.Name, err)}
		}
		if seen[q.Name] {
			return nil, &Error{Pos: pos, Err: fmt.Errorf("%s: cannot emit file: %w", q.Name, emit.DuplicateFunction(q.Name))}
		}
		seen[q.Name] = true
		plan, err := bindQuery(d, q.SQL, o)
		if err != nil {
			return nil, &Error{Pos: pos, Err: fmt.Errorf("%s: %w", q.Name, err)}
		}
		fns = append(fns, emit.Function{Name: q.Name, Into: q.Into, Query: q.SQL, Plan: plan})
	}
	src, err := emit.File(pkg, fns)
	if err != nil {
		return nil, &Error{Pos: o.pos, Err: err}
	}
	return src, nil
}
