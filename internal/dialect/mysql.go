// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package dialect

import (
	"fmt"
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/canonical/sqlgen/internal/expr"
)

// MySQL parses queries with the MySQL grammar of github.com/xwb1989/sqlparser.
type MySQL struct{}

func (MySQL) Name() string {
	return "mysql"
}

// Parse implements Dialect.
func (MySQL) Parse(query string) (sel *expr.Select, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("cannot parse query: %w", err)
		}
	}()

	stmts := statements(query)
	switch {
	case len(stmts) == 0:
		return nil, fmt.Errorf("%w: empty query", expr.ErrSyntax)
	case len(stmts) > 1:
		return nil, fmt.Errorf("%w: only a single SELECT query is supported, found more than one statement", expr.ErrUnsupportedStatement)
	}
	stmt, err := sqlparser.ParseStrictDDL(stmts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", expr.ErrSyntax, err)
	}

	switch s := stmt.(type) {
	case *sqlparser.Select:
		return convertSelect(s), nil
	case *sqlparser.Union:
		return nil, fmt.Errorf("%w: set operations are not supported: %s", expr.ErrUnsupportedStatement, sqlparser.String(s))
	case *sqlparser.ParenSelect:
		return nil, fmt.Errorf("%w: parenthesized SELECT is not supported", expr.ErrUnsupportedStatement)
	}
	return nil, fmt.Errorf("%w: only a single SELECT query is supported, got %s", expr.ErrUnsupportedStatement, statementKind(stmt))
}

// statements splits query on semicolons. Statements holding nothing but
// blanks and comments are dropped.
func statements(query string) []string {
	var stmts []string
	start, empty := 0, true
	add := func(end int) {
		if !empty {
			stmts = append(stmts, query[start:end])
		}
	}
	tokenizer := sqlparser.NewStringTokenizer(query)
	for {
		typ, _ := tokenizer.Scan()
		switch typ {
		case sqlparser.COMMENT:
		case ';':
			// Position is two past the semicolon once it is scanned.
			end := min(tokenizer.Position-2, len(query))
			add(end)
			start, empty = end+1, true
		case 0:
			add(len(query))
			return stmts
		case sqlparser.LEX_ERROR:
			// Leave the rest to the parser to report.
			empty = false
			add(len(query))
			return stmts
		default:
			empty = false
		}
	}
}

func convertSelect(s *sqlparser.Select) *expr.Select {
	sel := &expr.Select{From: convertTableExprs(s.From, nil)}
	for _, se := range s.SelectExprs {
		sel.Items = append(sel.Items, convertSelectExpr(se))
	}
	return sel
}

// convertTableExprs appends the plain tables found in exprs to refs. Both
// sides of a join are kept and the join condition is ignored. Derived tables
// and the MySQL dual table are skipped.
func convertTableExprs(exprs sqlparser.TableExprs, refs []expr.TableRef) []expr.TableRef {
	for _, te := range exprs {
		switch t := te.(type) {
		case *sqlparser.AliasedTableExpr:
			name, ok := t.Expr.(sqlparser.TableName)
			if !ok {
				continue
			}
			if name.Qualifier.IsEmpty() && strings.EqualFold(name.Name.String(), "dual") {
				continue
			}
			var parts []string
			if !name.Qualifier.IsEmpty() {
				parts = append(parts, name.Qualifier.String())
			}
			parts = append(parts, name.Name.String())
			refs = append(refs, expr.TableRef{Name: parts, Alias: t.As.String()})
		case *sqlparser.ParenTableExpr:
			refs = convertTableExprs(t.Exprs, refs)
		case *sqlparser.JoinTableExpr:
			refs = convertTableExprs(sqlparser.TableExprs{t.LeftExpr, t.RightExpr}, refs)
		}
	}
	return refs
}

func convertSelectExpr(se sqlparser.SelectExpr) expr.SelectItem {
	switch s := se.(type) {
	case *sqlparser.StarExpr:
		return expr.SelectItem{Expr: &expr.Wildcard{Table: s.TableName.Name.String()}}
	case *sqlparser.AliasedExpr:
		return expr.SelectItem{Expr: convertExpr(s.Expr), Alias: s.As.String()}
	}
	return expr.SelectItem{Expr: &expr.Unsupported{Kind: "select expression", Raw: sqlparser.String(se)}}
}

func convertExpr(e sqlparser.Expr) expr.Expr {
	col, ok := e.(*sqlparser.ColName)
	if !ok {
		return &expr.Unsupported{Kind: expressionKind(e), Raw: sqlparser.String(e)}
	}
	var parts []string
	if !col.Qualifier.Qualifier.IsEmpty() {
		parts = append(parts, col.Qualifier.Qualifier.String())
	}
	if !col.Qualifier.Name.IsEmpty() {
		parts = append(parts, col.Qualifier.Name.String())
	}
	parts = append(parts, col.Name.String())
	return &expr.ColumnRef{Parts: parts}
}

func expressionKind(e sqlparser.Expr) string {
	switch e.(type) {
	case *sqlparser.FuncExpr:
		return "function call"
	case *sqlparser.SQLVal, *sqlparser.NullVal, sqlparser.BoolVal:
		return "literal"
	case *sqlparser.BinaryExpr, *sqlparser.UnaryExpr:
		return "arithmetic expression"
	case *sqlparser.CaseExpr:
		return "case expression"
	case *sqlparser.Subquery:
		return "subquery"
	case *sqlparser.ParenExpr:
		return "parenthesized expression"
	}
	return "expression"
}

func statementKind(stmt sqlparser.Statement) string {
	switch stmt.(type) {
	case *sqlparser.Insert:
		return "INSERT"
	case *sqlparser.Update:
		return "UPDATE"
	case *sqlparser.Delete:
		return "DELETE"
	}
	return "statement " + strings.SplitN(strings.TrimSpace(sqlparser.String(stmt)), " ", 2)[0]
}
