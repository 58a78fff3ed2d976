// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package emit renders binding plans as Go source.
//
// Generated code expects, for every table, a schema value named after the
// table (UsersSchema for users) in scope, holding one member per column
// (UsersSchema.FULL_NAME) whose Parse method converts a single row value:
//
//	Parse(v any) (T, error)
//
// The row handed to the generated code holds one value per projected column,
// in projection order.
package emit

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/canonical/sqlgen/internal/expr"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))

var formatOptions = &imports.Options{
	FormatOnly: true,
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
}

// Function is one generated function of a file.
type Function struct {
	// Name of the generated function.
	Name string
	// Into names the result type.
	Into string
	// Query is the SQL the plan was resolved from. It is quoted in the doc
	// comment of the function.
	Query string
	Plan  []expr.Field
}

// construction is the template data for one result value.
type construction struct {
	Name       string
	Into       string
	QueryLines []string
	Fields     []fieldInit
}

type fieldInit struct {
	Index  int
	Local  string
	Target string
	Schema string
	Column string
}

func newConstruction(name, into, query string, plan []expr.Field) construction {
	c := construction{Name: name, Into: into}
	for _, line := range strings.Split(strings.TrimSpace(query), "\n") {
		if line = strings.TrimRight(line, " \t\r"); line != "" {
			c.QueryLines = append(c.QueryLines, line)
		}
	}
	for i, f := range plan {
		c.Fields = append(c.Fields, fieldInit{
			Index:  i,
			Local:  "v" + strconv.Itoa(i),
			Target: f.Target,
			Schema: f.Schema,
			Column: f.ColumnIdent,
		})
	}
	return c
}

// Fragment returns a function literal that builds a value of type into from
// a result row:
//
//	func(row []any) (Row, error) {
//		v0, err := UsersSchema.ID.Parse(row[0])
//		if err != nil {
//			return Row{}, err
//		}
//		return Row{
//			id: v0,
//		}, nil
//	}
//
// into may be qualified with a package name.
func Fragment(into string, plan []expr.Field) (string, error) {
	if !isTypeName(into, true) {
		return "", fmt.Errorf("cannot emit fragment: %w %q for result type", expr.ErrInvalidIdentifier, into)
	}
	out, err := render("fragment", "fragment.go", newConstruction("", into, "", plan))
	if err != nil {
		return "", fmt.Errorf("cannot emit fragment: %w", err)
	}
	// Drop the scaffolding the template wraps the literal in so it can be
	// formatted as a whole file.
	const decl = "var _ = "
	i := bytes.Index(out, []byte(decl))
	if i < 0 {
		return "", fmt.Errorf("cannot emit fragment: unexpected output")
	}
	return strings.TrimSpace(string(out[i+len(decl):])), nil
}

// File returns a formatted Go source file of package pkg declaring one
// function per entry of fns. Result types must be declared in pkg.
func File(pkg string, fns []Function) ([]byte, error) {
	if !expr.IsIdentifier(pkg) {
		return nil, fmt.Errorf("cannot emit file: %w %q for package", expr.ErrInvalidIdentifier, pkg)
	}
	data := struct {
		Package   string
		Functions []construction
	}{Package: pkg}
	seen := make(map[string]bool, len(fns))
	for _, fn := range fns {
		if err := CheckFunction(fn.Name, fn.Into); err != nil {
			return nil, fmt.Errorf("cannot emit file: %w", err)
		}
		if seen[fn.Name] {
			return nil, fmt.Errorf("cannot emit file: %w", DuplicateFunction(fn.Name))
		}
		seen[fn.Name] = true
		data.Functions = append(data.Functions, newConstruction(fn.Name, fn.Into, fn.Query, fn.Plan))
	}
	out, err := render("file", pkg+".go", data)
	if err != nil {
		return nil, fmt.Errorf("cannot emit file: %w", err)
	}
	return out, nil
}

// CheckFunction reports whether name and into can be declared as a function
// of a file and its result type.
func CheckFunction(name, into string) error {
	if !expr.IsIdentifier(name) {
		return fmt.Errorf("%w %q for function", expr.ErrInvalidIdentifier, name)
	}
	if !isTypeName(into, false) {
		return fmt.Errorf("%w %q for result type of %s", expr.ErrInvalidIdentifier, into, name)
	}
	return nil
}

// DuplicateFunction is the error for a function declared twice in a file.
func DuplicateFunction(name string) error {
	return fmt.Errorf("%w: function %q declared twice", expr.ErrDuplicateField, name)
}

func render(name, filename string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	formatted, err := imports.Process(filename, buf.Bytes(), formatOptions)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return formatted, nil
}

// isTypeName reports whether s names a type, optionally qualified by a
// package name.
func isTypeName(s string, qualified bool) bool {
	pkg, name, ok := strings.Cut(s, ".")
	if !ok {
		return expr.IsIdentifier(s)
	}
	return qualified && expr.IsIdentifier(pkg) && expr.IsIdentifier(name)
}
