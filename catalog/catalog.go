// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package catalog describes which columns each table has. sqlgen uses a
// catalog to find the table of a bare column when a query reads from more
// than one table.
//
// A catalog can be written by hand, read from YAML, derived from Go structs
// with "db" tags or loaded from a live database.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog maps table names to their column names. Names are case sensitive.
// The zero value and the nil *Catalog are empty catalogs.
type Catalog struct {
	tables map[string][]string
}

// New returns a catalog holding a copy of tables.
func New(tables map[string][]string) *Catalog {
	c := &Catalog{}
	for _, table := range sortedKeys(tables) {
		c.Add(table, tables[table]...)
	}
	return c
}

// Add records columns for table. Columns already recorded are ignored.
func (c *Catalog) Add(table string, columns ...string) {
	if c.tables == nil {
		c.tables = make(map[string][]string)
	}
	known := c.tables[table]
	for _, col := range columns {
		if !contains(known, col) {
			known = append(known, col)
		}
	}
	c.tables[table] = known
}

// Merge adds every table and column of other to c.
func (c *Catalog) Merge(other *Catalog) {
	for _, table := range other.Tables() {
		cols, _ := other.Columns(table)
		c.Add(table, cols...)
	}
}

// Columns returns the columns of table in the order they were added. The
// second result is false if the table is not in the catalog.
func (c *Catalog) Columns(table string) ([]string, bool) {
	if c == nil || c.tables == nil {
		return nil, false
	}
	cols, ok := c.tables[table]
	if !ok {
		return nil, false
	}
	return append([]string(nil), cols...), true
}

// Tables returns the table names in sorted order.
func (c *Catalog) Tables() []string {
	if c == nil {
		return nil
	}
	return sortedKeys(c.tables)
}

// ParseYAML reads a catalog written as a mapping from table names to column
// lists:
//
//	users: [id, name]
//	posts: [id, user_id, title]
func ParseYAML(data []byte) (*Catalog, error) {
	var tables map[string][]string
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("cannot parse catalog: %s", err)
	}
	return New(tables), nil
}

// FromStructs builds a catalog from tagged struct samples keyed by table
// name. The columns of a table are the "db" tags of its struct fields.
func FromStructs(samples map[string]any) (*Catalog, error) {
	c := &Catalog{}
	for _, table := range sortedKeys(samples) {
		cols, err := structColumns(samples[table])
		if err != nil {
			return nil, fmt.Errorf("cannot build catalog: table %q: %s", table, err)
		}
		c.Add(table, cols...)
	}
	return c, nil
}

// structColumns returns the "db" tags of the fields of a struct, in field order.
func structColumns(value any) ([]string, error) {
	if value == (any)(nil) {
		return nil, fmt.Errorf("cannot reflect nil value")
	}
	v := reflect.Indirect(reflect.ValueOf(value))
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("can only reflect struct type, got %s", v.Kind())
	}

	typ := v.Type()
	var cols []string
	for i := 0; i < typ.NumField(); i++ {
		// Fields without a "db" tag are not columns.
		tag := typ.Field(i).Tag.Get("db")
		if tag == "" {
			continue
		}
		name, err := parseTag(tag)
		if err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, nil
}

var validColNameRx = regexp.MustCompile(`^([a-zA-Z_])+([a-zA-Z_0-9])*$`)

// parseTag returns the column name of a "db" tag. The only accepted option
// is "omitempty".
func parseTag(tag string) (string, error) {
	options := strings.Split(tag, ",")

	// Refuse to parse if there are more than 2 items.
	if len(options) > 2 {
		return "", fmt.Errorf("too many options in 'db' tag")
	}
	if len(options) == 2 && strings.ToLower(options[1]) != "omitempty" {
		return "", fmt.Errorf("unexpected tag value %q", options[1])
	}

	name := options[0]
	if len(name) == 0 {
		return "", fmt.Errorf("empty db tag")
	}
	if !validColNameRx.MatchString(name) {
		return "", fmt.Errorf("invalid column name in 'db' tag")
	}
	return name, nil
}

var validTableNameRx = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z_0-9]*(\.[a-zA-Z_][a-zA-Z_0-9]*)?$`)

// Load reads the columns of tables from db. It works with any driver by
// selecting no rows from each table and reading the result columns. A table
// qualified with a schema, e.g. shop.orders, is recorded under its
// unqualified name.
func Load(ctx context.Context, db *sql.DB, tables ...string) (*Catalog, error) {
	c := &Catalog{}
	for _, table := range tables {
		cols, err := tableColumns(ctx, db, table)
		if err != nil {
			return nil, fmt.Errorf("cannot load catalog: %w", err)
		}
		_, name, ok := strings.Cut(table, ".")
		if !ok {
			name = table
		}
		c.Add(name, cols...)
	}
	return c, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	if !validTableNameRx.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table+" WHERE 1=0")
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", table, err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table %q: %w", table, err)
	}
	return cols, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// sortedKeys returns the keys of a string map in a deterministic order.
func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
