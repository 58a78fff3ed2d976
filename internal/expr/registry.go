// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import "strings"

// effectiveName returns the name something is referenced by elsewhere in the
// query: the alias when there is one, otherwise the last part of its
// possibly qualified name. It returns "" if there is neither.
func effectiveName(parts []string, alias string) string {
	if alias != "" {
		return alias
	}
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// tableRegistry maps the effective name of every table in scope to its
// declared name.
type tableRegistry struct {
	// keys holds the effective names in the order they were first declared.
	keys   []string
	tables map[string]string
}

// newTableRegistry builds the registry for a FROM clause. A later table with
// the same effective name replaces the earlier one but keeps its position.
func newTableRegistry(from []TableRef) *tableRegistry {
	r := &tableRegistry{tables: make(map[string]string, len(from))}
	for _, ref := range from {
		declared := effectiveName(ref.Name, "")
		if declared == "" {
			continue
		}
		key := effectiveName(ref.Name, ref.Alias)
		if _, ok := r.tables[key]; !ok {
			r.keys = append(r.keys, key)
		}
		r.tables[key] = declared
	}
	return r
}

func (r *tableRegistry) lookup(key string) (string, bool) {
	table, ok := r.tables[key]
	return table, ok
}

func (r *tableRegistry) len() int {
	return len(r.keys)
}

// String lists the effective names in declaration order.
func (r *tableRegistry) String() string {
	return strings.Join(r.keys, ", ")
}
