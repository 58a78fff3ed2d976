// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package dialect adapts third-party SQL parsers to the statement
// representation of package expr.
package dialect

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/canonical/sqlgen/internal/expr"
)

// Dialect parses query text written in one SQL dialect.
type Dialect interface {
	// Name identifies the dialect in configuration, e.g. "mysql".
	Name() string

	// Parse parses a query holding exactly one plain SELECT statement.
	// Syntax errors wrap expr.ErrSyntax and any other statement shape
	// wraps expr.ErrUnsupportedStatement.
	Parse(query string) (*expr.Select, error)
}

var registryMutex sync.RWMutex
var registry = map[string]Dialect{}

func init() {
	Register(MySQL{})
}

// Register makes a dialect available to Lookup. A dialect registered under
// an existing name replaces it.
func Register(d Dialect) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	registry[strings.ToLower(d.Name())] = d
}

// Lookup returns the dialect registered under name, ignoring case.
func Lookup(name string) (Dialect, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	d, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q, have: %s", name, strings.Join(names(), ", "))
	}
	return d, nil
}

// Names returns the registered dialect names in a deterministic order.
func Names() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	return names()
}

func names() []string {
	ns := make([]string, 0, len(registry))
	for n := range registry {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}
