// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package example shows generated code at work. The functions in
// queries_gen.go are generated from sqlgen.yaml and build the types below
// from rows read with database/sql.
package example

//go:generate go run github.com/canonical/sqlgen/cmd/sqlgen generate -c sqlgen.yaml

import (
	"fmt"
)

// Column parses the values of one column as returned by the driver.
type Column[T any] struct {
	Name string
}

func (c Column[T]) Parse(v any) (T, error) {
	var t T
	if v == nil {
		return t, fmt.Errorf("column %s: unexpected NULL", c.Name)
	}
	if x, ok := v.(T); ok {
		return x, nil
	}
	if b, ok := v.([]byte); ok {
		if s, ok := any(&t).(*string); ok {
			*s = string(b)
			return t, nil
		}
	}
	return t, fmt.Errorf("column %s: cannot parse %T as %T", c.Name, v, t)
}

var PersonSchema = struct {
	ID   Column[int64]
	NAME Column[string]
	TEAM Column[string]
}{
	ID:   Column[int64]{Name: "id"},
	NAME: Column[string]{Name: "name"},
	TEAM: Column[string]{Name: "team"},
}

var LocationSchema = struct {
	ROOM_ID Column[int64]
	NAME    Column[string]
	TEAM    Column[string]
}{
	ROOM_ID: Column[int64]{Name: "room_id"},
	NAME:    Column[string]{Name: "name"},
	TEAM:    Column[string]{Name: "team"},
}

type Person struct {
	id   int64
	name string
	team string
}

type Room struct {
	room_id int64
	name    string
}

// Assignment is a person along with the name of the room of their team.
type Assignment struct {
	name string
	team string
	room string
}
