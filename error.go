// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package sqlgen

import (
	"strconv"
)

// Position is a location in the file a query was written in.
type Position struct {
	Filename string
	// Line starts at 1. Zero means the line is unknown.
	Line int
}

// IsValid reports whether the position is known.
func (p Position) IsValid() bool {
	return p.Filename != "" || p.Line > 0
}

func (p Position) String() string {
	s := p.Filename
	if p.Line > 0 {
		if s == "" {
			s = "line"
		}
		s += ":" + strconv.Itoa(p.Line)
	}
	return s
}

// Error is returned by every failing function of this package. It reports
// the position of the query along with the cause, which wraps one of the
// Err* values of this package.
type Error struct {
	Pos Position
	Err error
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
