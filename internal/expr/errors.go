// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package expr

import "errors"

// Failures are reported wrapped around one of these errors so callers can
// tell them apart with errors.Is.
var (
	ErrSyntax                = errors.New("syntax error")
	ErrUnsupportedStatement  = errors.New("unsupported statement")
	ErrUnsupportedExpression = errors.New("unsupported expression")
	ErrNoTables              = errors.New("no tables found")
	ErrUnknownTable          = errors.New("unknown table")
	ErrAmbiguousColumn       = errors.New("ambiguous column")
	ErrUnknownColumn         = errors.New("unknown column")
	ErrInvalidIdentifier     = errors.New("invalid identifier")
	ErrDuplicateField        = errors.New("duplicate field")
)
