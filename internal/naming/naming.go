// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Package naming converts SQL names into the Go identifiers used by
// generated code.
//
// A name is split into words on every rune that is neither a letter nor a
// digit, on a lower to upper case change (userID is user, ID) and before
// the last capital of a run followed by a lower case letter (HTTPStatus is
// HTTP, Status). Digits belong to the word they appear in, so user_2fa is
// user, 2fa. No separator survives PascalCase.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SchemaSuffix follows the PascalCase table name in schema symbols.
const SchemaSuffix = "Schema"

// Pascal converts s to PascalCase, e.g. order_items to OrderItems and
// order_2024 to Order2024.
func Pascal(s string) string {
	ws := words(s)
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	for i, w := range ws {
		r, n := utf8.DecodeRuneInString(w)
		ws[i] = upper.String(string(r)) + lower.String(w[n:])
	}
	return strings.Join(ws, "")
}

// Snake converts s to snake_case, e.g. fullName to full_name.
func Snake(s string) string {
	return strings.Join(words(s), "_")
}

// ScreamingSnake converts s to SCREAMING_SNAKE_CASE, e.g. unit_price to
// UNIT_PRICE.
func ScreamingSnake(s string) string {
	return cases.Upper(language.Und).String(Snake(s))
}

// SchemaIdent returns the schema symbol of a table, e.g. UserAccountsSchema
// for user_accounts.
func SchemaIdent(table string) string {
	return Pascal(table) + SchemaSuffix
}

// words splits s into lower case words.
func words(s string) []string {
	lower := cases.Lower(language.Und)
	rs := []rune(s)
	var ws []string
	start := -1
	// lastLower is whether the last letter of the current word is lower
	// case. Digits leave it as it is.
	lastLower := false
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			if start >= 0 {
				ws = append(ws, lower.String(string(rs[start:i])))
				start = -1
			}
			continue
		}
		if start < 0 {
			start, lastLower = i, unicode.IsLower(r)
			continue
		}
		if unicode.IsUpper(r) {
			acronymEnd := unicode.IsUpper(rs[i-1]) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if lastLower || acronymEnd {
				ws = append(ws, lower.String(string(rs[start:i])))
				start = i
			}
		}
		if unicode.IsLetter(r) {
			lastLower = unicode.IsLower(r)
		}
	}
	if start >= 0 {
		ws = append(ws, lower.String(string(rs[start:])))
	}
	return ws
}
