// Copyright 2024 Canonical Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

// Command sqlgen generates Go functions that build typed values from the
// result rows of SELECT queries. It is meant to be run by go generate:
//
//	//go:generate go run github.com/canonical/sqlgen/cmd/sqlgen generate -c sqlgen.yaml
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}
