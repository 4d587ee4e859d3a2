// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// overloadcheck inspects the cast graph and the function overloads of a
// SQL catalog and resolves calls against them.
package main

import "github.com/cockroachdb/sqloverload/pkg/cli"

func main() {
	cli.Main()
}
