// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import "github.com/lib/pq/oid"

// OidToClass maps Postgres object IDs to the standard classes. We export
// the map instead of a method so that other packages can iterate over
// the map directly.
var OidToClass = func() map[oid.Oid]*Class {
	m := make(map[oid.Oid]*Class, len(Standard))
	for _, c := range Standard {
		m[c.Oid()] = c
	}
	return m
}()

// aliasedOidToName maps Postgres object IDs to the display names Postgres
// uses for them when those differ from the class name.
var aliasedOidToName = map[oid.Oid]string{
	oid.T_bpchar: "bpchar",
	oid.T_bool:   "boolean",
}

// PGDisplayName returns the Postgres display name for a given class.
func PGDisplayName(c *Class) string {
	if typname, ok := aliasedOidToName[c.Oid()]; ok {
		return typname
	}
	return c.Name()
}
