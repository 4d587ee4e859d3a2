// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
)

// ClassResolver looks up a class by its case-insensitive name.
type ClassResolver interface {
	ClassByName(name string) (*Class, bool)
}

// ParseInstance parses the SQL spelling of a type instance, such as
// "int8", "varchar(20)" or "numeric(10,2)". The result is not nullable.
func ParseInstance(s string, resolver ClassResolver) (*T, error) {
	s = strings.TrimSpace(s)
	name, args := s, ""
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return nil, pgerror.Newf(pgcode.Syntax, "invalid type name: %q", s)
		}
		name, args = strings.TrimSpace(s[:open]), s[open+1:len(s)-1]
	}
	c, ok := resolver.ClassByName(name)
	if !ok {
		return nil, pgerror.Newf(pgcode.UndefinedObject, "type %q does not exist", name)
	}
	if args == "" {
		return c.WidestInstance(false /* nullable */), nil
	}
	var nums []int32
	for _, a := range strings.Split(args, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(a), 10, 32)
		if err != nil || n < 0 {
			return nil, pgerror.Newf(pgcode.Syntax, "invalid type modifier %q in %q", a, s)
		}
		nums = append(nums, int32(n))
	}
	p := c.widest
	switch c.kind {
	case WidthParam:
		if len(nums) != 1 {
			return nil, pgerror.Newf(pgcode.Syntax, "type %s accepts a single length", errors.Safe(c.name))
		}
		p.Width = nums[0]
	case PrecisionScaleParams:
		if len(nums) > 2 {
			return nil, pgerror.Newf(pgcode.Syntax, "type %s accepts a precision and a scale", errors.Safe(c.name))
		}
		p.Precision = nums[0]
		if len(nums) == 2 {
			p.Scale = nums[1]
		}
		if p.Scale > p.Precision {
			return nil, pgerror.Newf(pgcode.InvalidParameterValue,
				"scale %d must be between 0 and precision %d", p.Scale, p.Precision)
		}
	default:
		return nil, pgerror.Newf(pgcode.Syntax, "type %s does not accept modifiers", errors.Safe(c.name))
	}
	return c.Instance(p, false /* nullable */), nil
}
