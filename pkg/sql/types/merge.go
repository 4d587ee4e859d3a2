// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

// MergeNone is the merge policy of classes without parameters.
func MergeNone(a, _ Params) Params {
	return a
}

// MergeWidth keeps the larger width; an unbounded width wins. Differing
// charsets fall back to the default charset.
func MergeWidth(a, b Params) Params {
	res := a
	if a.Width == 0 || b.Width == 0 {
		res.Width = 0
	} else if b.Width > a.Width {
		res.Width = b.Width
	}
	if a.Charset != b.Charset {
		res.Charset = ""
	}
	return res
}

// MergeDecimal keeps enough integer digits and enough fractional digits
// to represent values of both inputs. An unbounded precision wins.
func MergeDecimal(a, b Params) Params {
	if a.Precision == 0 || b.Precision == 0 {
		return Params{Scale: max(a.Scale, b.Scale)}
	}
	intDigits := max(a.Precision-a.Scale, b.Precision-b.Scale)
	scale := max(a.Scale, b.Scale)
	return Params{Precision: intDigits + scale, Scale: scale}
}

// MergeCharset keeps the parameters of a and the charset both inputs
// share, if any.
func MergeCharset(a, b Params) Params {
	res := a
	if a.Charset != b.Charset {
		res.Charset = ""
	}
	return res
}
