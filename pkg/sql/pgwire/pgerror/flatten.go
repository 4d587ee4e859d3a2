// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
)

// Error is the flattened, client-facing rendering of an error: its
// message, SQLSTATE code, hints and details.
type Error struct {
	Code    string
	Message string
	Hint    string
	Detail  string
}

func (e *Error) Error() string { return e.Message }

// Flatten turns any error into a pgerror with fields populated. As
// the name implies, the details from the chain of causes is projected
// onto a single struct. Returns a nil ptr if err was nil to start with.
func Flatten(err error) *Error {
	if err == nil {
		return nil
	}
	resErr := &Error{
		Code:    GetPGCode(err).String(),
		Message: err.Error(),
		Hint:    errors.FlattenHints(err),
		Detail:  errors.FlattenDetails(err),
	}
	if resErr.Code == pgcode.Internal.String() {
		if !strings.HasPrefix(resErr.Message, InternalErrorPrefix) {
			resErr.Message = InternalErrorPrefix + resErr.Message
		}
	}
	return resErr
}

// InternalErrorPrefix is prepended on internal errors.
const InternalErrorPrefix = "internal error: "

// FullError can be used when the hint and/or detail are to be tested.
func FullError(err error) string {
	pgErr := Flatten(err)
	if pgErr == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "ERROR: %s (SQLSTATE %s)", pgErr.Message, pgErr.Code)
	if pgErr.Detail != "" {
		fmt.Fprintf(&sb, "\nDETAIL: %s", pgErr.Detail)
	}
	if pgErr.Hint != "" {
		fmt.Fprintf(&sb, "\nHINT: %s", pgErr.Hint)
	}
	return sb.String()
}
