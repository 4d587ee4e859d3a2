// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"go.uber.org/zap/zapcore"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	formatTags(ctx, &buf)
	buf.WriteString(redact.Sprintf(format, args...).StripMarkers())
	return buf.String()
}

// formatTags writes the logtags attached to ctx as "[k1=v1,k2] ".
func formatTags(ctx context.Context, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return
	}
	buf.WriteByte('[')
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if v := t.ValueStr(); v != "" {
			if len(t.Key()) > 1 {
				buf.WriteByte('=')
			}
			buf.WriteString(v)
		}
	}
	buf.WriteString("] ")
}

// addStructured creates a structured log entry and hands it to the
// configured zap core.
func addStructured(
	ctx context.Context, sev zapcore.Level, depth int, format string, args []interface{},
) {
	l := logger.Load()
	if ce := l.WithOptions(zapCallerSkip(depth+1)).Check(sev, FormatWithContextTags(ctx, format, args...)); ce != nil {
		ce.Write()
	}
}
