package logs

import "context"

// Span identifies one top-level operation, such as a read that may
// recursively evaluate many entries.
type Span string

type spanKey struct{}

var SpanKey spanKey

func SpanFrom(ctx context.Context) Span {
	if v, ok := ctx.Value(SpanKey).(Span); ok {
		return v
	}
	return ""
}
