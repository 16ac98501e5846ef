// Package entryctx provides access to the in-flight entry from a context.
// Backends place the entry being dispatched on the context so Transport
// implementations can reach it without widening their signatures.
package entryctx

import (
	"context"

	"github.com/obsworks/obsqueue/pkg/core"
)

type entryKey struct{}

// With returns a context carrying the entry.
func With(ctx context.Context, e core.Entry) context.Context {
	return context.WithValue(ctx, entryKey{}, e)
}

// EntryFromContext returns the entry being dispatched, or nil when the
// context does not come from a backend poll step.
func EntryFromContext(ctx context.Context) core.Entry {
	e, _ := ctx.Value(entryKey{}).(core.Entry)
	return e
}

// LabelFromContext returns the label of the entry being dispatched, or ""
// when the context does not come from a backend poll step.
func LabelFromContext(ctx context.Context) string {
	e := EntryFromContext(ctx)
	if e == nil {
		return ""
	}
	return e.Label()
}
