package context

import (
	"context"
	"testing"
	"time"
)

// WithTest derives a context bound to the test's deadline, shortened by one
// second so cleanup can still run before `go test` kills the process.
//
// Tests without a deadline get ctx back unchanged, with a no-op cancel.
func WithTest(ctx context.Context, t *testing.T) (context.Context, func()) {
	deadline, ok := t.Deadline()
	if !ok {
		return ctx, func() {}
	}
	return context.WithDeadline(ctx, deadline.Add(-1*time.Second))
}
