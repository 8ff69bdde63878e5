package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithTimeout creates a context cancelled on test cleanup.
func ContextWithTimeout(t testing.TB, duration time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	t.Cleanup(cancel)

	return ctx
}
