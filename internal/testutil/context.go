package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds unit tests that talk to the fake API.
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled at timeout or test cleanup, whichever
// comes first. The test's own deadline shortens the timeout when closer.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if dt, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, set := dt.Deadline(); set {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
