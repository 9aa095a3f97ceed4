package testutil

import (
	"context"
	"testing"
	"time"
)

// containerTestTimeout covers image pulls on a cold Docker cache.
const containerTestTimeout = 3 * time.Minute

// TestContext returns a context cancelled when the test ends or the
// container timeout passes, whichever comes first.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), containerTestTimeout)
	t.Cleanup(cancel)
	return ctx
}

// RequireDocker skips tests that start containers when running with -short.
func RequireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
}
