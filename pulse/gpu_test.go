package pulse

import (
	"testing"
)

// newTestContext creates a headless context or skips the test if no
// adapter is available. The caller releases the context.
func newTestContext(t *testing.T) *Context {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("no gpu available: %v", r)
		}
	}()

	ctx, err := NewHeadless()
	if err != nil {
		t.Skipf("no gpu available: %s", err)
	}

	return ctx
}
