package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertBuilt checks that the run succeeded and rebuilt exactly the given
// workspace-relative outputs, in any order.
func (h *Harness) AssertBuilt(result *HarnessResult, rels ...string) {
	h.t.Helper()
	require.NoError(h.t, result.Err, "build failed; log output:\n%s", result.LogOutput)
	require.NotNil(h.t, result.Result)

	want := make([]string, 0, len(rels))
	for _, rel := range rels {
		want = append(want, h.Path(rel))
	}
	assert.ElementsMatch(h.t, want, result.Result.Executed)
}

// AssertRanBefore checks that the action for first finished before the one
// for second started.
func AssertRanBefore(t *testing.T, m *RecorderModule, first, second string) {
	t.Helper()
	a, ok := m.Record(first)
	require.True(t, ok, "%s never ran", first)
	b, ok := m.Record(second)
	require.True(t, ok, "%s never ran", second)
	assert.False(t, b.Start.Before(a.End), "%s started before %s finished", second, first)
}

// AssertOverlapped checks that the actions for a and b ran at the same time.
func AssertOverlapped(t *testing.T, m *RecorderModule, a, b string) {
	t.Helper()
	ra, ok := m.Record(a)
	require.True(t, ok, "%s never ran", a)
	rb, ok := m.Record(b)
	require.True(t, ok, "%s never ran", b)
	assert.True(t, ra.Start.Before(rb.End) && rb.Start.Before(ra.End), "%s and %s did not overlap", a, b)
}
