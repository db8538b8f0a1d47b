package process

// Notes:
// - Only an unused PID is exercised. PID 0 would target the test's own
//   process group and any real PID would kill a live process. Browser
//   teardown covers the real path in the root package's browser tests.

import "testing"

func TestKillProcessGroup_UnknownPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
