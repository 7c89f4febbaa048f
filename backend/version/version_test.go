package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuildInfo(t *testing.T, version, commit, built string) {
	t.Helper()
	origVersion, origCommit, origBuild := Version, Commit, BuildTime
	t.Cleanup(func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuild
	})
	Version, Commit, BuildTime = version, commit, built
}

func TestInfo(t *testing.T) {
	setBuildInfo(t, "0.2.0", "abc1234", "2026-01-01T00:00:00Z")
	assert.Equal(t, "0.2.0 (abc1234)", Info())
}

func TestInfo_WithoutCommit(t *testing.T) {
	setBuildInfo(t, "dev", "unknown", "unknown")
	assert.Equal(t, "dev", Info())
}

func TestFull(t *testing.T) {
	setBuildInfo(t, "0.2.0", "abc1234", "2026-01-01T00:00:00Z")
	assert.Equal(t, "0.2.0 (commit: abc1234, built: 2026-01-01T00:00:00Z, "+runtime.GOOS+"/"+runtime.GOARCH+")", Full())
}
