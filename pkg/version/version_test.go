package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := Info{Version: "dev", Commit: "unknown", Date: "unknown", GoVersion: "go1.24.0"}
	info.fill(bi)

	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "0123456789ab", info.Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.Date)
	assert.Equal(t, "logconfig v1.2.3 (0123456789ab-dirty) built on 2026-01-02T03:04:05Z with go1.24.0", info.String())
}

func TestFillKeepsLinkerValues(t *testing.T) {
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	}

	info := Info{Version: "v2.0.0", Commit: "abc", Date: "today"}
	info.fill(bi)
	assert.Equal(t, Info{Version: "v2.0.0", Commit: "abc", Date: "today"}, info)

	dev := Info{Version: "dev", Commit: "unknown", Date: "unknown"}
	dev.fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Equal(t, "dev", dev.Version)
	assert.Equal(t, "unknown", dev.Commit)
}
