package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFromModule(t *testing.T) {
	saved := [3]string{Version, Commit, Date}
	savedRead := readBuildInfo
	t.Cleanup(func() {
		Version, Commit, Date = saved[0], saved[1], saved[2]
		readBuildInfo = savedRead
	})

	Version, Commit, Date = "dev", "none", "unknown"
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.1"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		}, true
	}
	fillFromModule()

	if Version != "v0.3.1" || Commit != "0123456789abcdef" || Date != "2026-01-02T03:04:05Z" {
		t.Errorf("got %q %q %q", Version, Commit, Date)
	}
	if got := Short(); got != "v0.3.1 (0123456)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestFillFromModuleKeepsLdflags(t *testing.T) {
	saved := [3]string{Version, Commit, Date}
	savedRead := readBuildInfo
	t.Cleanup(func() {
		Version, Commit, Date = saved[0], saved[1], saved[2]
		readBuildInfo = savedRead
	})

	Version, Commit, Date = "v1.0.0", "abc", "today"
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "zzz"}},
		}, true
	}
	fillFromModule()

	if Version != "v1.0.0" || Commit != "abc" || Date != "today" {
		t.Errorf("ldflags overwritten: %q %q %q", Version, Commit, Date)
	}
	if !strings.Contains(Template(), "version v1.0.0") {
		t.Errorf("Template() = %q", Template())
	}
}
