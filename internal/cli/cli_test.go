package cli

import (
	"path/filepath"
	"testing"

	"github.com/dshills/tagsum/internal/config"
)

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagProject = ""
	flagFromTag = ""
	flagToTag = ""
	flagPath = ""
	flagProvider = ""
	flagModel = ""
	flagOutDir = ""
	flagNoExclude = false
}

func TestBuildOverrides_Empty(t *testing.T) {
	resetFlags()
	m := buildOverrides()
	if len(m) != 0 {
		t.Errorf("no flags set should yield empty overrides, got %v", m)
	}
}

func TestBuildOverrides(t *testing.T) {
	resetFlags()
	flagProvider = "anthropic"
	flagModel = "claude-sonnet-4-20250514"
	flagOutDir = "reports"

	m := buildOverrides()
	if m["provider"] != "anthropic" {
		t.Errorf("provider override = %q", m["provider"])
	}
	if m["model"] != "claude-sonnet-4-20250514" {
		t.Errorf("model override = %q", m["model"])
	}
	if m["outDir"] != "reports" {
		t.Errorf("outDir override = %q", m["outDir"])
	}
}

func TestResolveRepoPath_Default(t *testing.T) {
	resetFlags()
	flagProject = "video-lib"

	cfg := config.Default()
	got := resolveRepoPath(cfg)
	want := filepath.Join("./repositories", "video-lib")
	if got != want {
		t.Errorf("resolveRepoPath = %q, want %q", got, want)
	}
}

func TestResolveRepoPath_Explicit(t *testing.T) {
	resetFlags()
	flagProject = "video-lib"
	flagPath = "/srv/checkouts/video-lib"

	got := resolveRepoPath(config.Default())
	if got != "/srv/checkouts/video-lib" {
		t.Errorf("resolveRepoPath = %q, want the explicit path", got)
	}
}

func TestExitCodes(t *testing.T) {
	// The codes are part of the CLI contract; scripts depend on them.
	if ExitSuccess != 0 || ExitUsageError != 2 || ExitAuthError != 3 || ExitRuntimeError != 4 {
		t.Error("exit code values must not change")
	}
}
