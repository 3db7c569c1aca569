package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plotweave/plotweave/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[analysis]
debug_path = "game/_sandbox.rpy"
story_paths = ["game/chars.rpy"]

[layout]
node_width = 300.0
h_padding = 100.0

[cache]
backend = "none"

[palette]
colors = ["#111111", "#222222"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Analysis.DebugPath != "game/_sandbox.rpy" {
		t.Errorf("DebugPath = %q", cfg.Analysis.DebugPath)
	}
	if len(cfg.Analysis.StoryPaths) != 1 || cfg.Analysis.StoryPaths[0] != "game/chars.rpy" {
		t.Errorf("StoryPaths = %v", cfg.Analysis.StoryPaths)
	}
	if cfg.Layout.NodeWidth != 300 {
		t.Errorf("NodeWidth = %v", cfg.Layout.NodeWidth)
	}
	if len(cfg.Palette.Colors) != 2 {
		t.Errorf("Colors = %v", cfg.Palette.Colors)
	}

	opts := cfg.AnalysisOptions()
	if opts.DebugPath != "game/_sandbox.rpy" {
		t.Errorf("AnalysisOptions.DebugPath = %q", opts.DebugPath)
	}
	lo := cfg.LayoutOptions()
	if lo.HPadding != 100 {
		t.Errorf("LayoutOptions.HPadding = %v", lo.HPadding)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want file not found", errors.GetCode(err))
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, "[[[broken")
	_, err := Load(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("error code = %v, want invalid config", errors.GetCode(err))
	}
}

func TestLoadUnknownBackend(t *testing.T) {
	path := writeConfig(t, "[cache]\nbackend = \"carrier-pigeon\"\n")
	_, err := Load(path)
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Errorf("error code = %v, want invalid config", errors.GetCode(err))
	}
}

func TestLoadProjectMissingIsZero(t *testing.T) {
	cfg, err := LoadProject(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if cfg.Cache.Backend != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}
