package cli

import (
	"io"
	"path/filepath"
	"testing"
)

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := testCLI().RootCommand()

	want := []string{"analyze", "routes", "layout", "render", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,dot,json", []string{"svg", "dot", "json"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseGraphs(t *testing.T) {
	if got := parseGraphs(""); len(got) != 1 || got[0] != "units" {
		t.Errorf("parseGraphs(\"\") = %v, want [units]", got)
	}
	if got := parseGraphs("units,routes"); len(got) != 2 || got[1] != "routes" {
		t.Errorf("parseGraphs(\"units,routes\") = %v", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "analysis.json", "analysis"},
		{"out.svg", "analysis.json", "out"},
		{"diagrams/story", "analysis.json", "diagrams/story"},
		{"out.layout", "analysis.json", "out.layout"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestCacheDirXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if got != filepath.Join(dir, "plotweave") {
		t.Errorf("cacheDir = %q, want %q", got, filepath.Join(dir, "plotweave"))
	}
}
