package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plotweave/plotweave/pkg/story"
)

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	game := filepath.Join(dir, "game")
	if err := os.MkdirAll(game, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"intro.rpy": "label start:\n    \"Once upon a time\"\n    jump ending",
		"end.rpy":   "label ending:\n    return",
	}
	for name, text := range files {
		if err := os.WriteFile(filepath.Join(game, name), []byte(text), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestAnalyzeCommand(t *testing.T) {
	dir := writeProject(t)
	output := filepath.Join(t.TempDir(), "analysis.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"analyze", dir, "-o", output, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	result, err := story.ReadResultFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(result.Units) != 2 {
		t.Errorf("expected 2 units, got %d", len(result.Units))
	}
	if len(result.Links) != 1 {
		t.Errorf("expected 1 link, got %+v", result.Links)
	}
	if len(result.Routes) != 1 {
		t.Errorf("expected 1 route, got %d", len(result.Routes))
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := writeProject(t)
	work := t.TempDir()
	analysisPath := filepath.Join(work, "analysis.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"analyze", dir, "-o", analysisPath, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	root = testCLI().RootCommand()
	root.SetArgs([]string{"layout", analysisPath, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("layout: %v", err)
	}

	layoutPath := filepath.Join(work, "analysis.layout.json")
	data, err := os.ReadFile(layoutPath)
	if err != nil {
		t.Fatalf("read layout output: %v", err)
	}
	if !strings.Contains(string(data), `"x"`) {
		t.Errorf("layout output missing coordinates: %s", data)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	dir := writeProject(t)
	work := t.TempDir()
	analysisPath := filepath.Join(work, "analysis.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"analyze", dir, "-o", analysisPath, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("analyze: %v", err)
	}

	outPath := filepath.Join(work, "graph.dot")
	root = testCLI().RootCommand()
	root.SetArgs([]string{"render", analysisPath, "-f", "dot", "-o", outPath, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read render output: %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("render output is not DOT: %s", data)
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	root := testCLI().RootCommand()
	root.SetArgs([]string{"render", "whatever.json", "-f", "gif"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for invalid format")
	}
}
