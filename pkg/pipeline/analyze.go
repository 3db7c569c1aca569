package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/plotweave/plotweave/pkg/script"
	"github.com/plotweave/plotweave/pkg/story"
)

// ScriptExtension is the script file extension loaded from project
// directories.
const ScriptExtension = ".rpy"

// Analyze runs the analysis stage over the units named by the options.
func Analyze(ctx context.Context, opts Options) (*story.Result, error) {
	units, err := ResolveUnits(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return story.Analyze(units, opts.AnalysisOptions()), nil
}

// ResolveUnits produces the input unit collection from whichever source the
// options carry: pre-loaded units win, then explicit files, then a project
// directory walk.
func ResolveUnits(opts Options) ([]script.Unit, error) {
	switch {
	case len(opts.Units) > 0:
		return opts.Units, nil
	case len(opts.Files) > 0:
		return LoadFiles(opts.Files)
	case opts.Dir != "":
		return LoadDir(opts.Dir)
	default:
		return nil, fmt.Errorf("dir, files, or units is required")
	}
}

// LoadDir walks a project directory and loads every script file, sorted by
// path so unit order is stable across filesystems.
func LoadDir(dir string) ([]script.Unit, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ScriptExtension {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s files under %s", ScriptExtension, dir)
	}

	sort.Strings(paths)
	return loadUnits(dir, paths)
}

// LoadFiles loads an explicit list of script files in the given order.
func LoadFiles(paths []string) ([]script.Unit, error) {
	return loadUnits("", paths)
}

func loadUnits(base string, paths []string) ([]script.Unit, error) {
	units := make([]script.Unit, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		filePath := path
		if base != "" {
			if rel, err := filepath.Rel(base, path); err == nil {
				filePath = filepath.ToSlash(rel)
			}
		}

		units = append(units, script.Unit{
			ID:       unitID(filePath),
			Text:     string(data),
			FilePath: filePath,
		})
	}
	return units, nil
}

// unitID derives a unit identity from its file path: the path without the
// extension, slash-separated.
func unitID(filePath string) string {
	p := filepath.ToSlash(filePath)
	return strings.TrimSuffix(p, ScriptExtension)
}
