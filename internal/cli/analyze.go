package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plotweave/plotweave/pkg/config"
	"github.com/plotweave/plotweave/pkg/pipeline"
	"github.com/plotweave/plotweave/pkg/story"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		tasks   bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "analyze [project-dir]",
		Short: "Analyze a script project into a story graph",
		Long: `Analyze a script project into a story graph.

The analyze command walks the project directory for .rpy script files, extracts
labels, jumps, calls, menus, and definitions from each file, builds the
unit-level link graph and the label-level route graph, and writes the full
analysis as JSON.

Project-level settings are read from plotweave.toml in the project directory
when present. Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return c.runAnalyze(cmd.Context(), dir, opts, output, noCache, tasks)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: analysis.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVar(&opts.DebugPath, "debug-path", "", "script path excluded from analysis")
	cmd.Flags().StringSliceVar(&opts.StoryPaths, "story-path", nil, "script paths always classified as story")
	cmd.Flags().BoolVar(&tasks, "tasks", false, "report missing show/play assets")

	return cmd
}

// runAnalyze loads the project, runs the analysis stage, and writes output.
func (c *CLI) runAnalyze(ctx context.Context, dir string, opts pipeline.Options, output string, noCache, tasks bool) error {
	cfg, err := config.LoadProject(dir)
	if err != nil {
		return err
	}
	applyAnalysisConfig(&opts, cfg)
	opts.Dir = dir
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, dir, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s...", dir))
	spinner.Start()

	result, cacheHit, err := runner.AnalyzeWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return fmt.Errorf("analyze %s: %w", dir, err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Analyzed %d units", len(result.Units)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = "analysis.json"
	}
	if err := story.WriteResultFile(result, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Analysis complete")
	printFile(outputPath)
	printStats(len(result.Units), len(result.Links), len(result.Routes), cacheHit)
	reportInvalidJumps(result)
	if tasks {
		reportMissingAssets(result)
	}
	printNewline()
	printNextStep("Render", "plotweave render "+outputPath)

	return nil
}

// applyAnalysisConfig fills unset analysis options from the project config.
func applyAnalysisConfig(opts *pipeline.Options, cfg config.Config) {
	if opts.DebugPath == "" {
		opts.DebugPath = cfg.Analysis.DebugPath
	}
	if opts.StoryPaths == nil {
		opts.StoryPaths = cfg.Analysis.StoryPaths
	}
	if opts.Palette == nil {
		opts.Palette = cfg.Palette.Colors
	}
}

// reportInvalidJumps warns about transfers whose target label does not exist.
func reportInvalidJumps(r *story.Result) {
	if len(r.InvalidJumps) == 0 {
		return
	}
	total := 0
	for _, labels := range r.InvalidJumps {
		total += len(labels)
	}
	printWarning("%d unresolved jump target(s) in %d unit(s)", total, len(r.InvalidJumps))
	units := make([]string, 0, len(r.InvalidJumps))
	for unitID := range r.InvalidJumps {
		units = append(units, unitID)
	}
	sort.Strings(units)
	for _, unitID := range units {
		for _, label := range r.InvalidJumps[unitID] {
			printDetail("%s %s %s", unitID, iconArrow, label)
		}
	}
}

// reportMissingAssets warns about show/play statements without a matching definition.
func reportMissingAssets(r *story.Result) {
	missing := story.MissingAssets(r.Units, r)
	if len(missing) == 0 {
		printInfo("All referenced assets are defined")
		return
	}
	printWarning("%d undefined asset reference(s)", len(missing))
	for _, ref := range missing {
		printDetail("%s:%d %s", ref.UnitID, ref.Line, ref.Name)
	}
}
