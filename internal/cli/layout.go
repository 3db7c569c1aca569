package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plotweave/plotweave/pkg/cache"
	"github.com/plotweave/plotweave/pkg/layout"
	"github.com/plotweave/plotweave/pkg/pipeline"
	"github.com/plotweave/plotweave/pkg/story"
)

// layoutCommand creates the layout command for computing diagram positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [analysis.json]",
		Short: "Compute diagram positions from an analysis result",
		Long: `Compute diagram positions from an analysis result.

The layout command takes an analysis.json file (produced by 'analyze') and
assigns every unit a position in a left-to-right layered diagram. The output
is a layout.json file mapping unit ids to x/y coordinates.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "node box width")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", 0, "node box height")
	cmd.Flags().Float64Var(&opts.HPadding, "h-padding", 0, "horizontal gap between layers")
	cmd.Flags().Float64Var(&opts.VPadding, "v-padding", 0, "vertical gap between nodes")

	return cmd
}

// runLayout loads the analysis, computes positions, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	analysis, err := story.ReadResultFile(input)
	if err != nil {
		return fmt.Errorf("load analysis %s: %w", input, err)
	}
	data, err := story.MarshalResult(analysis)
	if err != nil {
		return fmt.Errorf("hash analysis: %w", err)
	}

	runner, err := c.newRunner(ctx, "", noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	positions, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, analysis, cache.Hash(data), opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}
	if err := layout.WritePositionsFile(positions, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(positions), len(analysis.Links), 0, cacheHit)
	printNewline()
	printNextStep("Render", "plotweave render "+input)

	return nil
}
