package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotweave/plotweave/pkg/cache"
	"github.com/plotweave/plotweave/pkg/pipeline"
	"github.com/plotweave/plotweave/pkg/story"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single graph/format) or base path
	graphs   []string // graph flavors: "units", "routes"
	formats  []string // output formats: "svg", "png", "dot", "json"
	detailed bool     // include content annotations in unit boxes
	noCache  bool     // disable caching
	refresh  bool     // recompute even if cached
}

// renderCommand creates the render command for generating diagrams.
// It supports both graph flavors (units, routes) and all pipeline formats.
func (c *CLI) renderCommand() *cobra.Command {
	var graphsStr, formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [analysis.json]",
		Short: "Render an analysis result to diagram files",
		Long: `Render an analysis result to diagram files.

The render command takes an analysis.json file (produced by 'analyze') and
generates diagrams. The units graph shows script files and the jumps between
them; the routes graph shows labels, edges, and enumerated narrative routes
in their palette colors.

Output files are named <base>.<format>, or <base>_<graph>.<format> when more
than one graph flavor is requested.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.graphs = parseGraphs(graphsStr)
			opts.formats = parseFormats(formatsStr)
			for _, g := range opts.graphs {
				if err := pipeline.ValidateGraph(g); err != nil {
					return err
				}
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single graph/format) or base path (multiple)")
	cmd.Flags().StringVarP(&graphsStr, "graph", "g", "", "graph flavor(s): units (default), routes (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include content annotations in unit boxes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runRender loads the analysis and renders every graph/format combination.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	analysis, err := story.ReadResultFile(input)
	if err != nil {
		return fmt.Errorf("load analysis %s: %w", input, err)
	}
	data, err := story.MarshalResult(analysis)
	if err != nil {
		return fmt.Errorf("hash analysis: %w", err)
	}
	hash := cache.Hash(data)

	runner, err := c.newRunner(ctx, "", opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	base := basePath(opts.output, input)
	single := len(opts.graphs) == 1 && len(opts.formats) == 1 && opts.output != ""

	for _, graph := range opts.graphs {
		pipeOpts := pipeline.Options{
			Graph:    graph,
			Formats:  opts.formats,
			Detailed: opts.detailed,
			Refresh:  opts.refresh,
			Logger:   c.Logger,
		}

		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s graph...", graph))
		spinner.Start()

		artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, analysis, hash, pipeOpts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render %s: %w", graph, err)
		}
		spinner.Stop()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		for _, format := range opts.formats {
			path := opts.output
			if !single {
				if len(opts.graphs) == 1 {
					path = fmt.Sprintf("%s.%s", base, format)
				} else {
					path = fmt.Sprintf("%s_%s.%s", base, graph, format)
				}
			}
			if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
				return fmt.Errorf("write output %s: %w", path, err)
			}
			printFile(path)
		}
		printStats(len(analysis.Units), len(analysis.Links), len(analysis.Routes), cacheHit)
	}

	printSuccess("Render complete")
	return nil
}
