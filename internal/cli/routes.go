package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plotweave/plotweave/pkg/routes"
	"github.com/plotweave/plotweave/pkg/story"
)

// routesCommand creates the routes command for inspecting narrative routes.
func (c *CLI) routesCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "routes [analysis.json]",
		Short: "List the narrative routes of an analysis result",
		Long: `List the narrative routes of an analysis result.

Every route is one complete path through the label graph, from an entry label
to a terminal one. Routes are listed with their palette color, length, and the
sequence of labels they pass through.

With --interactive, routes open in a browsable list; enter expands the full
label sequence of the selected route.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := story.ReadResultFile(args[0])
			if err != nil {
				return fmt.Errorf("load analysis %s: %w", args[0], err)
			}
			summaries := summarizeRoutes(analysis)
			if interactive {
				return browseRoutes(summaries)
			}
			printRoutes(summaries)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse routes interactively")

	return cmd
}

// routeSummary is one route resolved into its label sequence.
type routeSummary struct {
	ID     string
	Color  string
	Labels []string // label names in traversal order
	Kinds  []string // edge kinds between consecutive labels
}

// summarizeRoutes resolves each route's edge ids into node label sequences.
func summarizeRoutes(r *story.Result) []routeSummary {
	nodeByID := make(map[string]routes.Node, len(r.LabelNodes))
	for _, n := range r.LabelNodes {
		nodeByID[n.ID] = n
	}
	edgeByID := make(map[string]routes.Edge, len(r.RouteEdges))
	for _, e := range r.RouteEdges {
		edgeByID[e.ID] = e
	}

	summaries := make([]routeSummary, 0, len(r.Routes))
	for _, route := range r.Routes {
		s := routeSummary{ID: route.ID, Color: route.Color}
		for i, edgeID := range route.EdgeIDs {
			e, ok := edgeByID[edgeID]
			if !ok {
				continue
			}
			if i == 0 {
				s.Labels = append(s.Labels, nodeByID[e.Source].Label)
			}
			s.Labels = append(s.Labels, nodeByID[e.Target].Label)
			s.Kinds = append(s.Kinds, string(e.Kind))
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// path joins the label sequence with arrows, truncated to maxLen runes.
func (s routeSummary) path(maxLen int) string {
	p := strings.Join(s.Labels, " "+iconArrow+" ")
	runes := []rune(p)
	if maxLen > 0 && len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return p
}

// printRoutes prints a static route listing.
func printRoutes(summaries []routeSummary) {
	if len(summaries) == 0 {
		printInfo("No routes found")
		return
	}
	printInfo("%d route(s)", len(summaries))
	for _, s := range summaries {
		fmt.Println("  " + swatch(s.Color) + " " + StyleValue.Render(s.ID) +
			StyleDim.Render(fmt.Sprintf(" (%d labels)", len(s.Labels))))
		printDetail("%s", s.path(100))
	}
}

// browseRoutes runs the interactive route browser.
func browseRoutes(summaries []routeSummary) error {
	if len(summaries) == 0 {
		printInfo("No routes found")
		return nil
	}
	_, err := tea.NewProgram(newRouteBrowser(summaries)).Run()
	return err
}
