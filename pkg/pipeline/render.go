package pipeline

import (
	"context"
	"fmt"

	"github.com/plotweave/plotweave/pkg/render"
	"github.com/plotweave/plotweave/pkg/story"
)

// Render generates every requested artifact from an analysis result.
// Artifacts are keyed by format.
func Render(ctx context.Context, analysis *story.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var dot string
	switch opts.Graph {
	case GraphRoutes:
		dot = render.RoutesDOT(analysis)
	default:
		dot = render.UnitsDOT(analysis, render.Options{Detailed: opts.Detailed})
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderOne(ctx, analysis, dot, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderOne(ctx context.Context, analysis *story.Result, dot, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return render.SVG(ctx, dot)
	case FormatPNG:
		return render.PNG(ctx, dot)
	case FormatJSON:
		return story.MarshalResult(analysis)
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}
