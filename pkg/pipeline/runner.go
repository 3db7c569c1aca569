package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/plotweave/plotweave/pkg/cache"
	"github.com/plotweave/plotweave/pkg/layout"
	"github.com/plotweave/plotweave/pkg/observability"
	"github.com/plotweave/plotweave/pkg/story"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete analyze → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Analyze
	analyzeStart := time.Now()
	observability.Pipeline().OnAnalyzeStart(ctx, len(opts.Units))
	analysis, analyzeHit, err := r.AnalyzeWithCacheInfo(ctx, opts)
	if err != nil {
		observability.Pipeline().OnAnalyzeComplete(ctx, 0, 0, time.Since(analyzeStart), err)
		return nil, fmt.Errorf("analyze: %w", err)
	}
	observability.Pipeline().OnAnalyzeComplete(ctx, len(analysis.Units), len(analysis.Links), time.Since(analyzeStart), nil)
	result.Analysis = analysis
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.UnitCount = len(analysis.Units)
	result.Stats.LinkCount = len(analysis.Links)
	result.Stats.RouteCount = len(analysis.Routes)
	result.CacheInfo.AnalyzeHit = analyzeHit

	// Compute result hash for cache keys and API responses
	if data, err := story.MarshalResult(analysis); err == nil {
		result.AnalysisHash = cache.Hash(data)
	}

	r.Logger.Info("analyzed script",
		"units", len(analysis.Units),
		"links", len(analysis.Links),
		"routes", len(analysis.Routes),
		"duration", result.Stats.AnalyzeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(analysis.Units))
	positions, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, analysis, result.AnalysisHash, opts)
	observability.Pipeline().OnLayoutComplete(ctx, time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Positions = positions
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"positions", len(positions),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, analysis, result.AnalysisHash, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AnalyzeWithCacheInfo runs the analysis stage with caching and returns cache hit info.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, opts Options) (*story.Result, bool, error) {
	if err := opts.ValidateForAnalyze(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	units, err := ResolveUnits(opts)
	if err != nil {
		return nil, false, err
	}

	// Cache key from the unit texts themselves, so any edit invalidates
	unitData, _ := json.Marshal(units)
	cacheKey := r.Keyer.AnalysisKey(cache.Hash(unitData), opts.AnalysisKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := story.UnmarshalResult(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "analysis")
				return cached, true, nil // Cache hit
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "analysis")

	analysis := story.Analyze(units, opts.AnalysisOptions())

	if data, err := story.MarshalResult(analysis); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLAnalysis)
		observability.Cache().OnCacheSet(ctx, "analysis", len(data))
	}

	return analysis, false, nil // Cache miss
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, opts Options) (*story.Result, error) {
	analysis, _, err := r.AnalyzeWithCacheInfo(ctx, opts)
	return analysis, err
}

// ComputeLayoutWithCacheInfo computes positions with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, analysis *story.Result, analysisHash string, opts Options) (map[string]layout.Point, bool, error) {
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(analysisHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached map[string]layout.Point
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	positions := ComputeLayout(analysis, opts)

	if data, err := json.Marshal(positions); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return positions, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, analysis *story.Result, opts Options) (map[string]layout.Point, error) {
	if data, err := story.MarshalResult(analysis); err == nil {
		positions, _, err := r.ComputeLayoutWithCacheInfo(ctx, analysis, cache.Hash(data), opts)
		return positions, err
	}
	return ComputeLayout(analysis, opts), nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, analysis *story.Result, analysisHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	allCached := false
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		allCached = true
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(analysisHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := Render(ctx, analysis, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(analysisHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
