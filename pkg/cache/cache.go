package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by every backend. Implementations
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Cache durations per pipeline stage. Analysis results depend only on the
// script text, so they keep for a long time; rendered artifacts are cheap
// to regenerate and expire sooner.
const (
	TTLAnalysis = 7 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// AnalysisKeyOpts are the analysis inputs that affect the result beyond
// the script text itself.
type AnalysisKeyOpts struct {
	DebugPath  string   `json:"debug_path"`
	StoryPaths []string `json:"story_paths"`
	Palette    []string `json:"palette"`
}

// LayoutKeyOpts are the spacing inputs that affect computed positions.
type LayoutKeyOpts struct {
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`
	HPadding   float64 `json:"h_padding"`
	VPadding   float64 `json:"v_padding"`
}

// ArtifactKeyOpts identify one rendered output.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Graph    string `json:"graph"` // "units" or "routes"
	Detailed bool   `json:"detailed"`
}

// Keyer generates cache keys for the pipeline stages. Implementations must
// be deterministic: the same inputs always produce the same key.
type Keyer interface {
	// AnalysisKey keys an analysis result by the hash of the input units.
	AnalysisKey(scriptHash string, opts AnalysisKeyOpts) string

	// LayoutKey keys computed positions by the hash of the analysis result.
	LayoutKey(resultHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys one rendered artifact by the hash of its inputs.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage inputs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AnalysisKey generates a key for an analysis result.
func (k *DefaultKeyer) AnalysisKey(scriptHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", scriptHash, opts)
}

// LayoutKey generates a key for computed layout positions.
func (k *DefaultKeyer) LayoutKey(resultHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", resultHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
