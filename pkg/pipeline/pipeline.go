// Package pipeline provides the packing pipeline shared by every photopack
// entry point.
//
// # Architecture
//
// The pipeline runs four stages:
//
//  1. Load: read a JSON or TOML photo manifest into a [photo.Canvas]
//  2. Pack: order the photos and drop each onto the skyline
//  3. Materialize: build the occupancy grid and verify no cell is shared
//  4. Render: produce the requested outputs (text grid, JSON document)
//
// Pack results and rendered outputs are cached through a [cache.Cache];
// packing is deterministic, so a hit is indistinguishable from a fresh run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Manifest: "photos.toml",
//	    Formats:  []string{pipeline.FormatText},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Artifacts[pipeline.FormatText])
//
// Run individual stages:
//
//	res, hit, err := runner.PackWithCacheInfo(ctx, canvas, opts)
//	artifacts, err := runner.Render(ctx, canvas, res, opts)
package pipeline

import (
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photopack/pkg/cache"
	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/grid"
	"github.com/matzehuels/photopack/pkg/pack"
	"github.com/matzehuels/photopack/pkg/pack/ordering"
	"github.com/matzehuels/photopack/pkg/photo"
	"github.com/matzehuels/photopack/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Users
// =============================================================================

const (
	// DefaultWidth is the canvas width used when neither the options nor the
	// manifest set one.
	DefaultWidth = 1500

	// DefaultOrdering is the default ordering heuristic.
	DefaultOrdering = ordering.NameTallest

	// DefaultFormat is the output produced when no format is requested.
	DefaultFormat = FormatText

	// DefaultScale prints every grid cell.
	DefaultScale = 1
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the packing pipeline.
type Options struct {
	// Load options
	Manifest string `json:"manifest,omitempty"` // path to a .json or .toml manifest

	// Pack options
	Width         int    `json:"width,omitempty"`          // overrides the manifest width when positive
	FallbackWidth int    `json:"fallback_width,omitempty"` // used when neither Width nor the manifest sets one
	Ordering      string `json:"ordering,omitempty"`
	Refresh       bool   `json:"refresh,omitempty"` // ignore cached results

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Scale       int      `json:"scale,omitempty"`
	Pad         bool     `json:"pad,omitempty"`     // align text columns to the longest id
	Skyline     bool     `json:"skyline,omitempty"` // include skyline segments in JSON output

	// Runtime options (not serialized)
	TTL     time.Duration    `json:"-"`
	Logger  *log.Logger      `json:"-"`
	Orderer ordering.Orderer `json:"-"` // takes precedence over Ordering

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Canvas holds the loaded photos.
	Canvas *photo.Canvas

	// Pack is the packing result.
	Pack *pack.Result

	// PhotosHash is the content hash of the photo list.
	PhotosHash string

	// Grid is the materialized occupancy grid.
	Grid *grid.Grid

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PhotoCount int
	Width      int
	Height     int
	Coverage   float64
	LoadTime   time.Duration
	PackTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PackHit   bool // Whether the packing result came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrdering checks that an ordering name is known.
func ValidateOrdering(name string) error {
	_, err := ordering.ByName(name)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width < 0 {
		return errors.ValidateCanvasWidth(o.Width)
	}
	if o.FallbackWidth < 0 {
		return errors.ValidateCanvasWidth(o.FallbackWidth)
	}
	if o.Ordering == "" {
		o.Ordering = DefaultOrdering
	}
	if o.Orderer == nil {
		orderer, err := ordering.ByName(o.Ordering)
		if err != nil {
			return err
		}
		o.Orderer = orderer
	}
	o.Ordering = o.Orderer.Name()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.TTL == 0 {
		o.TTL = cache.DefaultTTL
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = dedupe(o.Formats)
	if o.Placeholder == "" {
		o.Placeholder = sink.DefaultPlaceholder
	}
	if o.Scale < 1 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PackKeyOpts returns cache key options for a packing run on canvas c.
func (o *Options) PackKeyOpts(c *photo.Canvas) cache.PackKeyOpts {
	return cache.PackKeyOpts{Width: c.Width(), Ordering: o.Ordering}
}

// artifactVariant names a format together with the options that change its
// bytes, for use in artifact cache keys.
func (o *Options) artifactVariant(format string) string {
	switch format {
	case FormatText:
		return format + ":" + o.Placeholder + ":" + strconv.Itoa(o.Scale) + ":" + strconv.FormatBool(o.Pad)
	case FormatJSON:
		if o.Skyline {
			return format + ":skyline"
		}
	}
	return format
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
