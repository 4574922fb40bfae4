package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photopack/pkg/cache"
	"github.com/matzehuels/photopack/pkg/grid"
	pkgio "github.com/matzehuels/photopack/pkg/io"
	"github.com/matzehuels/photopack/pkg/observability"
	"github.com/matzehuels/photopack/pkg/pack"
	"github.com/matzehuels/photopack/pkg/photo"
)

// Runner encapsulates pipeline execution with caching.
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

// Execute loads opts.Manifest and runs the complete pipeline on it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	c, err := Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	r.Logger.Info("loaded photos",
		"photos", c.Len(),
		"width", c.Width(),
		"duration", loadTime)

	result, err := r.ExecuteCanvas(ctx, c, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// ExecuteCanvas runs the pack → materialize → render stages on a loaded canvas.
func (r *Runner) ExecuteCanvas(ctx context.Context, c *photo.Canvas, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Canvas:     c,
		PhotosHash: PhotosHash(c),
		Artifacts:  make(map[string][]byte),
	}
	result.Stats.PhotoCount = c.Len()
	result.Stats.Width = c.Width()

	// Stage 1: Pack
	packStart := time.Now()
	res, packHit, err := r.PackWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("pack: %w", err)
	}
	result.Pack = res
	result.Stats.PackTime = time.Since(packStart)
	result.Stats.Height = res.Height
	result.CacheInfo.PackHit = packHit

	r.Logger.Info("packed photos",
		"photos", len(res.Placements),
		"height", res.Height,
		"ordering", res.Ordering,
		"cached", packHit,
		"duration", result.Stats.PackTime)

	// Stage 2: Materialize. Cached results go through the same overlap check.
	g, err := grid.FromResult(c, res)
	if err != nil && packHit {
		r.Logger.Warn("cached placements rejected, repacking", "error", err)
		fresh := opts
		fresh.Refresh = true
		if res, _, err = r.PackWithCacheInfo(ctx, c, fresh); err != nil {
			return nil, fmt.Errorf("pack: %w", err)
		}
		result.Pack = res
		result.Stats.Height = res.Height
		result.CacheInfo.PackHit = false
		g, err = grid.FromResult(c, res)
	}
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	result.Grid = g
	result.Stats.Coverage = g.Coverage()

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, res, g, opts)
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

// PackWithCacheInfo packs c with caching and returns cache hit info.
func (r *Runner) PackWithCacheInfo(ctx context.Context, c *photo.Canvas, opts Options) (*pack.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.PackKey(PhotosHash(c), opts.PackKeyOpts(c))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			res, err := pkgio.ReadResult(bytes.NewReader(data))
			if err == nil && res.Width == c.Width() && len(res.Placements) == c.Len() {
				observability.Cache().OnCacheHit(ctx, "pack")
				return res, true, nil // Cache hit
			}
			// Stale or unreadable entry, fall through to repack
		} else if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "pack")
	}

	res, err := Pack(ctx, c, opts)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := pkgio.WriteResult(res, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "pack", buf.Len())
		}
	}

	return res, false, nil // Cache miss
}

// RenderWithCacheInfo renders every requested format with caching and
// returns whether all of them came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *photo.Canvas, res *pack.Result, g *grid.Grid, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := pkgio.WriteResult(res, &buf); err != nil {
		return nil, false, fmt.Errorf("serialize result for cache key: %w", err)
	}
	resultHash := cache.Hash(buf.Bytes())

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(resultHash, opts.artifactVariant(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := Render(ctx, c, res, g, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(resultHash, opts.artifactVariant(format))
		if err := r.Cache.Set(ctx, key, data, opts.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
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

// PhotosHash returns the content hash of the photos of c, in input order.
// The canvas width is not part of the hash.
func PhotosHash(c *photo.Canvas) string {
	data, _ := json.Marshal(c.Photos())
	return cache.Hash(data)
}
