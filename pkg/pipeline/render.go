package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/photopack/pkg/grid"
	pkgio "github.com/matzehuels/photopack/pkg/io"
	"github.com/matzehuels/photopack/pkg/observability"
	"github.com/matzehuels/photopack/pkg/pack"
	"github.com/matzehuels/photopack/pkg/photo"
	"github.com/matzehuels/photopack/pkg/sink"
)

// Load reads opts.Manifest and builds its canvas. opts.Width overrides the
// manifest width; opts.FallbackWidth, then DefaultWidth, apply when neither
// sets one.
func Load(opts Options) (*photo.Canvas, error) {
	if opts.Manifest == "" {
		return nil, fmt.Errorf("manifest is required")
	}
	m, err := pkgio.ImportManifest(opts.Manifest)
	if err != nil {
		return nil, err
	}
	width := opts.Width
	if width <= 0 && m.Width <= 0 {
		width = opts.FallbackWidth
		if width <= 0 {
			width = DefaultWidth
		}
	}
	return m.Canvas(width)
}

// Pack runs the packer on c without caching.
func Pack(ctx context.Context, c *photo.Canvas, opts Options) (*pack.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnPackStart(ctx, opts.Ordering, c.Len(), c.Width())
	start := time.Now()

	res, err := pack.Pack(c, pack.WithOrderer(opts.Orderer), pack.WithLogger(opts.Logger))

	placed, height := 0, 0
	if res != nil {
		placed, height = len(res.Placements), res.Height
	}
	hooks.OnPackComplete(ctx, opts.Ordering, placed, height, time.Since(start), err)
	return res, err
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, c *photo.Canvas, res *pack.Result, g *grid.Grid, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatText:
			textOpts := []sink.TextOption{sink.WithPlaceholder(opts.Placeholder), sink.WithScale(opts.Scale)}
			if opts.Pad {
				textOpts = append(textOpts, sink.WithPadding())
			}
			data = sink.RenderText(g, textOpts...)
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONGrid(g)}
			if opts.Skyline {
				jsonOpts = append(jsonOpts, sink.WithJSONSkyline())
			}
			data, err = sink.RenderJSON(c, res, jsonOpts...)
		}
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}
