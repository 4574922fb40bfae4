package sink

import (
	"encoding/json"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/grid"
	"github.com/matzehuels/photopack/pkg/pack"
	"github.com/matzehuels/photopack/pkg/photo"
	"github.com/matzehuels/photopack/pkg/skyline"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	grid    *grid.Grid
	skyline bool
}

// WithJSONGrid records the coverage of a materialized grid in the output.
func WithJSONGrid(g *grid.Grid) JSONOption { return func(r *jsonRenderer) { r.grid = g } }

// WithJSONSkyline includes the final skyline segments in the output.
func WithJSONSkyline() JSONOption { return func(r *jsonRenderer) { r.skyline = true } }

type jsonOutput struct {
	Width      int               `json:"width"`
	Height     int               `json:"height"`
	Ordering   string            `json:"ordering,omitempty"`
	Coverage   *float64          `json:"coverage,omitempty"`
	Placements []jsonPlacement   `json:"placements"`
	Skyline    []skyline.Segment `json:"skyline,omitempty"`
}

type jsonPlacement struct {
	ID     string `json:"id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RenderJSON exports a packing result of c as a pretty-printed JSON document.
// Placements appear in placement order with the dimensions of their photo.
// It fails with ErrCodeInternalInvariant if a placement names a photo c does
// not hold.
func RenderJSON(c *photo.Canvas, res *pack.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      res.Width,
		Height:     res.Height,
		Ordering:   res.Ordering,
		Placements: make([]jsonPlacement, 0, len(res.Placements)),
	}
	for _, pl := range res.Placements {
		ph, ok := c.Photo(pl.PhotoID)
		if !ok {
			return nil, errors.Invariant(pl.PhotoID, "", "placement references unknown photo")
		}
		out.Placements = append(out.Placements, jsonPlacement{
			ID: pl.PhotoID, X: pl.X, Y: pl.Y, Width: ph.Width, Height: ph.Height,
		})
	}
	if r.grid != nil {
		cov := r.grid.Coverage()
		out.Coverage = &cov
	}
	if r.skyline {
		out.Skyline = res.Skyline
	}

	return json.MarshalIndent(out, "", "  ")
}
