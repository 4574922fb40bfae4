// Package pack places photos onto a fixed-width canvas.
//
// # Overview
//
// Packing is a strict sequential process. Photos are first ordered by an
// [ordering.Orderer] (tallest first by default), then each photo is dropped
// at the lowest, leftmost position the canvas [skyline.Skyline] reports for
// its width, and the skyline is raised over the photo's footprint.
//
//	c, _ := photo.NewCanvas(1500, photos)
//	res, err := pack.Pack(c)
//	if errors.Is(err, errors.ErrCodeOversizedPhoto) {
//	    // a photo is wider than the canvas; nothing was placed
//	}
//
// Pack never touches an occupancy grid; materialize one from
// [Result.Placements] with package grid when a per-cell view is needed.
//
// # Errors
//
// Every photo is checked against the canvas width before the first
// placement, so a run either places every photo or none. Errors coded
// ErrCodeInternalInvariant indicate a defect in the skyline bookkeeping.
package pack

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/pack/ordering"
	"github.com/matzehuels/photopack/pkg/photo"
	"github.com/matzehuels/photopack/pkg/skyline"
)

// Placement is the committed top-left coordinate of one photo.
type Placement struct {
	PhotoID string `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// Result is the outcome of a successful packing run.
type Result struct {
	// Width is the canvas width.
	Width int `json:"width"`
	// Height is the canvas height needed to hold every placement.
	Height int `json:"height"`
	// Ordering names the orderer that produced the placement sequence.
	Ordering string `json:"ordering"`
	// Placements holds one entry per photo, in placement order.
	Placements []Placement `json:"placements"`
	// Skyline is the final height profile.
	Skyline []skyline.Segment `json:"skyline"`
}

// Lookup returns the placement of the photo with the given id.
func (r *Result) Lookup(id string) (Placement, bool) {
	for _, p := range r.Placements {
		if p.PhotoID == id {
			return p, true
		}
	}
	return Placement{}, false
}

// Option configures a packing run.
type Option func(*packer)

type packer struct {
	orderer ordering.Orderer
	logger  *log.Logger
}

// WithOrderer replaces the default [ordering.TallestFirst] orderer.
func WithOrderer(o ordering.Orderer) Option {
	return func(p *packer) {
		if o != nil {
			p.orderer = o
		}
	}
}

// WithLogger enables debug logging of every placement.
func WithLogger(l *log.Logger) Option {
	return func(p *packer) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pack places every photo of c and returns the placements.
//
// Photos wider than the canvas fail the whole run with
// ErrCodeOversizedPhoto naming the first offending photo; no placements are
// returned in that case. Pack does not modify c and may be called
// concurrently on independent canvases.
func Pack(c *photo.Canvas, opts ...Option) (*Result, error) {
	p := packer{
		orderer: ordering.TallestFirst{},
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(&p)
	}

	if over := c.Oversized(); len(over) > 0 {
		return nil, errors.New(errors.ErrCodeOversizedPhoto,
			"photo %q is %d wide, canvas is %d (%d oversized photos)", over[0].ID, over[0].Width, c.Width(), len(over))
	}

	sky, err := skyline.New(c.Width())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ordered := p.orderer.Order(c.Photos())
	placements := make([]Placement, 0, len(ordered))

	for _, ph := range ordered {
		x, y, err := sky.Query(ph.Width)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "place photo %q", ph.ID)
		}
		if err := sky.Commit(x, ph.Width, y+ph.Height); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "place photo %q", ph.ID)
		}
		placements = append(placements, Placement{PhotoID: ph.ID, X: x, Y: y})
		p.logger.Debug("placed photo", "id", ph.ID, "x", x, "y", y, "segments", sky.Len())
	}

	res := &Result{
		Width:      c.Width(),
		Height:     sky.MaxHeight(),
		Ordering:   p.orderer.Name(),
		Placements: placements,
		Skyline:    sky.Segments(),
	}
	p.logger.Debug("packed canvas",
		"photos", len(placements),
		"height", res.Height,
		"ordering", res.Ordering,
		"duration", time.Since(start))
	return res, nil
}
