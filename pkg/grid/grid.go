// Package grid materializes placements into a per-cell occupancy view.
//
// A [Grid] is derived from a finished placement list; it makes no placement
// decisions. Materializing doubles as a validation pass: any cell claimed by
// two photos is reported as an internal invariant violation, since the
// skyline must never produce overlapping footprints.
package grid

import (
	"fmt"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/pack"
	"github.com/matzehuels/photopack/pkg/photo"
)

// Grid is an ordered sequence of rows, each canvas-width cells wide. A cell
// is nil when empty, otherwise it references the photo covering it. Cells
// share photo values; the placement list remains the source of truth.
type Grid struct {
	width int
	rows  [][]*photo.Photo
}

// Materialize builds the grid for placements on a canvas of the given width.
//
// The grid has max(y + height) rows over all placements, zero for none.
// photos supplies the dimensions for each placement's PhotoID. Unknown ids,
// footprints outside [0, width) and cells written twice are reported with
// ErrCodeInternalInvariant.
func Materialize(width int, photos []photo.Photo, placements []pack.Placement) (*Grid, error) {
	if err := errors.ValidateCanvasWidth(width); err != nil {
		return nil, err
	}

	owned := make([]photo.Photo, len(photos))
	copy(owned, photos)
	byID := make(map[string]*photo.Photo, len(owned))
	for i := range owned {
		byID[owned[i].ID] = &owned[i]
	}

	height := 0
	for _, pl := range placements {
		ph, ok := byID[pl.PhotoID]
		if !ok {
			return nil, errors.Invariant(pl.PhotoID, "", "placement references unknown photo")
		}
		if pl.X < 0 || pl.Y < 0 || pl.X+ph.Width > width {
			return nil, errors.Invariant(pl.PhotoID, fmt.Sprintf("placement (%d,%d) size %dx%d", pl.X, pl.Y, ph.Width, ph.Height),
				"footprint outside canvas width %d", width)
		}
		height = max(height, pl.Y+ph.Height)
	}

	g := New(width)
	g.Grow(height)
	for _, pl := range placements {
		if err := g.fill(byID[pl.PhotoID], pl.X, pl.Y); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// FromResult materializes a packing result for the photos of c.
func FromResult(c *photo.Canvas, r *pack.Result) (*Grid, error) {
	return Materialize(c.Width(), c.Photos(), r.Placements)
}

// New returns an empty grid with no rows.
func New(width int) *Grid {
	return &Grid{width: width}
}

// Grow appends empty rows until the grid is at least height rows tall.
// Grids never shrink.
func (g *Grid) Grow(height int) {
	for len(g.rows) < height {
		g.rows = append(g.rows, make([]*photo.Photo, g.width))
	}
}

func (g *Grid) fill(ph *photo.Photo, x, y int) error {
	g.Grow(y + ph.Height)
	for row := y; row < y+ph.Height; row++ {
		cells := g.rows[row]
		for col := x; col < x+ph.Width; col++ {
			if prev := cells[col]; prev != nil {
				return errors.Invariant(ph.ID, "",
					"cell (%d,%d) already holds photo %q", col, row, prev.ID)
			}
			cells[col] = ph
		}
	}
	return nil
}

// Width returns the number of cells per row.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.rows) }

// At returns the photo covering cell (x, y), or nil if the cell is empty or
// outside the grid.
func (g *Grid) At(x, y int) *photo.Photo {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= g.width {
		return nil
	}
	return g.rows[y][x]
}

// Row returns row y. The slice is shared with the grid and must not be
// modified.
func (g *Grid) Row(y int) []*photo.Photo { return g.rows[y] }

// Rows returns all rows, top to bottom. The slices are shared with the grid.
func (g *Grid) Rows() [][]*photo.Photo { return g.rows }

// Coverage returns the fraction of cells holding a photo, 0 for an empty grid.
func (g *Grid) Coverage() float64 {
	total := g.width * len(g.rows)
	if total == 0 {
		return 0
	}
	filled := 0
	for _, row := range g.rows {
		for _, cell := range row {
			if cell != nil {
				filled++
			}
		}
	}
	return float64(filled) / float64(total)
}
