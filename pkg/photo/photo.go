// Package photo holds the immutable input of a packing run: the photos and
// the fixed-width canvas they are packed onto.
package photo

import (
	"fmt"

	"github.com/matzehuels/photopack/pkg/errors"
)

// Photo is a fixed-size rectangle with a unique identity.
// Dimensions are in canvas cells (typically pixels).
type Photo struct {
	ID     string `json:"id" toml:"id"`
	Width  int    `json:"width" toml:"width"`
	Height int    `json:"height" toml:"height"`
}

// Area returns the number of canvas cells the photo covers.
func (p Photo) Area() int { return p.Width * p.Height }

func (p Photo) String() string { return fmt.Sprintf("%s (%dx%d)", p.ID, p.Width, p.Height) }

// Canvas is a fixed-width, unbounded-height surface together with the photos
// to be packed onto it. A Canvas is never modified after construction.
type Canvas struct {
	width  int
	photos []Photo
	index  map[string]int
}

// NewCanvas validates width and photos and returns the canvas.
//
// It rejects a non-positive width, empty or duplicate photo ids and photos
// with non-positive sides. Photos wider than the canvas are accepted here;
// they are reported by [Canvas.Oversized] and rejected by the packer before
// any placement happens. The photos slice is copied.
func NewCanvas(width int, photos []Photo) (*Canvas, error) {
	if err := errors.ValidateCanvasWidth(width); err != nil {
		return nil, err
	}

	c := &Canvas{
		width:  width,
		photos: make([]Photo, len(photos)),
		index:  make(map[string]int, len(photos)),
	}
	for i, p := range photos {
		if err := errors.ValidatePhotoID(p.ID); err != nil {
			return nil, err
		}
		if err := errors.ValidateDimensions(p.ID, p.Width, p.Height); err != nil {
			return nil, err
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate photo id %q", p.ID)
		}
		c.index[p.ID] = i
		c.photos[i] = p
	}
	return c, nil
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.width }

// Len returns the number of photos.
func (c *Canvas) Len() int { return len(c.photos) }

// Photos returns a copy of the photos in input order.
func (c *Canvas) Photos() []Photo {
	out := make([]Photo, len(c.photos))
	copy(out, c.photos)
	return out
}

// Photo looks up a photo by id.
func (c *Canvas) Photo(id string) (Photo, bool) {
	i, ok := c.index[id]
	if !ok {
		return Photo{}, false
	}
	return c.photos[i], true
}

// Oversized returns the photos wider than the canvas, in input order.
func (c *Canvas) Oversized() []Photo {
	var out []Photo
	for _, p := range c.photos {
		if p.Width > c.width {
			out = append(out, p)
		}
	}
	return out
}

// TotalArea returns the summed area of all photos.
func (c *Canvas) TotalArea() int {
	var total int
	for _, p := range c.photos {
		total += p.Area()
	}
	return total
}
