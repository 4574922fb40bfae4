// Package skyline tracks the height profile of a fixed-width canvas.
//
// # Overview
//
// A [Skyline] is an ordered list of [Segment] values that partitions the
// half-open range [0, width) with no gaps and no overlaps. Each segment
// records the lowest free y-coordinate over its x-range. The packer asks the
// skyline where a rectangle of a given width can sit lowest ([Skyline.Query])
// and then raises the covered range ([Skyline.Commit]).
//
// # Placement Rule
//
// A rectangle of width w placed at x rests on the tallest segment in
// [x, x+w). Query returns the x with the lowest such resting height; among
// equal heights the leftmost x wins. Only segment left edges are candidate
// positions: moving a footprint left to the start of the segment it begins
// in never raises its resting height.
//
// # Invariants
//
// After every Commit the segment list still covers exactly [0, width),
// segments are non-empty, contiguous, non-negative in height, and adjacent
// segments never share a height. The number of segments is bounded by
// 2×commits+1.
package skyline

import (
	"fmt"
	"strings"

	"github.com/matzehuels/photopack/pkg/errors"
)

// Segment is a maximal x-range [XStart, XEnd) sharing one skyline height.
type Segment struct {
	XStart int `json:"x_start"`
	XEnd   int `json:"x_end"`
	Height int `json:"height"`
}

// Width returns the number of columns covered by the segment.
func (s Segment) Width() int { return s.XEnd - s.XStart }

func (s Segment) String() string { return fmt.Sprintf("[%d,%d)@%d", s.XStart, s.XEnd, s.Height) }

// Skyline is the height profile of one canvas. It is not safe for concurrent
// use; a packing run owns its skyline exclusively.
type Skyline struct {
	width int
	segs  []Segment
}

// New returns a flat skyline of the given width at height 0.
func New(width int) (*Skyline, error) {
	if err := errors.ValidateCanvasWidth(width); err != nil {
		return nil, err
	}
	return &Skyline{
		width: width,
		segs:  []Segment{{XStart: 0, XEnd: width, Height: 0}},
	}, nil
}

// Width returns the canvas width the skyline spans.
func (s *Skyline) Width() int { return s.width }

// Len returns the current number of segments.
func (s *Skyline) Len() int { return len(s.segs) }

// Segments returns a copy of the segment list, ordered by x.
func (s *Skyline) Segments() []Segment {
	out := make([]Segment, len(s.segs))
	copy(out, s.segs)
	return out
}

// MaxHeight returns the tallest segment height, which is the height of
// everything committed so far.
func (s *Skyline) MaxHeight() int {
	var h int
	for _, seg := range s.segs {
		h = max(h, seg.Height)
	}
	return h
}

// Query returns the lowest position for a rectangle of the given width.
//
// The returned y is the maximum segment height under [x, x+width); x is the
// leftmost segment edge achieving the minimum y. Query fails with
// ErrCodeOversizedPhoto if width exceeds the skyline width and with
// ErrCodeInvalidInput if width is not positive. Query does not modify s.
//
// Every candidate footprint is scanned once with a sliding window maximum,
// so a query costs O(segments).
func (s *Skyline) Query(width int) (x, y int, err error) {
	if width <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "query width must be positive, got %d", width)
	}
	if width > s.width {
		return 0, 0, errors.New(errors.ErrCodeOversizedPhoto, "width %d exceeds canvas width %d", width, s.width)
	}

	// window holds indices of segments inside the current footprint whose
	// heights strictly decrease from front to back; its front is the maximum.
	window := make([]int, 0, len(s.segs))
	head := 0
	last := -1
	found := false

	for i, seg := range s.segs {
		end := seg.XStart + width
		if end > s.width {
			break
		}
		for last+1 < len(s.segs) && s.segs[last+1].XStart < end {
			last++
			h := s.segs[last].Height
			for len(window) > head && s.segs[window[len(window)-1]].Height <= h {
				window = window[:len(window)-1]
			}
			window = append(window, last)
		}
		for window[head] < i {
			head++
		}

		if h := s.segs[window[head]].Height; !found || h < y {
			x, y, found = seg.XStart, h, true
		}
	}

	if !found {
		return 0, 0, errors.Invariant("", s.String(), "no run of width %d fits a canvas of width %d", width, s.width)
	}
	return x, y, nil
}

// Commit raises the range [x, x+width) to newHeight.
//
// Segments straddling either boundary are split, the covered interior is
// replaced by a single segment, and neighbours of equal height are merged.
// Arguments outside the canvas are rejected with ErrCodeInvalidInput. If the
// resulting list fails [Skyline.Validate] the error is an
// ErrCodeInternalInvariant carrying a dump of the segments.
func (s *Skyline) Commit(x, width, newHeight int) error {
	if width <= 0 || x < 0 || x+width > s.width {
		return errors.New(errors.ErrCodeInvalidInput, "commit range [%d,%d) outside canvas [0,%d)", x, x+width, s.width)
	}
	if newHeight < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "commit height must be non-negative, got %d", newHeight)
	}

	end := x + width
	out := make([]Segment, 0, len(s.segs)+2)
	placed := false
	for _, seg := range s.segs {
		if seg.XEnd <= x || seg.XStart >= end {
			out = appendMerged(out, seg)
			continue
		}
		if seg.XStart < x {
			out = appendMerged(out, Segment{XStart: seg.XStart, XEnd: x, Height: seg.Height})
		}
		if !placed {
			out = appendMerged(out, Segment{XStart: x, XEnd: end, Height: newHeight})
			placed = true
		}
		if seg.XEnd > end {
			out = appendMerged(out, Segment{XStart: end, XEnd: seg.XEnd, Height: seg.Height})
		}
	}
	s.segs = out

	if err := s.Validate(); err != nil {
		return errors.Invariant("", s.String(), "commit [%d,%d)@%d: %v", x, end, newHeight, err)
	}
	return nil
}

// appendMerged appends seg, folding it into the last segment when both are
// adjacent and equally tall.
func appendMerged(segs []Segment, seg Segment) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Height == seg.Height && segs[n-1].XEnd == seg.XStart {
		segs[n-1].XEnd = seg.XEnd
		return segs
	}
	return append(segs, seg)
}

// Validate checks that the segments partition [0, width) exactly.
// It returns a plain error describing the first violation found.
func (s *Skyline) Validate() error {
	if len(s.segs) == 0 {
		return fmt.Errorf("no segments")
	}
	if s.segs[0].XStart != 0 {
		return fmt.Errorf("first segment starts at %d, want 0", s.segs[0].XStart)
	}
	for i, seg := range s.segs {
		if seg.XEnd <= seg.XStart {
			return fmt.Errorf("segment %d %v is empty", i, seg)
		}
		if seg.Height < 0 {
			return fmt.Errorf("segment %d %v has negative height", i, seg)
		}
		if i == 0 {
			continue
		}
		prev := s.segs[i-1]
		if prev.XEnd != seg.XStart {
			return fmt.Errorf("gap or overlap between %v and %v", prev, seg)
		}
		if prev.Height == seg.Height {
			return fmt.Errorf("unmerged neighbours %v and %v", prev, seg)
		}
	}
	if last := s.segs[len(s.segs)-1]; last.XEnd != s.width {
		return fmt.Errorf("last segment ends at %d, want %d", last.XEnd, s.width)
	}
	return nil
}

// String dumps the segments, e.g. "[0,500)@450 [500,1500)@0".
func (s *Skyline) String() string {
	parts := make([]string, len(s.segs))
	for i, seg := range s.segs {
		parts[i] = seg.String()
	}
	return strings.Join(parts, " ")
}
