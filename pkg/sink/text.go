package sink

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/photopack/pkg/grid"
)

// DefaultPlaceholder marks empty cells in the text view.
const DefaultPlaceholder = "---"

// TextOption configures text rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	placeholder string
	separator   string
	scale       int
	pad         bool
}

// WithPlaceholder sets the marker printed for empty cells.
func WithPlaceholder(s string) TextOption { return func(r *textRenderer) { r.placeholder = s } }

// WithSeparator sets the string printed between cells (default a single space).
func WithSeparator(s string) TextOption { return func(r *textRenderer) { r.separator = s } }

// WithScale prints one cell per n×n block of the grid, sampled at the
// block's top-left cell. Values below 1 are ignored.
func WithScale(n int) TextOption {
	return func(r *textRenderer) {
		if n >= 1 {
			r.scale = n
		}
	}
}

// WithPadding right-pads every cell to the widest label so columns line up.
// Labels are measured in terminal cells, not bytes.
func WithPadding() TextOption { return func(r *textRenderer) { r.pad = true } }

// RenderText renders g row by row. Every cell is printed as the id of the
// photo covering it or the placeholder, and every row ends with a separator
// followed by a newline. An empty grid renders as no output.
func RenderText(g *grid.Grid, opts ...TextOption) []byte {
	r := textRenderer{placeholder: DefaultPlaceholder, separator: " ", scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	width := 0
	if r.pad {
		width = lipgloss.Width(r.placeholder)
		for y := 0; y < g.Height(); y += r.scale {
			for x := 0; x < g.Width(); x += r.scale {
				if p := g.At(x, y); p != nil {
					width = max(width, lipgloss.Width(p.ID))
				}
			}
		}
	}

	var buf bytes.Buffer
	for y := 0; y < g.Height(); y += r.scale {
		for x := 0; x < g.Width(); x += r.scale {
			label := r.placeholder
			if p := g.At(x, y); p != nil {
				label = p.ID
			}
			buf.WriteString(label)
			if n := lipgloss.Width(label); n < width {
				buf.WriteString(strings.Repeat(" ", width-n))
			}
			buf.WriteString(r.separator)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
