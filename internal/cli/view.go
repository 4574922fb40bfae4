package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/photopack/pkg/pipeline"
)

// viewColumns is the number of text cells the auto scale aims for.
const viewColumns = 60

// viewCommand creates the interactive grid viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var flags packFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "view [photos.json|photos.toml]",
		Short: "Browse the packed grid interactively",
		Long: `Pack a photo manifest and browse the occupancy grid in the terminal.

Without --scale the grid is downscaled to roughly 60 columns. Use the arrow
keys (or h/j/k/l) to scroll and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Manifest = args[0]
			return c.runView(cmd.Context(), opts, flags)
		},
	}

	bindPackFlags(cmd, &opts)
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "use a shared Redis cache")

	return cmd
}

// runView packs the manifest and starts the viewer.
func (c *CLI) runView(ctx context.Context, opts pipeline.Options, flags packFlags) error {
	c.Config.apply(&opts)
	opts.Formats = []string{pipeline.FormatText}
	opts.Pad = true

	canvas, err := pipeline.Load(opts)
	if err != nil {
		return err
	}
	if opts.Scale == 0 {
		opts.Scale = autoScale(canvas.Width(), viewColumns)
	}

	runner, err := c.newRunner(ctx, flags.noCache, c.Config.redisURL(flags.redisURL))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.ExecuteCanvas(ctx, canvas, opts)
	if err != nil {
		reportPackError(err)
		return err
	}

	m := newGridViewModel(
		fmt.Sprintf("%s  (1 cell = %d×%d)", opts.Manifest, opts.Scale, opts.Scale),
		statsLine(result.Stats.PhotoCount, result.Stats.Width, result.Stats.Height, result.Stats.Coverage, result.CacheInfo.PackHit),
		string(result.Artifacts[pipeline.FormatText]),
	)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// autoScale returns the smallest scale that fits width into about cols cells.
func autoScale(width, cols int) int {
	if width <= cols {
		return 1
	}
	return (width + cols - 1) / cols
}

// =============================================================================
// gridViewModel - Scrollable grid viewer
// =============================================================================

// gridViewModel is the bubbletea model for the grid viewer.
type gridViewModel struct {
	title  string
	stats  string
	lines  [][]rune
	top    int // first visible row
	left   int // first visible column
	height int // visible rows
	width  int // visible columns
}

func newGridViewModel(title, stats, text string) gridViewModel {
	m := gridViewModel{title: title, stats: stats, height: 20, width: 80}
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if line != "" {
			m.lines = append(m.lines, []rune(line))
		}
	}
	return m
}

func (m gridViewModel) Init() tea.Cmd {
	return nil
}

func (m gridViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.top--
		case "down", "j":
			m.top++
		case "pgup":
			m.top -= m.height
		case "pgdown", " ":
			m.top += m.height
		case "left", "h":
			m.left -= 4
		case "right", "l":
			m.left += 4
		case "home", "g":
			m.top, m.left = 0, 0
		case "end", "G":
			m.top = len(m.lines)
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-5, 3)
		m.width = max(msg.Width, 10)
	}
	m.clamp()
	return m, nil
}

// clamp keeps the viewport inside the grid.
func (m *gridViewModel) clamp() {
	m.top = min(m.top, len(m.lines)-m.height)
	m.top = max(m.top, 0)

	widest := 0
	for _, l := range m.lines {
		widest = max(widest, len(l))
	}
	m.left = min(m.left, widest-m.width)
	m.left = max(m.left, 0)
}

func (m gridViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.stats)
	b.WriteString("\n\n")

	if len(m.lines) == 0 {
		b.WriteString(StyleDim.Render("(empty canvas)"))
		b.WriteString("\n")
	}
	end := min(m.top+m.height, len(m.lines))
	for _, line := range m.lines[m.top:end] {
		if m.left < len(line) {
			b.WriteString(string(line[m.left:min(m.left+m.width, len(line))]))
		}
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("rows %d-%d of %d  ←↑↓→ scroll  q quit", m.top+1, end, len(m.lines))))
	return b.String()
}
