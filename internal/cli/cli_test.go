package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/photopack/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty leaves default", "", nil},
		{"single format", "text", []string{"text"}},
		{"multiple formats", "text,json", []string{"text", "json"}},
		{"spaces and empties", " json, ,text ", []string{"json", "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "shoot/photos.toml", "shoot/photos"},
		{"out.json", "photos.toml", "out"},
		{"out.txt", "photos.toml", "out"},
		{"out", "photos.toml", "out"},
		{"out.png", "photos.toml", "out.png"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestAutoScale(t *testing.T) {
	tests := []struct{ width, cols, want int }{
		{40, 60, 1},
		{60, 60, 1},
		{61, 60, 2},
		{1500, 60, 25},
	}
	for _, tt := range tests {
		if got := autoScale(tt.width, tt.cols); got != tt.want {
			t.Errorf("autoScale(%d, %d) = %d, want %d", tt.width, tt.cols, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photos.toml")
	artifacts := map[string][]byte{"text": []byte("a a\n"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifacts, []string{"text", "json"}, input, "")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "photos.txt"), filepath.Join(dir, "photos.json")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	single := filepath.Join(dir, "layout.out")
	paths, err = writeArtifacts(artifacts, []string{"json"}, input, single)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != single {
		t.Errorf("single output paths = %v", paths)
	}
	if data, _ := os.ReadFile(single); string(data) != "{}" {
		t.Errorf("single output = %q", data)
	}
}

const cliManifest = `width = 20

[[photos]]
id = "tall"
width = 10
height = 6

[[photos]]
id = "wide"
width = 20
height = 2
`

func TestPackCommandWritesFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	status := captureStatus(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "photos.toml")
	if err := os.WriteFile(input, []byte(cliManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs([]string{"pack", input, "-f", "text,json", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("pack error: %v", err)
	}

	text, err := os.ReadFile(filepath.Join(dir, "photos.txt"))
	if err != nil {
		t.Fatal(err)
	}
	rows := strings.Split(strings.TrimSuffix(string(text), "\n"), "\n")
	if len(rows) != 8 {
		t.Errorf("text grid has %d rows, want 8", len(rows))
	}
	if !strings.HasPrefix(rows[0], "tall ") || !strings.HasPrefix(rows[7], "wide ") {
		t.Errorf("unexpected grid:\n%s", text)
	}
	if _, err := os.Stat(filepath.Join(dir, "photos.json")); err != nil {
		t.Errorf("json output missing: %v", err)
	}
	if !strings.Contains(status.String(), "2 photos") {
		t.Errorf("status output missing stats: %q", status.String())
	}
}

func TestPackCommandOversized(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	status := captureStatus(t)

	input := filepath.Join(t.TempDir(), "photos.toml")
	_ = os.WriteFile(input, []byte(cliManifest), 0o644)

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"pack", input, "--width", "15", "--no-cache", "-o", filepath.Join(t.TempDir(), "out.txt")})
	err := root.Execute()
	if !errors.Is(err, errors.ErrCodeOversizedPhoto) {
		t.Fatalf("error = %v, want OVERSIZED_PHOTO", err)
	}
	if !strings.Contains(status.String(), `"wide"`) {
		t.Errorf("status output should name the photo: %q", status.String())
	}
}

func TestGridViewModel(t *testing.T) {
	text := "a a b\na a b\nc c c\n"
	m := newGridViewModel("photos", "stats", text)
	if len(m.lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(m.lines))
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 3, Height: 7})
	m = next.(gridViewModel)
	if m.height != 3 || m.width != 10 {
		t.Errorf("viewport = %dx%d, want 10x3", m.width, m.height)
	}

	// Grid fits vertically, scrolling down stays at the top.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(gridViewModel)
	if m.top != 0 {
		t.Errorf("top = %d, want 0", m.top)
	}

	view := m.View()
	for _, want := range []string{"photos", "stats", "a a b", "c c c", "rows 1-3 of 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestGridViewModelScroll(t *testing.T) {
	var b strings.Builder
	for range 50 {
		b.WriteString(strings.Repeat("x ", 100) + "\n")
	}
	m := newGridViewModel("t", "s", b.String())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 15})
	m = next.(gridViewModel)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m = next.(gridViewModel)
	if m.top != 50-m.height {
		t.Errorf("top after end = %d, want %d", m.top, 50-m.height)
	}

	for range 100 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = next.(gridViewModel)
	}
	if m.left != 200-40 {
		t.Errorf("left = %d, want %d", m.left, 160)
	}
}

func TestGridViewModelEmpty(t *testing.T) {
	m := newGridViewModel("t", "s", "")
	if !strings.Contains(m.View(), "empty canvas") {
		t.Errorf("empty view = %q", m.View())
	}
}
