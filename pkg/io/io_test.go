package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/pack"
	"github.com/matzehuels/photopack/pkg/photo"
)

func TestReadManifestJSON(t *testing.T) {
	input := `{
  "width": 1500,
  "photos": [
    {"id": "photo1", "width": 450, "height": 35},
    {"id": "photo2", "width": 500, "height": 450}
  ]
}`
	m, err := ReadManifest(strings.NewReader(input), FormatJSON)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}

	want := &Manifest{
		Width: 1500,
		Photos: []photo.Photo{
			{ID: "photo1", Width: 450, Height: 35},
			{ID: "photo2", Width: 500, Height: 450},
		},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestReadManifestJSONArray(t *testing.T) {
	m, err := ReadManifest(strings.NewReader(` [{"id":"a","width":1,"height":2}]`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if m.Width != 0 || len(m.Photos) != 1 || m.Photos[0].ID != "a" {
		t.Errorf("unexpected manifest: %+v", m)
	}
}

func TestReadManifestTOML(t *testing.T) {
	input := `
width = 800

[[photos]]
id = "left"
width = 400
height = 300

[[photos]]
width = 400
height = 200
`
	m, err := ReadManifest(strings.NewReader(input), FormatTOML)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}
	if m.Width != 800 || len(m.Photos) != 2 {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	if m.Photos[0].ID != "left" {
		t.Errorf("Photos[0].ID = %q, want left", m.Photos[0].ID)
	}
	if got, want := m.Photos[1].ID, PhotoID(1, 400, 200); got != want {
		t.Errorf("Photos[1].ID = %q, want generated %q", got, want)
	}
}

func TestReadManifestErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
		code   errors.Code
	}{
		{"malformed json", `{"photos": [`, FormatJSON, errors.ErrCodeInvalidManifest},
		{"malformed toml", "width = = 3", FormatTOML, errors.ErrCodeInvalidManifest},
		{"wrong type", `{"width": "wide"}`, FormatJSON, errors.ErrCodeInvalidManifest},
		{"unknown format", `{}`, "yaml", errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadManifest(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadManifest() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestPhotoID(t *testing.T) {
	a := PhotoID(0, 10, 20)
	if a != PhotoID(0, 10, 20) {
		t.Error("PhotoID should be deterministic")
	}
	if a == PhotoID(1, 10, 20) {
		t.Error("PhotoID should depend on the index")
	}
	if len(a) != 36 {
		t.Errorf("PhotoID length = %d, want 36", len(a))
	}
	if err := errors.ValidatePhotoID(a); err != nil {
		t.Errorf("generated id rejected: %v", err)
	}
}

func TestManifestCanvas(t *testing.T) {
	m := &Manifest{Width: 100, Photos: []photo.Photo{{ID: "a", Width: 10, Height: 10}}}

	c, err := m.Canvas(0)
	if err != nil || c.Width() != 100 {
		t.Errorf("Canvas(0) = %v, %v; want width 100", c, err)
	}
	c, err = m.Canvas(300)
	if err != nil || c.Width() != 300 {
		t.Errorf("Canvas(300) = %v, %v; want width 300", c, err)
	}

	m.Width = 0
	if _, err := m.Canvas(0); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Canvas without width error = %v, want INVALID_MANIFEST", err)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := &Manifest{Width: 1500, Photos: []photo.Photo{
		{ID: "a", Width: 450, Height: 35},
		{ID: "b", Width: 500, Height: 450},
	}}

	for _, name := range []string{"photos.json", "photos.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := ExportManifest(m, path); err != nil {
				t.Fatalf("ExportManifest() error: %v", err)
			}
			got, err := ImportManifest(path)
			if err != nil {
				t.Fatalf("ImportManifest() error: %v", err)
			}
			if diff := cmp.Diff(m, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportManifestErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ImportManifest(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}

	path := filepath.Join(dir, "photos.yaml")
	if err := os.WriteFile(path, []byte("photos: []"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportManifest(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("yaml error = %v, want INVALID_FORMAT", err)
	}
}

func TestResultRoundTrip(t *testing.T) {
	c, _ := photo.NewCanvas(1500, []photo.Photo{
		{ID: "a", Width: 450, Height: 35},
		{ID: "b", Width: 500, Height: 450},
	})
	res, err := pack.Pack(c)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteResult(res, &buf); err != nil {
		t.Fatalf("WriteResult() error: %v", err)
	}
	got, err := ReadResult(&buf)
	if err != nil {
		t.Fatalf("ReadResult() error: %v", err)
	}
	if diff := cmp.Diff(res, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
