package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/photo"
)

// Manifest formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Manifest is a decoded photo list. Width is zero when the manifest does not
// set one.
type Manifest struct {
	Width  int           `json:"width,omitempty" toml:"width,omitempty"`
	Photos []photo.Photo `json:"photos" toml:"photos"`
}

// Canvas builds the canvas for the manifest. A positive width overrides the
// manifest's own width.
func (m *Manifest) Canvas(width int) (*photo.Canvas, error) {
	if width <= 0 {
		width = m.Width
	}
	if width <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "no canvas width given and manifest sets none")
	}
	return photo.NewCanvas(width, m.Photos)
}

// ReadManifest decodes a manifest in the given format from r and assigns
// ids to unnamed photos. ReadManifest does not close r.
func ReadManifest(r io.Reader, format string) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var m Manifest
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &m.Photos)
		} else {
			err = json.Unmarshal(trimmed, &m)
		}
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest format %q (must be one of: json, toml)", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decode %s manifest", format)
	}

	assignIDs(m.Photos)
	return &m, nil
}

// ImportManifest reads the manifest at path, choosing the format from its
// extension (.json or .toml).
func ImportManifest(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s not found", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadManifest(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// FormatFromPath maps a file extension to a manifest format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer manifest format from %q (use .json or .toml)", path)
}

// assignIDs gives every unnamed photo a deterministic UUIDv5.
func assignIDs(photos []photo.Photo) {
	for i := range photos {
		if photos[i].ID == "" {
			photos[i].ID = PhotoID(i, photos[i].Width, photos[i].Height)
		}
	}
}

// PhotoID returns the name-based UUID used for an unnamed photo at the given
// manifest index.
func PhotoID(index, width, height int) string {
	name := fmt.Sprintf("photo:%d:%dx%d", index, width, height)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
