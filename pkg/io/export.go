package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/photopack/pkg/pack"
)

// WriteManifest encodes m in the given format to w.
func WriteManifest(m *Manifest, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(m); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported manifest format %q", format)
}

// ExportManifest writes m to path, choosing the format from its extension.
func ExportManifest(m *Manifest, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteManifest(m, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteResult encodes a packing result as JSON.
func WriteResult(r *pack.Result, w io.Writer) error {
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadResult decodes a packing result written by [WriteResult].
func ReadResult(r io.Reader) (*pack.Result, error) {
	var res pack.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &res, nil
}
