package photo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/photopack/pkg/errors"
)

func TestNewCanvas(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		photos   []Photo
		wantCode errors.Code
	}{
		{"empty", 100, nil, ""},
		{"valid", 100, []Photo{{"a", 10, 20}, {"b", 100, 1}}, ""},
		{"free-form ids", 100, []Photo{{"summer 2024", 10, 10}, {"a\tb", 10, 10}, {"日本", 5, 5}}, ""},
		{"oversized accepted", 100, []Photo{{"a", 200, 20}}, ""},
		{"zero width", 0, nil, errors.ErrCodeInvalidInput},
		{"duplicate id", 100, []Photo{{"a", 1, 1}, {"a", 2, 2}}, errors.ErrCodeInvalidInput},
		{"empty id", 100, []Photo{{"", 1, 1}}, errors.ErrCodeInvalidInput},
		{"zero height", 100, []Photo{{"a", 1, 0}}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCanvas(tt.width, tt.photos)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("NewCanvas() error = %v", err)
				}
				if c.Width() != tt.width {
					t.Errorf("Width() = %d, want %d", c.Width(), tt.width)
				}
				if c.Len() != len(tt.photos) {
					t.Errorf("Len() = %d, want %d", c.Len(), len(tt.photos))
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("NewCanvas() error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestCanvasIsolation(t *testing.T) {
	in := []Photo{{"a", 10, 20}}
	c, err := NewCanvas(100, in)
	if err != nil {
		t.Fatal(err)
	}

	in[0].Width = 99
	if p, _ := c.Photo("a"); p.Width != 10 {
		t.Errorf("canvas shares caller slice: width = %d", p.Width)
	}

	out := c.Photos()
	out[0].Height = 1
	if p, _ := c.Photo("a"); p.Height != 20 {
		t.Errorf("Photos() exposes internal slice: height = %d", p.Height)
	}
}

func TestCanvasLookups(t *testing.T) {
	c, err := NewCanvas(100, []Photo{{"a", 150, 1}, {"b", 10, 10}, {"c", 101, 2}})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := c.Photo("missing"); ok {
		t.Error("Photo(missing) found")
	}
	if p, ok := c.Photo("b"); !ok || p.Area() != 100 {
		t.Errorf("Photo(b) = %v, %v", p, ok)
	}

	want := []Photo{{"a", 150, 1}, {"c", 101, 2}}
	if diff := cmp.Diff(want, c.Oversized()); diff != "" {
		t.Errorf("Oversized() mismatch (-want +got):\n%s", diff)
	}
	if got := c.TotalArea(); got != 150+100+202 {
		t.Errorf("TotalArea() = %d", got)
	}
}

func TestPhotoString(t *testing.T) {
	if got := (Photo{"beach", 450, 35}).String(); got != "beach (450x35)" {
		t.Errorf("String() = %q", got)
	}
}
