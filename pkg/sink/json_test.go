package sink

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/grid"
	"github.com/matzehuels/photopack/pkg/pack"
	"github.com/matzehuels/photopack/pkg/photo"
)

func TestRenderJSON(t *testing.T) {
	c, err := photo.NewCanvas(1500, []photo.Photo{
		{ID: "a", Width: 450, Height: 35},
		{ID: "b", Width: 500, Height: 450},
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := pack.Pack(c)
	if err != nil {
		t.Fatal(err)
	}

	data, err := RenderJSON(c, res)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 1500 || out.Height != 450 {
		t.Errorf("size = %dx%d, want 1500x450", out.Width, out.Height)
	}
	if out.Ordering != "tallest" {
		t.Errorf("Ordering = %q, want tallest", out.Ordering)
	}
	want := []jsonPlacement{
		{ID: "b", X: 0, Y: 0, Width: 500, Height: 450},
		{ID: "a", X: 500, Y: 0, Width: 450, Height: 35},
	}
	if diff := cmp.Diff(want, out.Placements); diff != "" {
		t.Errorf("Placements mismatch (-want +got):\n%s", diff)
	}
	if out.Coverage != nil || out.Skyline != nil {
		t.Error("optional fields present without options")
	}
}

func TestRenderJSONWithOptions(t *testing.T) {
	c, _ := photo.NewCanvas(10, []photo.Photo{{ID: "a", Width: 5, Height: 2}})
	res, _ := pack.Pack(c)
	g, _ := grid.FromResult(c, res)

	data, err := RenderJSON(c, res, WithJSONGrid(g), WithJSONSkyline())
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Coverage == nil || *out.Coverage != 0.5 {
		t.Errorf("Coverage = %v, want 0.5", out.Coverage)
	}
	if len(out.Skyline) != 2 {
		t.Errorf("Skyline = %v, want 2 segments", out.Skyline)
	}
}

func TestRenderJSONUnknownPhoto(t *testing.T) {
	c, _ := photo.NewCanvas(10, nil)
	res := &pack.Result{Width: 10, Placements: []pack.Placement{{PhotoID: "ghost"}}}
	if _, err := RenderJSON(c, res); !errors.Is(err, errors.ErrCodeInternalInvariant) {
		t.Errorf("RenderJSON() error = %v, want INTERNAL_INVARIANT", err)
	}
}
