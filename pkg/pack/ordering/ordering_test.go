package ordering

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/photo"
)

func ids(photos []photo.Photo) []string {
	out := make([]string, len(photos))
	for i, p := range photos {
		out[i] = p.ID
	}
	return out
}

var sample = []photo.Photo{
	{ID: "a", Width: 450, Height: 35},
	{ID: "b", Width: 500, Height: 450},
	{ID: "c", Width: 300, Height: 450},
	{ID: "d", Width: 500, Height: 450},
	{ID: "e", Width: 900, Height: 20},
}

func TestOrderers(t *testing.T) {
	tests := []struct {
		orderer Orderer
		want    []string
	}{
		{TallestFirst{}, []string{"b", "d", "c", "a", "e"}},
		{WidestFirst{}, []string{"e", "b", "d", "a", "c"}},
		{LargestArea{}, []string{"b", "d", "c", "e", "a"}},
		{InputOrder{}, []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.orderer.Name(), func(t *testing.T) {
			got := ids(tt.orderer.Order(sample))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Order() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	in := []photo.Photo{{ID: "small", Width: 1, Height: 1}, {ID: "big", Width: 9, Height: 9}}
	_ = TallestFirst{}.Order(in)
	if in[0].ID != "small" {
		t.Errorf("input reordered: %v", ids(in))
	}
}

func TestTallestFirstStable(t *testing.T) {
	var in []photo.Photo
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		in = append(in, photo.Photo{ID: id, Width: 10, Height: 10})
	}
	got := ids(TallestFirst{}.Order(in))
	if diff := cmp.Diff([]string{"p1", "p2", "p3", "p4", "p5"}, got); diff != "" {
		t.Errorf("equal photos reordered (-want +got):\n%s", diff)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		o, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) error: %v", name, err)
		}
		if o.Name() != name {
			t.Errorf("ByName(%q).Name() = %q", name, o.Name())
		}
	}

	if o, err := ByName(""); err != nil || o.Name() != NameTallest {
		t.Errorf("ByName(\"\") = %v, %v; want tallest", o, err)
	}

	if _, err := ByName("spiral"); !errors.Is(err, errors.ErrCodeInvalidOrdering) {
		t.Errorf("ByName(spiral) error = %v, want INVALID_ORDERING", err)
	}
}
