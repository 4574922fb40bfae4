// Package ordering decides the sequence in which photos are handed to the
// packer.
//
// Placing large photos while the skyline is still flat reduces
// fragmentation, so every orderer here sorts some notion of size in
// descending order. All orderers are stable: photos comparing equal keep
// their input order, which makes packing deterministic.
package ordering

import (
	"cmp"
	"slices"
	"sort"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/photo"
)

// Orderer returns the photos in the order they should be placed.
// Implementations must not modify their input.
type Orderer interface {
	Name() string
	Order(photos []photo.Photo) []photo.Photo
}

// Orderer names accepted by [ByName].
const (
	NameTallest = "tallest"
	NameWidest  = "widest"
	NameArea    = "area"
	NameInput   = "input"
)

// TallestFirst sorts descending by height, breaking ties by width.
// It is the default orderer.
type TallestFirst struct{}

func (TallestFirst) Name() string { return NameTallest }

func (TallestFirst) Order(photos []photo.Photo) []photo.Photo {
	return sortedBy(photos, func(a, b photo.Photo) int {
		if c := cmp.Compare(b.Height, a.Height); c != 0 {
			return c
		}
		return cmp.Compare(b.Width, a.Width)
	})
}

// WidestFirst sorts descending by width, breaking ties by height.
type WidestFirst struct{}

func (WidestFirst) Name() string { return NameWidest }

func (WidestFirst) Order(photos []photo.Photo) []photo.Photo {
	return sortedBy(photos, func(a, b photo.Photo) int {
		if c := cmp.Compare(b.Width, a.Width); c != 0 {
			return c
		}
		return cmp.Compare(b.Height, a.Height)
	})
}

// LargestArea sorts descending by area, breaking ties by height.
type LargestArea struct{}

func (LargestArea) Name() string { return NameArea }

func (LargestArea) Order(photos []photo.Photo) []photo.Photo {
	return sortedBy(photos, func(a, b photo.Photo) int {
		if c := cmp.Compare(b.Area(), a.Area()); c != 0 {
			return c
		}
		return cmp.Compare(b.Height, a.Height)
	})
}

// InputOrder keeps the photos as given.
type InputOrder struct{}

func (InputOrder) Name() string { return NameInput }

func (InputOrder) Order(photos []photo.Photo) []photo.Photo {
	return slices.Clone(photos)
}

func sortedBy(photos []photo.Photo, compare func(a, b photo.Photo) int) []photo.Photo {
	out := slices.Clone(photos)
	slices.SortStableFunc(out, compare)
	return out
}

var registry = map[string]Orderer{
	NameTallest: TallestFirst{},
	NameWidest:  WidestFirst{},
	NameArea:    LargestArea{},
	NameInput:   InputOrder{},
}

// ByName resolves an orderer by name. An empty name selects [TallestFirst].
func ByName(name string) (Orderer, error) {
	if name == "" {
		return TallestFirst{}, nil
	}
	o, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidOrdering, "unknown ordering %q (must be one of: %v)", name, Names())
	}
	return o, nil
}

// Names returns the registered orderer names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
