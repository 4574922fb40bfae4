// Package pkg holds the photopack libraries.
//
// # Overview
//
// photopack places rectangular photos on a canvas of fixed width so that
// the canvas stays short. The packages build on each other:
//
//  1. [photo] - Photo records and the validated canvas photo list
//  2. [skyline] - Height profile of the canvas (query lowest fit, commit)
//  3. [pack] - Ordering heuristics and the placement loop
//  4. [grid] - Per-cell occupancy view materialized from placements
//  5. [sink] - Text grid and JSON document output
//  6. [io] - JSON/TOML photo manifests and result files
//  7. [cache], [observability], [pipeline] - Orchestration and caching
//
// # Architecture
//
// The data flow through photopack:
//
//	Photo manifest (JSON/TOML)
//	         ↓
//	    [io] package (decode, assign missing ids)
//	         ↓
//	    [photo] package (validate, build canvas)
//	         ↓
//	    [pack] package (order photos, drop each on the [skyline])
//	         ↓
//	    [grid] package (materialize, check for overlaps)
//	         ↓
//	    [sink] package (text grid, JSON placements)
//
// # Quick Start
//
//	c, err := photo.NewCanvas(1500, []photo.Photo{
//	    {ID: "a", Width: 450, Height: 35},
//	    {ID: "b", Width: 500, Height: 450},
//	})
//	res, err := pack.Pack(c)
//	g, err := grid.FromResult(c, res)
//	os.Stdout.Write(sink.RenderText(g))
//
// [photo]: github.com/matzehuels/photopack/pkg/photo
// [skyline]: github.com/matzehuels/photopack/pkg/skyline
// [pack]: github.com/matzehuels/photopack/pkg/pack
// [grid]: github.com/matzehuels/photopack/pkg/grid
// [sink]: github.com/matzehuels/photopack/pkg/sink
// [io]: github.com/matzehuels/photopack/pkg/io
// [cache]: github.com/matzehuels/photopack/pkg/cache
// [observability]: github.com/matzehuels/photopack/pkg/observability
// [pipeline]: github.com/matzehuels/photopack/pkg/pipeline
package pkg
