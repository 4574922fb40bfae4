// Package sink exports packing results.
//
// Sinks are consumers of the core: they read a [pack.Result] or a
// materialized [grid.Grid] and never influence placement.
//
//   - [RenderText]: the row-by-row cell view, one photo id (or a placeholder)
//     per cell, optionally downsampled for large canvases.
//   - [RenderJSON]: a pretty-printed document with canvas size, placements
//     with photo dimensions, coverage and the final skyline.
//
// [pack.Result]: github.com/matzehuels/photopack/pkg/pack.Result
// [grid.Grid]: github.com/matzehuels/photopack/pkg/grid.Grid
package sink
