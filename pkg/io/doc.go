// Package io reads photo manifests and round-trips packing results.
//
// # Manifest Formats
//
// A manifest lists the photos to pack and, optionally, the canvas width.
// JSON and TOML are supported; the format is picked from the file
// extension by [ImportManifest].
//
// JSON:
//
//	{
//	  "width": 1500,
//	  "photos": [
//	    {"id": "photo1", "width": 450, "height": 35},
//	    {"id": "photo2", "width": 500, "height": 450}
//	  ]
//	}
//
// A bare JSON array of photos is accepted as well.
//
// TOML:
//
//	width = 1500
//
//	[[photos]]
//	id = "photo1"
//	width = 450
//	height = 35
//
// # Photo Identifiers
//
// Photos without an id receive a name-based UUID (version 5) derived from
// their position and size, so the same manifest always yields the same ids
// and therefore the same packing.
//
// # Results
//
// [WriteResult] and [ReadResult] encode a [pack.Result] as JSON. The
// pipeline uses them to store results in a cache.
//
// [pack.Result]: github.com/matzehuels/photopack/pkg/pack.Result
package io
