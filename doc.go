// Package mesh describes drawable models as typed numeric buffers plus a
// named attribute layout, the form a GPU consumes for 2D rendering.
//
// # Overview
//
// A Geometry owns an ordered list of Buffers (positions, UVs, colors,
// indices) and a mapping from attribute names to Attribute descriptors
// that explain how to read those buffers: component count, scalar type,
// stride, start offset and step rate. The package concentrates on the
// buffer-management algorithms that are easy to get silently wrong:
// attribute registration onto shared or separate buffers, de-duplication
// of buffer references, in-place interleaving of parallel attribute
// arrays into one packed buffer, and merging of several geometries with
// index renumbering.
//
// # Quick Start
//
//	g := mesh.NewGeometry().
//	    AddAttribute("position", mesh.Float32Data(0, 0, 100, 0, 100, 100, 0, 100), 2).
//	    AddAttribute("uv", mesh.Float32Data(0, 0, 1, 0, 1, 1, 0, 1), 2).
//	    AddIndex(mesh.Uint16Data(0, 1, 2, 1, 3, 2)).
//	    Interleave()
//	if err := g.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// The finished geometry is handed to the upload sub-package, which turns
// it into gputypes vertex-buffer layouts and device buffers. Nothing in
// this package touches the GPU.
//
// # Ownership
//
// Every Geometry exclusively owns its buffers. Merge reads its inputs
// and writes an independent new geometry; no buffer is ever shared
// between two geometries. Geometries are not safe for concurrent
// mutation; a host that shares one across goroutines must serialize
// mutating calls itself.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Geometry, Buffer, Attribute, ScalarType, shape builders
//   - internal/words: aligned storage and typed views over raw bytes
//   - upload: vertex-layout derivation and wgpu buffer creation
package mesh
