// Package upload is the GPU-side consumer of finished geometries: it
// derives gputypes vertex-buffer layouts from a geometry's attribute
// map and creates and fills wgpu device buffers from its byte buffers.
//
// The package never mutates a geometry. Uploaded resources are cached
// on the geometry per renderer context (mesh.ContextID) and released
// through mesh.Geometry.Dispose or Handle.Release.
package upload
