// Command meshdemo builds example geometries and prints their buffer
// and attribute layout, before and after interleaving and merging.
// Useful for eyeballing stride and offset math without a GPU attached.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/mesh"
	"github.com/gogpu/mesh/upload"
)

func main() {
	var (
		segX    = flag.Int("segx", 2, "plane segments along x")
		segY    = flag.Int("segy", 2, "plane segments along y")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		mesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	quad := mesh.NewQuad(100, 100)
	describe("quad", quad)

	plane := mesh.NewPlane(100, 100, *segX, *segY)
	describe("plane", plane)

	merged, err := mesh.Merge(mesh.NewQuad(100, 100), mesh.NewQuad(50, 50))
	if err != nil {
		log.Fatalf("merge: %v", err)
	}
	describe("merged quads", merged)

	merged.Interleave()
	if err := merged.Err(); err != nil {
		log.Fatalf("interleave: %v", err)
	}
	describe("merged quads, interleaved", merged)
}

func describe(title string, g *mesh.Geometry) {
	fmt.Printf("== %s: %d vertices, %d buffers\n", title, g.Size(), len(g.Buffers()))
	for i, b := range g.Buffers() {
		role := "vertex"
		if b.IsIndex() {
			role = "index"
		}
		fmt.Printf("  buffer %d: %-6s %s x %d (%d bytes)\n", i, role, b.Type(), b.Len(), b.ByteLen())
	}
	for _, name := range g.AttributeNames() {
		a := g.Attribute(name)
		fmt.Printf("  attribute %-10s buffer %d size %d type %-8s stride %d start %d\n",
			name, a.BufferIndex, a.Size, a.Type, a.Stride, a.Start)
	}
	if min, max, ok := g.Bounds(); ok {
		fmt.Printf("  bounds (%g,%g)-(%g,%g)\n", min[0], min[1], max[0], max[1])
	}

	layouts, err := upload.VertexLayouts(g)
	if err != nil {
		log.Fatalf("layout: %v", err)
	}
	for i, l := range layouts {
		fmt.Printf("  layout %d: stride %d bytes, %d attributes, %v\n",
			i, l.ArrayStride, len(l.Attributes), l.StepMode)
	}
	fmt.Println()
}
