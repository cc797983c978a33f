// Package pkg provides the libraries behind justify, a justified grid layout.
//
// # Overview
//
// Justify places a sequence of items of known width and height into rows that
// all span the container width, like words in justified text. The pkg
// directory is organized as follows:
//
//  1. [justify] - The layout core: partitioning, row balancing, positions
//  2. [io] - Item documents in, lineup documents out
//  3. [render] - SVG, PNG and JSON drawings of a lineup
//  4. [pipeline] - Orchestration (layout → render) with caching
//  5. [cache], [store] - Layout cache and gallery persistence backends
//  6. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through justify:
//
//	items.json
//	     ↓
//	[io] package (parse and validate the document)
//	     ↓
//	[justify] package (Optimize rows, Build positions)
//	     ↓
//	[render] package (draw)
//	     ↓
//	SVG/PNG/JSON output
//
// # Quick Start
//
//	items := []justify.Item{{Width: 300, Height: 200}, {Width: 150, Height: 200}}
//	lineup := justify.Build(items, 960, justify.DefaultSettings())
//	for i, p := range lineup.Positions {
//		fmt.Println(i, p.Top, p.Left)
//	}
//
// The core is pure and safe for concurrent use; everything with I/O lives in
// the packages around it.
package pkg
