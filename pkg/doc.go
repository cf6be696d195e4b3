// Package pkg provides the core libraries for the gridlayout engine.
//
// # Overview
//
// Gridlayout computes two-dimensional grid layouts for scrollable
// collection views: cells arranged in rows and columns, headers and
// footers that can pin to the viewport edge, placeholders, and
// decorative separators. The pkg directory is organized into five
// main areas:
//
//  1. [grid] - The layout engine (metrics, sections, caches, pinning)
//  2. [geo] - Geometry primitives (points, sizes, rects, edge insets)
//  3. [preset] - TOML preset files describing layouts
//  4. [render] / [inspect] - SVG rendering and the HTTP inspector
//  5. [loader] - Asynchronous content loading with a state machine
//
// # Architecture
//
// The typical data flow through gridlayout:
//
//	TOML preset / host data source
//	         ↓
//	    [preset] package (metrics + viewport)
//	         ↓
//	    [grid] package (layout build + attribute caches)
//	         ↓
//	    [render] / [inspect] output (SVG, JSON, HTTP)
//
// # Quick Start
//
// Load a preset and snapshot its layout:
//
//	import (
//	    "os"
//
//	    "github.com/abhi266raj/gridlayout/pkg/grid"
//	    "github.com/abhi266raj/gridlayout/pkg/preset"
//	)
//
//	doc, err := preset.Load("feed.toml")
//	if err != nil {
//	    return err
//	}
//	engine, _, _ := doc.Engine(grid.Options{})
//	return engine.Snapshot().WriteJSON(os.Stdout)
//
// Hosts with their own data source implement [grid.DataSource] and
// [grid.Viewport] directly and drive the engine through its query and
// invalidation methods.
package pkg
