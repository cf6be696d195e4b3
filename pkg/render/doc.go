// Package render draws layout snapshots as SVG documents.
//
// The renderer consumes [grid.Snapshot] values, so it never touches a
// live engine: take a snapshot on the engine's goroutine and render it
// anywhere. Elements are painted in snapshot order, which the engine
// guarantees is z-order.
//
// # Usage
//
//	snap := engine.Snapshot()
//	svg := render.RenderSVG(snap, render.WithLabels(), render.WithScale(2))
//	os.WriteFile("layout.svg", svg, 0o644)
//
// Options follow the functional pattern: [WithLabels] annotates cells
// and supplements with index paths, [WithScale] grows the rendered
// size without touching layout coordinates, and [WithPageFill]
// replaces the page background.
package render
