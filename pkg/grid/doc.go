// Package grid implements a sectioned, scrollable grid layout engine.
//
// The engine computes the frame of every visible element of a grid: item
// cells arranged in rows and columns, section supplements (headers, footers,
// placeholders, custom bands), and decorations (hairline separators,
// backgrounds). It recomputes geometry incrementally as content and viewport
// change, resolves pinning for sticky headers, and keeps two generations of
// attribute caches so that insert/remove/reload animations can diff old
// against new frames.
//
// # Architecture
//
// The engine consumes three collaborator interfaces:
//
//  1. DataSource: section count, per-section item counts, and a metrics
//     snapshot describing each section's configuration
//  2. Measurer: optional natural-size measurement for items and supplements
//  3. Viewport: bounds, content inset, content offset, pixel scale, and an
//     identity token for the hosting scroll view
//
// Layout validity is tracked with two independent flags. Losing data
// validity (structural changes) rebuilds every SectionInfo from a fresh
// metrics snapshot and rotates the attribute caches. Losing only metrics
// validity (viewport width change, explicit remeasure) relays out the
// existing SectionInfos in place.
//
// # Usage
//
// Create an engine and query it:
//
//	eng := grid.New(dataSource, viewport, grid.Options{Logger: logger})
//	attrs := eng.AttributesInRect(visibleRect)
//	size := eng.ContentSize()
//
// Animate a batch of edits:
//
//	eng.BeginUpdates([]grid.Operation{
//	    {Action: grid.ActionInsert, Section: 1, Item: 3},
//	})
//	appearing := eng.InitialItemAttributes(grid.NewIndexPath(1, 3))
//	// ... drive the animation ...
//	eng.EndUpdates()
//
// All methods must be called from the single goroutine that owns the hosting
// view; the engine performs no internal locking.
package grid
