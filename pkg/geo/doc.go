// Package geo provides the floating-point geometry primitives used by the
// grid layout engine.
//
// All types are plain values with no hidden state. Coordinates follow the
// screen convention: the origin is the top-left corner and Y grows downward.
//
// # Primitives
//
//   - Point, Size, Rect: position and extent in layout units
//   - Edges: per-side insets (padding, margins, separator insets)
//   - Edge: one of the four rectangle sides, used by the splitting helpers
//
// # Pixel snapping
//
// Layout units are logical; on high-density screens one logical unit spans
// several device pixels. Round snaps a value to the device pixel grid:
//
//	y := geo.Round(y, scale, math.Ceil)
//
// # Approximate equality
//
// Layout math accumulates floating noise. ApproxEqual compares values within
// machine epsilon so that "did this element actually move" checks do not flip
// on noise alone.
package geo
