package geo

// Edge identifies one side of a rectangle.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeRight
)

// String returns the lowercase name of the edge.
func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeBottom:
		return "bottom"
	case EdgeRight:
		return "right"
	}
	return "unknown"
}

// SeparatorRect returns a rect of the given thickness flush against one edge
// of r. Used for hairline separator decorations.
func SeparatorRect(r Rect, edge Edge, thickness float64) Rect {
	switch edge {
	case EdgeTop:
		return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: thickness}
	case EdgeLeft:
		return Rect{X: r.X, Y: r.Y, Width: thickness, Height: r.Height}
	case EdgeBottom:
		return Rect{X: r.X, Y: r.Bottom() - thickness, Width: r.Width, Height: thickness}
	case EdgeRight:
		return Rect{X: r.Right() - thickness, Y: r.Y, Width: thickness, Height: r.Height}
	}
	return Rect{}
}

// Divide splits r into a slice of the given amount taken from edge, and the
// remainder. Neither input is mutated. Amounts larger than the rectangle
// consume the whole rectangle, leaving an empty remainder on that axis.
func Divide(r Rect, amount float64, edge Edge) (slice, remainder Rect) {
	switch edge {
	case EdgeTop:
		amount = min(amount, r.Height)
		slice = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: amount}
		remainder = Rect{X: r.X, Y: r.Y + amount, Width: r.Width, Height: r.Height - amount}
	case EdgeBottom:
		amount = min(amount, r.Height)
		slice = Rect{X: r.X, Y: r.Bottom() - amount, Width: r.Width, Height: amount}
		remainder = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height - amount}
	case EdgeLeft:
		amount = min(amount, r.Width)
		slice = Rect{X: r.X, Y: r.Y, Width: amount, Height: r.Height}
		remainder = Rect{X: r.X + amount, Y: r.Y, Width: r.Width - amount, Height: r.Height}
	case EdgeRight:
		amount = min(amount, r.Width)
		slice = Rect{X: r.Right() - amount, Y: r.Y, Width: amount, Height: r.Height}
		remainder = Rect{X: r.X, Y: r.Y, Width: r.Width - amount, Height: r.Height}
	}
	return slice, remainder
}

// Cut removes a slice of the given amount from edge, keeping the remainder
// in r. It returns the removed slice. This is the in-place counterpart of
// Divide, convenient when walking down a rect while placing elements.
func (r *Rect) Cut(amount float64, edge Edge) Rect {
	slice, remainder := Divide(*r, amount, edge)
	*r = remainder
	return slice
}
