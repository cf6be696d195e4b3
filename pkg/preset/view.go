package preset

import (
	"github.com/google/uuid"

	"github.com/abhi266raj/gridlayout/pkg/geo"
	"github.com/abhi266raj/gridlayout/pkg/grid"
)

// View implements grid.Viewport over a preset's viewport config, with a
// mutable scroll offset for driving demos and the inspector.
type View struct {
	bounds geo.Rect
	inset  geo.Edges
	scale  float64
	id     uuid.UUID
	offset geo.Point
}

// View materializes the document's viewport.
func (d *Document) View() *View {
	scale := d.Viewport.PixelScale
	if scale <= 0 {
		scale = 1
	}
	return &View{
		bounds: geo.NewRect(0, 0, d.Viewport.Width, d.Viewport.Height),
		inset:  d.Viewport.Inset.edges(),
		scale:  scale,
		id:     uuid.New(),
	}
}

// Bounds implements grid.Viewport.
func (v *View) Bounds() geo.Rect { return v.bounds }

// ContentInset implements grid.Viewport.
func (v *View) ContentInset() geo.Edges { return v.inset }

// ContentOffset implements grid.Viewport.
func (v *View) ContentOffset() geo.Point { return v.offset }

// PixelScale implements grid.Viewport.
func (v *View) PixelScale() float64 { return v.scale }

// ID implements grid.Viewport.
func (v *View) ID() uuid.UUID { return v.id }

// SetOffset moves the scroll position.
func (v *View) SetOffset(p geo.Point) { v.offset = p }

// ScrollBy moves the scroll position by a delta.
func (v *View) ScrollBy(dx, dy float64) {
	v.offset.X += dx
	v.offset.Y += dy
}

// Engine builds a layout engine over the document's source and view.
func (d *Document) Engine(opts grid.Options) (*grid.Engine, *Source, *View) {
	src := d.Source()
	view := d.View()
	return grid.New(src, view, opts), src, view
}
