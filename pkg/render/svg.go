package render

import (
	"bytes"
	"fmt"

	"github.com/abhi266raj/gridlayout/pkg/grid"
)

// Default element fills, used when an element carries no color of its own.
const (
	defaultPageFill       = "#f5f7fa"
	defaultCellFill       = "#e8eef7"
	defaultCellStroke     = "#9fb3d1"
	defaultSupplementFill = "#cdd9ea"
	defaultDecorationFill = "#8a98ad"
	labelFill             = "#33415c"
)

// SVGOption configures the SVG sink.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels   bool
	pageFill string
	scale    float64
}

// WithLabels annotates cells and supplements with their index paths.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithPageFill overrides the page background color.
func WithPageFill(hex string) SVGOption { return func(r *svgRenderer) { r.pageFill = hex } }

// WithScale multiplies the rendered size without changing the layout space.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderSVG draws a layout snapshot. Elements arrive z-ordered from the
// snapshot, so painting in slice order stacks them correctly.
func RenderSVG(snap *grid.Snapshot, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	w := snap.ContentSize.Width
	h := snap.ContentSize.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w*r.scale, h*r.scale)
	fmt.Fprintf(&buf, `<rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, r.pageFill)

	for _, el := range snap.Elements {
		r.renderElement(&buf, el)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{pageFill: defaultPageFill, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderElement(buf *bytes.Buffer, el grid.ElementSnapshot) {
	fill := el.BackgroundColor.Hex()
	stroke := ""
	switch el.Category {
	case "cell":
		if fill == "" {
			fill = defaultCellFill
		}
		stroke = defaultCellStroke
	case "supplement":
		if fill == "" {
			fill = defaultSupplementFill
		}
	default:
		if fill == "" {
			fill = defaultDecorationFill
		}
	}

	f := el.Frame
	fmt.Fprintf(buf, `<rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"`,
		el.Category, f.X, f.Y, f.Width, f.Height, fill)
	if stroke != "" {
		fmt.Fprintf(buf, ` stroke="%s"`, stroke)
	}
	buf.WriteString("/>\n")

	if r.labels && el.Category != "decoration" {
		label := el.IndexPath
		if el.Kind != "" {
			label = el.Kind + " " + label
		}
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" font-size="10" fill="%s">%s</text>`+"\n",
			f.X+4, f.Y+12, labelFill, label)
	}
}
