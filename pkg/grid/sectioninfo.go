package grid

import "github.com/abhi266raj/gridlayout/pkg/geo"

// ItemInfo is the computed geometry of one item cell.
type ItemInfo struct {
	Frame       geo.Rect
	ColumnIndex int
}

// RowInfo groups the contiguous items sharing one horizontal band. Every
// row holds NumberOfColumns items except possibly the last.
type RowInfo struct {
	Frame geo.Rect
	Items []int // item indices within the section
}

// SupplementInfo is the computed geometry of one supplement band.
type SupplementInfo struct {
	Metrics SupplementaryMetrics
	Frame   geo.Rect

	// Index is the band's position among supplements of the same kind; it
	// is the element's identity across layout passes.
	Index int
}

// SectionInfo is the derived layout state of one section. It is created
// fresh when data validity is lost and relaid in place when only metrics
// validity is lost, preserving item and supplement identity.
type SectionInfo struct {
	Index   SectionIndex
	Metrics SectionMetrics

	Items       []ItemInfo
	Rows        []RowInfo
	Headers     []SupplementInfo
	Footers     []SupplementInfo
	Others      []SupplementInfo
	Placeholder *SupplementInfo

	// Frame is the union of all placed geometry.
	Frame geo.Rect

	// remeasured records whether the last Layout call invoked a supplement
	// measurement; the engine re-invalidates once when it did.
	remeasured bool
}

// NewSectionInfo builds the section model from its metrics and item count.
// A placeholder-bearing section gets exactly one placeholder supplement and
// zero items regardless of itemCount.
func NewSectionInfo(index SectionIndex, metrics SectionMetrics, itemCount int) *SectionInfo {
	m := metrics.normalized()
	s := &SectionInfo{Index: index, Metrics: m}

	if m.HasPlaceholder {
		itemCount = 0
	}
	if itemCount > 0 {
		s.Items = make([]ItemInfo, itemCount)
	}

	counts := map[string]int{}
	for _, sm := range m.Supplements {
		// The global band never has items, so its supplements always show.
		if index.IsGlobal() {
			sm.VisibleWhileShowingPlaceholder = true
		}
		info := SupplementInfo{Metrics: sm, Index: counts[sm.Kind]}
		counts[sm.Kind]++
		switch sm.Kind {
		case SupplementKindHeader:
			s.Headers = append(s.Headers, info)
		case SupplementKindFooter:
			s.Footers = append(s.Footers, info)
		case SupplementKindPlaceholder:
			info.Metrics.VisibleWhileShowingPlaceholder = true
			s.Placeholder = &info
		default:
			s.Others = append(s.Others, info)
		}
	}

	if m.HasPlaceholder && s.Placeholder == nil {
		s.Placeholder = &SupplementInfo{
			Metrics: SupplementaryMetrics{
				Kind:                           SupplementKindPlaceholder,
				VisibleWhileShowingPlaceholder: true,
			},
		}
	}
	if !m.HasPlaceholder {
		s.Placeholder = nil
	}

	return s
}

// Layout arranges the section within rect. The rect's origin is where the
// section begins; its height is the remaining viewport height (placeholders
// expand to fill it). Returns the y coordinate where the next section starts.
func (s *SectionInfo) Layout(rect geo.Rect, measure Measurer) float64 {
	s.remeasured = false
	y := rect.Y
	width := rect.Width
	showingItems := len(s.Items) > 0

	// Headers, top to bottom in declared order.
	for i := range s.Headers {
		h := &s.Headers[i]
		if h.Metrics.Hidden || (!showingItems && !h.Metrics.VisibleWhileShowingPlaceholder) {
			h.Frame = geo.Rect{}
			continue
		}
		height := s.supplementHeight(h, width, measure)
		h.Frame = geo.NewRect(rect.X, y, width, height)
		y += height
	}

	// Placeholder short-circuits items, footers and custom bands.
	if s.Placeholder != nil {
		available := max(0, rect.Bottom()-y)
		s.Placeholder.Frame = geo.NewRect(rect.X, y, width, available)
		y += available
		s.Frame = geo.NewRect(rect.X, rect.Y, width, y-rect.Y)
		return y
	}

	// Items partitioned into rows of NumberOfColumns.
	s.Rows = s.Rows[:0]
	if showingItems {
		padding := s.Metrics.Padding
		cols := s.Metrics.NumberOfColumns
		gridWidth := width - padding.Horizontal()
		columnWidth := gridWidth / float64(cols)
		y += padding.Top

		for first := 0; first < len(s.Items); first += cols {
			last := min(first+cols, len(s.Items))
			rowHeight := s.rowHeight(first, last, columnWidth, measure)

			row := RowInfo{Frame: geo.NewRect(rect.X+padding.Left, y, gridWidth, rowHeight)}
			for i := first; i < last; i++ {
				col := i - first
				s.Items[i] = ItemInfo{
					Frame:       geo.NewRect(rect.X+padding.Left+float64(col)*columnWidth, y, columnWidth, rowHeight),
					ColumnIndex: col,
				}
				row.Items = append(row.Items, i)
			}
			s.Rows = append(s.Rows, row)
			y += rowHeight
		}
		y += padding.Bottom
	}

	// Footers below the last row.
	for i := range s.Footers {
		f := &s.Footers[i]
		if f.Metrics.Hidden || !showingItems {
			f.Frame = geo.Rect{}
			continue
		}
		height := s.supplementHeight(f, width, measure)
		f.Frame = geo.NewRect(rect.X, y, width, height)
		y += height
	}

	// Custom bands occupy the section gap after the footers. They never
	// show without items.
	for i := range s.Others {
		o := &s.Others[i]
		if o.Metrics.Hidden || !showingItems {
			o.Frame = geo.Rect{}
			continue
		}
		height := s.supplementHeight(o, width, measure)
		o.Frame = geo.NewRect(rect.X, y, width, height)
		y += height
	}

	s.Frame = geo.NewRect(rect.X, rect.Y, width, y-rect.Y)
	return y
}

// supplementHeight resolves a band's height, measuring when the metrics
// request it. Without a measurer the target size passes through unchanged.
func (s *SectionInfo) supplementHeight(info *SupplementInfo, width float64, measure Measurer) float64 {
	m := info.Metrics
	if !m.MeasureContent {
		return m.Height
	}
	target := geo.Size{Width: width, Height: m.Height}
	if target.Height <= 0 {
		target.Height = DefaultRowHeight
	}
	if measure == nil {
		return target.Height
	}
	s.remeasured = true
	return measure.MeasureSupplement(m.Kind, NewIndexPath(s.Index, info.Index), target).Height
}

// rowHeight resolves the shared height of one row: the fixed metrics height,
// or the max of the measured item heights when items are measured.
func (s *SectionInfo) rowHeight(first, last int, columnWidth float64, measure Measurer) float64 {
	if !s.Metrics.MeasureItems || measure == nil {
		return s.Metrics.RowHeight
	}
	height := 0.0
	target := geo.Size{Width: columnWidth, Height: s.Metrics.RowHeight}
	for i := first; i < last; i++ {
		sz := measure.MeasureItem(NewIndexPath(s.Index, i), target)
		height = max(height, sz.Height)
	}
	if height <= 0 {
		height = s.Metrics.RowHeight
	}
	return height
}

// supplements calls fn for every supplement band of the section, placeholder
// included, in header/placeholder/footer/custom order.
func (s *SectionInfo) supplements(fn func(*SupplementInfo)) {
	for i := range s.Headers {
		fn(&s.Headers[i])
	}
	if s.Placeholder != nil {
		fn(s.Placeholder)
	}
	for i := range s.Footers {
		fn(&s.Footers[i])
	}
	for i := range s.Others {
		fn(&s.Others[i])
	}
}
