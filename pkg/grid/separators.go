package grid

import "github.com/abhi266raj/gridlayout/pkg/geo"

// hairline is the separator thickness in layout units: one device pixel.
func (e *Engine) hairline() float64 {
	scale := e.vp.PixelScale()
	if scale <= 0 {
		scale = 1
	}
	return 1 / scale
}

// cacheSeparators synthesizes the decoration attributes for one ordinary
// section. Decoration identity is (kind, section, ordinal), so the same
// element keeps its key across metrics-only relayouts.
func (e *Engine) cacheSeparators(s *SectionInfo, isLast bool) {
	if len(s.Items) == 0 && s.Placeholder == nil {
		return
	}

	m := s.Metrics
	thickness := e.hairline()
	color := m.SeparatorColor
	insets := m.SeparatorInsets

	// hline is a hairline flush against an edge of the anchor, spanning the
	// section's width minus insets.
	hline := func(anchor geo.Rect, edge geo.Edge, in geo.Edges) geo.Rect {
		f := geo.SeparatorRect(anchor, edge, thickness)
		f.X = s.Frame.X + in.Left
		f.Width = s.Frame.Width - in.Horizontal()
		return f
	}
	add := func(kind string, ordinal int, frame geo.Rect, c Color) {
		a := &Attributes{
			Category:        CategoryDecoration,
			Kind:            kind,
			IndexPath:       NewIndexPath(s.Index, ordinal),
			Frame:           frame,
			ZIndex:          zIndexDecoration,
			Alpha:           1,
			BackgroundColor: c,
			UnpinnedY:       frame.Y,
		}
		e.current[a.Key()] = a
	}

	visibleHeaders := visibleBands(s.Headers)
	visibleFooters := visibleBands(s.Footers)

	if color.IsSet() {
		// Between consecutive headers, and above each footer.
		if m.Separators.Has(SeparatorsAroundSupplements) {
			for i := 1; i < len(visibleHeaders); i++ {
				add(DecorationKindHeaderSeparator, i, hline(visibleHeaders[i].Frame, geo.EdgeTop, insets), color)
			}
			for _, f := range visibleFooters {
				add(DecorationKindFooterSeparator, f.Index, hline(f.Frame, geo.EdgeTop, insets), color)
			}
		}

		// Below the last header, where the content begins.
		if m.Separators.Has(SeparatorsBetweenRows) && len(visibleHeaders) > 0 {
			last := visibleHeaders[len(visibleHeaders)-1]
			below := last.Frame.Translate(0, last.Frame.Height)
			add(DecorationKindHeaderSeparator, len(visibleHeaders), hline(below, geo.EdgeTop, insets), color)
		}

		// Between consecutive rows.
		if m.Separators.Has(SeparatorsBetweenRows) {
			for i := 1; i < len(s.Rows); i++ {
				add(DecorationKindRowSeparator, i, hline(s.Rows[i].Frame, geo.EdgeTop, insets), color)
			}
		}

		// Between columns: a vertical hairline on the left edge of every item
		// past the first in its row.
		if m.Separators.Has(SeparatorsBetweenColumns) {
			for i, it := range s.Items {
				if it.ColumnIndex == 0 {
					continue
				}
				f := geo.SeparatorRect(it.Frame, geo.EdgeLeft, thickness)
				f.Y += insets.Top
				f.Height -= insets.Vertical()
				add(DecorationKindColumnSeparator, i, f, color)
			}
		}
	}

	sectionColor := m.sectionSeparatorColor()
	if sectionColor.IsSet() {
		// Above the section, but only when it has no header of its own.
		if m.Separators.Has(SeparatorsBeforeSection) && len(visibleHeaders) == 0 {
			add(DecorationKindSectionSeparator, 0, hline(s.Frame, geo.EdgeTop, m.SectionSeparatorInsets), sectionColor)
		}
		after := m.Separators.Has(SeparatorsAfterSection) &&
			(!isLast || m.Separators.Has(SeparatorsAfterLastSection))
		if after {
			add(DecorationKindSectionSeparator, 1, hline(s.Frame, geo.EdgeBottom, m.SectionSeparatorInsets), sectionColor)
		}
	}
}

// visibleBands filters the supplements that actually occupy space.
func visibleBands(bands []SupplementInfo) []*SupplementInfo {
	var out []*SupplementInfo
	for i := range bands {
		if !bands[i].Frame.IsEmpty() {
			out = append(out, &bands[i])
		}
	}
	return out
}
