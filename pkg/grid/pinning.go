package grid

import "github.com/abhi266raj/gridlayout/pkg/geo"

// updateSpecialAttributes repositions pinnable elements against the live
// scroll offset. It runs on every query, so it walks only the bookkeeping
// lists built during the last pass, never the whole cache.
func (e *Engine) updateSpecialAttributes() {
	if !e.dataValid || !e.metricsValid {
		return
	}

	offset := e.vp.ContentOffset()
	inset := e.vp.ContentInset()
	pinY := offset.Y + inset.Top
	nonPinY := pinY

	// Reset before repositioning so repeated queries are idempotent.
	for _, a := range e.globalPinnable {
		resetPinning(a)
	}
	for _, a := range e.globalNonPinnable {
		resetPinning(a)
	}
	for _, list := range e.sectionPinnable {
		for _, a := range list {
			resetPinning(a)
		}
	}

	// Non-pinnable global headers push up and off screen, bottom first.
	nonPinY = applyBottomPinning(e.globalNonPinnable, nonPinY)
	finalizePinning(e.globalNonPinnable)

	// Pinnable global headers stack top-down at the viewport top.
	pinY = applyTopPinning(e.globalPinnable, pinY)
	finalizePinning(e.globalPinnable)

	// The global background stretches from the viewport top to the bottom of
	// the pinned stack, covering the gap the pinned headers scrolled over.
	if e.background != nil {
		top := min(nonPinY, offset.Y+inset.Top)
		e.background.Frame.Y = top
		e.background.Frame.Height = max(0, pinY-top)
	}

	// At most one ordinary section straddles the pinned edge; its own
	// pinnable headers stick beneath the global stack, clamped so they never
	// escape their section.
	if s := e.firstSectionOverlapping(pinY); s != nil {
		list := e.sectionPinnable[s.Index]
		applyTopPinningClamped(list, pinY, s.Frame.Bottom())
		for i, a := range list {
			a.Pinned = !geo.ApproxEqual(a.Frame.Y, a.UnpinnedY)
			if a.Pinned {
				a.ZIndex = zIndexPinnedOverlap - i
			}
		}
	}
}

func resetPinning(a *Attributes) {
	a.Frame.Y = a.UnpinnedY
	a.Pinned = false
	a.ZIndex = zIndexSupplement
}

// applyTopPinning stacks elements downward from minY: any element whose
// natural position lies above minY is moved to minY, and minY advances past
// it. Returns the bottom of the stack.
func applyTopPinning(list []*Attributes, minY float64) float64 {
	for _, a := range list {
		if a.Frame.Y < minY {
			a.Frame.Y = minY
		}
		minY = a.Frame.Bottom()
	}
	return minY
}

// applyTopPinningClamped pins like applyTopPinning but never lets an element
// slide past sectionBottom, so a section's header scrolls away with it.
func applyTopPinningClamped(list []*Attributes, minY, sectionBottom float64) {
	for _, a := range list {
		if a.Frame.Y < minY {
			a.Frame.Y = min(minY, sectionBottom-a.Frame.Height)
		}
		minY = a.Frame.Bottom()
	}
}

// applyBottomPinning stacks elements upward from maxY, bottom element first.
// Returns the top of the stack.
func applyBottomPinning(list []*Attributes, maxY float64) float64 {
	for i := len(list) - 1; i >= 0; i-- {
		a := list[i]
		if a.Frame.Bottom() < maxY {
			a.Frame.Y = maxY - a.Frame.Height
		}
		maxY = a.Frame.Y
	}
	return maxY
}

// finalizePinning marks moved elements as pinned and raises them above
// everything else. Later list entries win z ties, so the element pinned last
// draws beneath the ones pinned before it.
func finalizePinning(list []*Attributes) {
	for i, a := range list {
		a.Pinned = !geo.ApproxEqual(a.Frame.Y, a.UnpinnedY)
		if a.Pinned {
			a.ZIndex = zIndexPinned - i
		}
	}
}

// firstSectionOverlapping returns the ordinary section whose frame straddles
// the given y, or nil.
func (e *Engine) firstSectionOverlapping(y float64) *SectionInfo {
	for _, s := range e.sections {
		if s.Frame.Y <= y && y < s.Frame.Bottom() {
			return s
		}
	}
	return nil
}
