package grid

import (
	"github.com/google/uuid"

	"github.com/abhi266raj/gridlayout/pkg/geo"
)

// DataSource supplies section structure and configuration to the engine.
// SnapshotMetrics is called once per full rebuild; the returned map may
// include GlobalSectionIndex for the global band.
type DataSource interface {
	// SnapshotMetrics returns the per-section configuration snapshot.
	SnapshotMetrics() map[SectionIndex]SectionMetrics

	// NumberOfSections returns the count of ordinary sections.
	NumberOfSections() int

	// NumberOfItems returns the item count for an ordinary section.
	NumberOfItems(section SectionIndex) int
}

// Measurer measures the natural size of items and supplements whose metrics
// request content fitting. Implementations receive the target size the
// engine would otherwise use and return the fitted size.
type Measurer interface {
	MeasureItem(ip IndexPath, target geo.Size) geo.Size
	MeasureSupplement(kind string, ip IndexPath, target geo.Size) geo.Size
}

// Viewport describes the hosting scroll view. The engine never retains
// values across calls except where documented; queries read the viewport
// fresh each time so pinning tracks the live scroll position.
type Viewport interface {
	// Bounds is the viewport rectangle in content coordinates.
	Bounds() geo.Rect

	// ContentInset pads the scrollable content.
	ContentInset() geo.Edges

	// ContentOffset is the current scroll position.
	ContentOffset() geo.Point

	// PixelScale converts layout units to device pixels (1 on standard
	// density screens). Hairline separators are 1/PixelScale units thick.
	PixelScale() float64

	// ID identifies the hosting view instance. The engine compares it by
	// value to detect that it was handed a different view.
	ID() uuid.UUID
}
