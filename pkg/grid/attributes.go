package grid

import "github.com/abhi266raj/gridlayout/pkg/geo"

// Z-order bands. The bands never overlap: cells draw below supplements,
// supplements below decorations, and pinned elements above everything.
const (
	zIndexCell          = 1
	zIndexSupplement    = 100
	zIndexDecoration    = 1000
	zIndexPinnedOverlap = 9900
	zIndexPinned        = 10000
)

// Attributes is the computed render state for one element. The engine owns
// the cached record; transition queries hand out clones so animation offsets
// never corrupt the source of truth.
type Attributes struct {
	// Identity.
	Category  Category
	Kind      string // supplement/decoration kind; empty for cells
	IndexPath IndexPath

	// Geometry.
	Frame  geo.Rect
	ZIndex int

	// Presentation.
	Hidden bool
	Alpha  float64

	BackgroundColor         Color
	SelectedBackgroundColor Color
	TintColor               Color
	SelectedTintColor       Color

	// Padding carried through from the metrics, for the renderer.
	Padding geo.Edges

	// Pinning. Pinned is true only when the element's position actually
	// differs from UnpinnedY beyond floating noise.
	Pinned    bool
	UnpinnedY float64

	// ColumnIndex is the item's column within its row. Cells only.
	ColumnIndex int
}

// Clone returns an independent copy.
func (a *Attributes) Clone() *Attributes {
	c := *a
	return &c
}

// Key returns the cache key identifying this element.
func (a *Attributes) Key() CacheKey {
	return CacheKey{Category: a.Category, Kind: a.Kind, IndexPath: a.IndexPath}
}

// CacheKey is the composite identity of a cached attribute record.
type CacheKey struct {
	Category  Category
	Kind      string
	IndexPath IndexPath
}

func cellKey(ip IndexPath) CacheKey {
	return CacheKey{Category: CategoryCell, IndexPath: ip}
}

func supplementKey(kind string, ip IndexPath) CacheKey {
	return CacheKey{Category: CategorySupplement, Kind: kind, IndexPath: ip}
}

func decorationKey(kind string, ip IndexPath) CacheKey {
	return CacheKey{Category: CategoryDecoration, Kind: kind, IndexPath: ip}
}

// attributeCache maps element identity to its computed attributes. The
// engine keeps two generations: rotating means the current map becomes the
// previous one and a fresh current map is started. No per-entry copying.
type attributeCache map[CacheKey]*Attributes
