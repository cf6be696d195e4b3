package grid

import (
	"testing"

	"github.com/google/uuid"

	"github.com/abhi266raj/gridlayout/pkg/geo"
)

// stubSource is a scriptable DataSource for tests.
type stubSource struct {
	metrics map[SectionIndex]SectionMetrics
	counts  []int
}

func (s *stubSource) SnapshotMetrics() map[SectionIndex]SectionMetrics {
	out := make(map[SectionIndex]SectionMetrics, len(s.metrics))
	for k, v := range s.metrics {
		out[k] = v
	}
	return out
}

func (s *stubSource) NumberOfSections() int { return len(s.counts) }

func (s *stubSource) NumberOfItems(idx SectionIndex) int {
	if int(idx) < 0 || int(idx) >= len(s.counts) {
		return 0
	}
	return s.counts[idx]
}

// stubViewport is a scriptable Viewport for tests.
type stubViewport struct {
	bounds geo.Rect
	inset  geo.Edges
	offset geo.Point
	scale  float64
	id     uuid.UUID
}

func newStubViewport(width, height float64) *stubViewport {
	return &stubViewport{
		bounds: geo.NewRect(0, 0, width, height),
		scale:  1,
		id:     uuid.New(),
	}
}

func (v *stubViewport) Bounds() geo.Rect         { return v.bounds }
func (v *stubViewport) ContentInset() geo.Edges  { return v.inset }
func (v *stubViewport) ContentOffset() geo.Point { return v.offset }
func (v *stubViewport) PixelScale() float64      { return v.scale }
func (v *stubViewport) ID() uuid.UUID            { return v.id }

// plainSection returns single-column metrics with a fixed row height.
func plainSection(rowHeight float64) SectionMetrics {
	return SectionMetrics{NumberOfColumns: 1, RowHeight: rowHeight}
}

// headeredSection prepends a fixed-height header band.
func headeredSection(headerHeight, rowHeight float64) SectionMetrics {
	m := plainSection(rowHeight)
	m.Supplements = []SupplementaryMetrics{{Kind: SupplementKindHeader, Height: headerHeight}}
	return m
}

func TestEngineBuildsOnFirstQuery(t *testing.T) {
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{
			0: headeredSection(20, 40),
			1: func() SectionMetrics {
				m := plainSection(40)
				m.NumberOfColumns = 2
				return m
			}(),
		},
		counts: []int{3, 4},
	}
	vp := newStubViewport(400, 600)
	e := New(ds, vp, Options{})

	size := e.ContentSize()
	// Section 0: 20 header + 3 rows of 40 = 140. Section 1: 2 rows of 40 = 80.
	if size.Height != 220 {
		t.Errorf("ContentSize().Height = %v, want 220", size.Height)
	}
	if size.Width != 400 {
		t.Errorf("ContentSize().Width = %v, want 400", size.Width)
	}

	a := e.CellAttributes(NewIndexPath(0, 1))
	if a == nil {
		t.Fatal("CellAttributes(0.1) = nil, want attributes")
	}
	want := geo.NewRect(0, 60, 400, 40)
	if a.Frame != want {
		t.Errorf("CellAttributes(0.1).Frame = %v, want %v", a.Frame, want)
	}
	if a.ZIndex != zIndexCell {
		t.Errorf("ZIndex = %d, want %d", a.ZIndex, zIndexCell)
	}

	// Second section's cells land in two columns of half width.
	b := e.CellAttributes(NewIndexPath(1, 1))
	if b == nil {
		t.Fatal("CellAttributes(1.1) = nil, want attributes")
	}
	wantB := geo.NewRect(200, 140, 200, 40)
	if b.Frame != wantB {
		t.Errorf("CellAttributes(1.1).Frame = %v, want %v", b.Frame, wantB)
	}
	if b.ColumnIndex != 1 {
		t.Errorf("ColumnIndex = %d, want 1", b.ColumnIndex)
	}
}

func TestCellAttributesMissingReturnsNil(t *testing.T) {
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{0: plainSection(40)},
		counts:  []int{2},
	}
	e := New(ds, newStubViewport(400, 600), Options{})

	if a := e.CellAttributes(NewIndexPath(0, 99)); a != nil {
		t.Errorf("CellAttributes(0.99) = %+v, want nil", a)
	}
	if a := e.CellAttributes(NewIndexPath(7, 0)); a != nil {
		t.Errorf("CellAttributes(7.0) = %+v, want nil", a)
	}
	if a := e.SupplementAttributes(SupplementKindHeader, NewIndexPath(0, 0)); a != nil {
		t.Errorf("SupplementAttributes(header, 0.0) = %+v, want nil", a)
	}
}

func TestAttributesInRectFiltersAndSorts(t *testing.T) {
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{
			0: headeredSection(20, 40),
			1: headeredSection(20, 40),
		},
		counts: []int{3, 3},
	}
	e := New(ds, newStubViewport(400, 600), Options{})

	// Section 0 spans y 0..140; query only its extent.
	got := e.AttributesInRect(geo.NewRect(0, 0, 400, 139))
	for _, a := range got {
		if a.IndexPath.Section != 0 {
			t.Errorf("attribute %v leaked from section %v", a.Key(), a.IndexPath.Section)
		}
	}
	// 1 header + 3 cells.
	if len(got) != 4 {
		t.Fatalf("len(AttributesInRect) = %d, want 4", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ZIndex > got[i].ZIndex {
			t.Errorf("results out of z order at %d: %d > %d", i, got[i-1].ZIndex, got[i].ZIndex)
		}
	}
}

func TestRectQueryIdempotent(t *testing.T) {
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{0: headeredSection(20, 40)},
		counts:  []int{3},
	}
	e := New(ds, newStubViewport(400, 600), Options{})

	r := geo.NewRect(0, 0, 400, 600)
	first := e.AttributesInRect(r)
	second := e.AttributesInRect(r)
	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key() != second[i].Key() || first[i].Frame != second[i].Frame {
			t.Errorf("result %d differs between queries: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestRebuildRoundTrip(t *testing.T) {
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{
			0: headeredSection(20, 40),
			1: plainSection(30),
		},
		counts: []int{3, 2},
	}
	e := New(ds, newStubViewport(400, 600), Options{})

	before := e.CellAttributes(NewIndexPath(1, 1)).Clone()
	e.InvalidateData()
	after := e.CellAttributes(NewIndexPath(1, 1))

	if before.Frame != after.Frame {
		t.Errorf("frame changed across rebuild: %v vs %v", before.Frame, after.Frame)
	}
	e.EndUpdates()
}

func TestPlaceholderPrecedence(t *testing.T) {
	m := headeredSection(20, 40)
	m.HasPlaceholder = true
	m.Supplements[0].VisibleWhileShowingPlaceholder = true
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{0: m},
		counts:  []int{5}, // ignored: placeholder wins
	}
	e := New(ds, newStubViewport(400, 600), Options{})

	if a := e.CellAttributes(NewIndexPath(0, 0)); a != nil {
		t.Errorf("CellAttributes with placeholder = %+v, want nil", a)
	}
	p := e.SupplementAttributes(SupplementKindPlaceholder, NewIndexPath(0, 0))
	if p == nil {
		t.Fatal("placeholder attributes missing")
	}
	// Placeholder fills the viewport below the header.
	want := geo.NewRect(0, 20, 400, 580)
	if p.Frame != want {
		t.Errorf("placeholder frame = %v, want %v", p.Frame, want)
	}
	if size := e.ContentSize(); size.Height != 600 {
		t.Errorf("ContentSize().Height = %v, want 600", size.Height)
	}
}

func TestContentSizePadsForGlobalNonPinnableRegion(t *testing.T) {
	global := SectionMetrics{
		Supplements: []SupplementaryMetrics{{Kind: SupplementKindHeader, Height: 50}},
	}
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{
			GlobalSectionIndex: global,
			0:                  plainSection(40),
		},
		counts: []int{2},
	}
	vp := newStubViewport(400, 600)
	e := New(ds, vp, Options{})

	if size := e.ContentSize(); size.Height != 130 {
		t.Fatalf("unscrolled ContentSize().Height = %v, want 130", size.Height)
	}

	// Scrolled partway into the non-pinning region with short content, the
	// height grows so the scroll position remains reachable.
	vp.offset = geo.Point{Y: 20}
	if size := e.ContentSize(); size.Height != 620 {
		t.Errorf("scrolled ContentSize().Height = %v, want 620", size.Height)
	}
}

func TestShouldInvalidateForBounds(t *testing.T) {
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{0: plainSection(40)},
		counts:  []int{2},
	}
	vp := newStubViewport(400, 600)
	e := New(ds, vp, Options{})
	e.ContentSize() // build

	tests := []struct {
		name             string
		bounds           geo.Rect
		shouldInvalidate bool
		originChanged    bool
	}{
		{name: "same bounds", bounds: geo.NewRect(0, 0, 400, 600), shouldInvalidate: false, originChanged: false},
		{name: "height only", bounds: geo.NewRect(0, 0, 400, 800), shouldInvalidate: false, originChanged: false},
		{name: "scrolled", bounds: geo.NewRect(0, 120, 400, 600), shouldInvalidate: false, originChanged: true},
		{name: "width change", bounds: geo.NewRect(0, 0, 320, 600), shouldInvalidate: true, originChanged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.ShouldInvalidateForBounds(tt.bounds)
			if c.ShouldInvalidate != tt.shouldInvalidate {
				t.Errorf("ShouldInvalidate = %v, want %v", c.ShouldInvalidate, tt.shouldInvalidate)
			}
			if c.OriginChanged != tt.originChanged {
				t.Errorf("OriginChanged = %v, want %v", c.OriginChanged, tt.originChanged)
			}
			if !c.SameViewport {
				t.Error("SameViewport = false, want true")
			}
			e.ContentSize() // settle before the next case
		})
	}
}

func TestShouldInvalidateWhenBoundsBecomeNonEmpty(t *testing.T) {
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{0: plainSection(40)},
		counts:  []int{2},
	}
	vp := newStubViewport(400, 600)
	vp.bounds = geo.Rect{}
	e := New(ds, vp, Options{})
	e.ContentSize() // no-op: empty bounds

	vp.bounds = geo.NewRect(0, 0, 400, 600)
	c := e.ShouldInvalidateForBounds(vp.bounds)
	if !c.ShouldInvalidate {
		t.Error("ShouldInvalidate = false, want true for empty to non-empty")
	}
	if size := e.ContentSize(); size.Height != 80 {
		t.Errorf("ContentSize().Height = %v, want 80", size.Height)
	}
}

func TestDecorationAttributesUnknownKindPanics(t *testing.T) {
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{0: plainSection(40)},
		counts:  []int{1},
	}
	e := New(ds, newStubViewport(400, 600), Options{})

	defer func() {
		if recover() == nil {
			t.Error("DecorationAttributes with unknown kind did not panic")
		}
	}()
	e.DecorationAttributes("nonsense", NewIndexPath(0, 0))
}

func TestMeasuredSupplementRelayout(t *testing.T) {
	m := plainSection(40)
	m.Supplements = []SupplementaryMetrics{{Kind: SupplementKindHeader, MeasureContent: true}}
	ds := &stubSource{
		metrics: map[SectionIndex]SectionMetrics{0: m},
		counts:  []int{2},
	}
	e := New(ds, newStubViewport(400, 600), Options{
		Measurer: fixedMeasurer{supplement: geo.Size{Width: 400, Height: 64}},
	})

	h := e.SupplementAttributes(SupplementKindHeader, NewIndexPath(0, 0))
	if h == nil {
		t.Fatal("header attributes missing")
	}
	if h.Frame.Height != 64 {
		t.Errorf("measured header height = %v, want 64", h.Frame.Height)
	}
	if size := e.ContentSize(); size.Height != 144 {
		t.Errorf("ContentSize().Height = %v, want 144", size.Height)
	}
}

// fixedMeasurer returns canned sizes.
type fixedMeasurer struct {
	item       geo.Size
	supplement geo.Size
}

func (m fixedMeasurer) MeasureItem(_ IndexPath, target geo.Size) geo.Size {
	if m.item.IsEmpty() {
		return target
	}
	return m.item
}

func (m fixedMeasurer) MeasureSupplement(_ string, _ IndexPath, target geo.Size) geo.Size {
	if m.supplement.IsEmpty() {
		return target
	}
	return m.supplement
}
