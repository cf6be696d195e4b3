package grid

import (
	"testing"

	"github.com/abhi266raj/gridlayout/pkg/geo"
)

func TestNewSectionInfoPlaceholderPrecedence(t *testing.T) {
	m := headeredSection(20, 40)
	m.HasPlaceholder = true
	s := NewSectionInfo(0, m, 7)

	if len(s.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0 with placeholder", len(s.Items))
	}
	if s.Placeholder == nil {
		t.Fatal("Placeholder = nil, want synthesized placeholder")
	}
	if !s.Placeholder.Metrics.VisibleWhileShowingPlaceholder {
		t.Error("placeholder must be visible while showing placeholder")
	}
}

func TestNewSectionInfoSupplementPartitioning(t *testing.T) {
	m := SectionMetrics{
		Supplements: []SupplementaryMetrics{
			{Kind: SupplementKindHeader, Height: 10},
			{Kind: "sideBand", Height: 12},
			{Kind: SupplementKindHeader, Height: 14},
			{Kind: SupplementKindFooter, Height: 16},
		},
	}
	s := NewSectionInfo(0, m, 1)

	if len(s.Headers) != 2 || len(s.Footers) != 1 || len(s.Others) != 1 {
		t.Fatalf("partition = %d/%d/%d headers/footers/others, want 2/1/1",
			len(s.Headers), len(s.Footers), len(s.Others))
	}
	// Per-kind ordinals, not declaration order.
	if s.Headers[0].Index != 0 || s.Headers[1].Index != 1 {
		t.Errorf("header indices = %d, %d, want 0, 1", s.Headers[0].Index, s.Headers[1].Index)
	}
	if s.Others[0].Index != 0 {
		t.Errorf("custom band index = %d, want 0", s.Others[0].Index)
	}
}

func TestLayoutRowsAndColumns(t *testing.T) {
	tests := []struct {
		name     string
		columns  int
		items    int
		wantRows int
		wantEnd  float64
	}{
		{name: "single column", columns: 1, items: 3, wantRows: 3, wantEnd: 120},
		{name: "two columns even", columns: 2, items: 4, wantRows: 2, wantEnd: 80},
		{name: "two columns ragged", columns: 2, items: 5, wantRows: 3, wantEnd: 120},
		{name: "more columns than items", columns: 4, items: 2, wantRows: 1, wantEnd: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := plainSection(40)
			m.NumberOfColumns = tt.columns
			s := NewSectionInfo(0, m, tt.items)

			end := s.Layout(geo.NewRect(0, 0, 400, 600), nil)
			if end != tt.wantEnd {
				t.Errorf("Layout() = %v, want %v", end, tt.wantEnd)
			}
			if len(s.Rows) != tt.wantRows {
				t.Errorf("len(Rows) = %d, want %d", len(s.Rows), tt.wantRows)
			}

			colWidth := 400 / float64(tt.columns)
			for i, it := range s.Items {
				wantCol := i % tt.columns
				if it.ColumnIndex != wantCol {
					t.Errorf("item %d ColumnIndex = %d, want %d", i, it.ColumnIndex, wantCol)
				}
				if it.Frame.X != float64(wantCol)*colWidth {
					t.Errorf("item %d Frame.X = %v, want %v", i, it.Frame.X, float64(wantCol)*colWidth)
				}
			}
		})
	}
}

func TestLayoutItemsDoNotOverlap(t *testing.T) {
	m := plainSection(40)
	m.NumberOfColumns = 3
	s := NewSectionInfo(0, m, 8)
	s.Layout(geo.NewRect(0, 0, 300, 600), nil)

	for i := range s.Items {
		for j := i + 1; j < len(s.Items); j++ {
			if s.Items[i].Frame.Intersects(s.Items[j].Frame) {
				t.Errorf("items %d and %d overlap: %v vs %v", i, j, s.Items[i].Frame, s.Items[j].Frame)
			}
		}
		if !s.Frame.ContainsRect(s.Items[i].Frame) {
			t.Errorf("item %d escapes the section frame: %v not in %v", i, s.Items[i].Frame, s.Frame)
		}
	}
}

func TestLayoutGroupPadding(t *testing.T) {
	m := plainSection(40)
	m.Padding = geo.Edges{Top: 8, Left: 10, Right: 10, Bottom: 12}
	s := NewSectionInfo(0, m, 2)

	end := s.Layout(geo.NewRect(0, 100, 400, 600), nil)
	if end != 200 {
		t.Errorf("Layout() = %v, want 200 (8 + 80 + 12 after origin 100)", end)
	}
	first := s.Items[0].Frame
	if first.X != 10 || first.Y != 108 || first.Width != 380 {
		t.Errorf("first item frame = %v, want x=10 y=108 w=380", first)
	}
}

func TestLayoutHeaderVisibility(t *testing.T) {
	tests := []struct {
		name       string
		items      int
		hidden     bool
		visibleAll bool
		wantEmpty  bool
	}{
		{name: "with items", items: 2, wantEmpty: false},
		{name: "hidden", items: 2, hidden: true, wantEmpty: true},
		{name: "no items", items: 0, wantEmpty: true},
		{name: "no items but always visible", items: 0, visibleAll: true, wantEmpty: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := plainSection(40)
			m.Supplements = []SupplementaryMetrics{{
				Kind:                           SupplementKindHeader,
				Height:                         20,
				Hidden:                         tt.hidden,
				VisibleWhileShowingPlaceholder: tt.visibleAll,
			}}
			s := NewSectionInfo(0, m, tt.items)
			s.Layout(geo.NewRect(0, 0, 400, 600), nil)

			if got := s.Headers[0].Frame.IsEmpty(); got != tt.wantEmpty {
				t.Errorf("header frame empty = %v, want %v", got, tt.wantEmpty)
			}
		})
	}
}

func TestLayoutFootersAndCustomBandsNeedItems(t *testing.T) {
	m := plainSection(40)
	m.Supplements = []SupplementaryMetrics{
		{Kind: SupplementKindFooter, Height: 24},
		{Kind: "sideBand", Height: 30},
	}
	s := NewSectionInfo(0, m, 0)
	end := s.Layout(geo.NewRect(0, 0, 400, 600), nil)

	if end != 0 {
		t.Errorf("Layout() = %v, want 0 for empty section", end)
	}
	if !s.Footers[0].Frame.IsEmpty() || !s.Others[0].Frame.IsEmpty() {
		t.Error("footer/custom band placed without items")
	}

	// With items both bands land after the rows.
	s = NewSectionInfo(0, m, 1)
	end = s.Layout(geo.NewRect(0, 0, 400, 600), nil)
	if end != 94 {
		t.Errorf("Layout() = %v, want 94 (40 + 24 + 30)", end)
	}
	if s.Others[0].Frame.Y != 64 {
		t.Errorf("custom band Frame.Y = %v, want 64 (after footer)", s.Others[0].Frame.Y)
	}
}

func TestMeasuredRowHeightUsesTallestItem(t *testing.T) {
	m := plainSection(40)
	m.NumberOfColumns = 2
	m.MeasureItems = true
	s := NewSectionInfo(0, m, 2)

	measurer := varyingMeasurer{heights: map[IndexPath]float64{
		NewIndexPath(0, 0): 30,
		NewIndexPath(0, 1): 52,
	}}
	s.Layout(geo.NewRect(0, 0, 400, 600), measurer)

	if s.Rows[0].Frame.Height != 52 {
		t.Errorf("row height = %v, want 52 (tallest item)", s.Rows[0].Frame.Height)
	}
	if s.Items[0].Frame.Height != 52 {
		t.Errorf("item 0 height = %v, want shared row height 52", s.Items[0].Frame.Height)
	}
}

// varyingMeasurer returns per-item heights.
type varyingMeasurer struct {
	heights map[IndexPath]float64
}

func (m varyingMeasurer) MeasureItem(ip IndexPath, target geo.Size) geo.Size {
	if h, ok := m.heights[ip]; ok {
		return geo.Size{Width: target.Width, Height: h}
	}
	return target
}

func (m varyingMeasurer) MeasureSupplement(_ string, _ IndexPath, target geo.Size) geo.Size {
	return target
}
