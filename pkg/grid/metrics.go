package grid

import "github.com/abhi266raj/gridlayout/pkg/geo"

// Supplement kinds understood by the engine. Sections may declare additional
// free-form kinds; those never pin and are hidden while a placeholder shows.
const (
	SupplementKindHeader      = "header"
	SupplementKindFooter      = "footer"
	SupplementKindPlaceholder = "placeholder"
)

// Decoration kinds synthesized by the engine.
const (
	DecorationKindRowSeparator     = "rowSeparator"
	DecorationKindColumnSeparator  = "columnSeparator"
	DecorationKindHeaderSeparator  = "headerSeparator"
	DecorationKindFooterSeparator  = "footerSeparator"
	DecorationKindSectionSeparator = "sectionSeparator"
	DecorationKindGlobalBackground = "globalBackground"
)

// DefaultRowHeight is used when a section declares no row height and items
// are not measured.
const DefaultRowHeight = 44.0

// SeparatorFlags selects which separator decorations a section synthesizes.
type SeparatorFlags uint8

const (
	// SeparatorsBeforeSection draws a hairline above the first row when the
	// section has no headers of its own.
	SeparatorsBeforeSection SeparatorFlags = 1 << iota

	// SeparatorsAfterSection draws a hairline after the section's last row,
	// unless this is the structurally last section.
	SeparatorsAfterSection

	// SeparatorsAfterLastSection draws the trailing hairline even after the
	// structurally last section.
	SeparatorsAfterLastSection

	// SeparatorsBetweenRows draws hairlines between consecutive rows.
	SeparatorsBetweenRows

	// SeparatorsBetweenColumns draws hairlines between items within a row.
	SeparatorsBetweenColumns

	// SeparatorsAroundSupplements draws hairlines between headers and
	// above footers.
	SeparatorsAroundSupplements
)

// Has returns true if all bits of flag are set.
func (f SeparatorFlags) Has(flag SeparatorFlags) bool {
	return f&flag == flag
}

// SupplementaryMetrics configures one supplement band of a section.
type SupplementaryMetrics struct {
	// Kind is one of the SupplementKind constants or a free-form custom kind.
	Kind string

	// Height is the fixed band height. Ignored when MeasureContent is set.
	Height float64

	// MeasureContent asks the engine to measure the band's natural size via
	// the Measurer. Without a Measurer the target size is used unchanged.
	MeasureContent bool

	// Padding is applied inside the band by whoever renders it; the engine
	// carries it through to the attributes untouched.
	Padding geo.Edges

	// Colors. Unset values inherit from the section.
	BackgroundColor         Color
	SelectedBackgroundColor Color
	TintColor               Color
	SelectedTintColor       Color

	// Pinned keeps the band at the viewport edge while content scrolls.
	// Only header bands may pin.
	Pinned bool

	// Hidden suppresses the band without removing it from layout identity.
	Hidden bool

	// VisibleWhileShowingPlaceholder keeps the band visible when the section
	// shows a placeholder (or has no items).
	VisibleWhileShowingPlaceholder bool
}

// SectionMetrics is the immutable per-section configuration snapshot
// consumed once per layout pass.
type SectionMetrics struct {
	// NumberOfColumns is clamped to at least 1.
	NumberOfColumns int

	// RowHeight is the fixed row height. When MeasureItems is set it becomes
	// the measurement target instead.
	RowHeight float64

	// MeasureItems asks the engine to measure each item's natural height;
	// a row is as tall as its tallest item.
	MeasureItems bool

	// Padding surrounds the item grid (group padding).
	Padding geo.Edges

	// Colors.
	BackgroundColor         Color
	SelectedBackgroundColor Color
	TintColor               Color
	SelectedTintColor       Color

	// SeparatorColor draws row/column/header/footer separators.
	SeparatorColor Color

	// SectionSeparatorColor draws the separators before/after the section.
	// Falls back to SeparatorColor when unset.
	SectionSeparatorColor Color

	// Separators selects which separator decorations to synthesize.
	Separators SeparatorFlags

	// SeparatorInsets shrink row and header/footer separators horizontally.
	SeparatorInsets geo.Edges

	// SectionSeparatorInsets shrink the before/after section separators.
	SectionSeparatorInsets geo.Edges

	// Supplements in declared order.
	Supplements []SupplementaryMetrics

	// HasPlaceholder shows exactly one placeholder band and zero items,
	// overriding any item configuration. Placeholder precedence is absolute.
	HasPlaceholder bool
}

// DefaultSectionMetrics returns metrics for a plain single-column section.
func DefaultSectionMetrics() SectionMetrics {
	return SectionMetrics{
		NumberOfColumns: 1,
		RowHeight:       DefaultRowHeight,
	}
}

// normalized returns a copy with defaults applied and colors normalized:
// column count clamped to >= 1, zero row height defaulted, and the
// transparent sentinel collapsed to unset everywhere.
func (m SectionMetrics) normalized() SectionMetrics {
	out := m
	if out.NumberOfColumns < 1 {
		out.NumberOfColumns = 1
	}
	if out.RowHeight <= 0 {
		out.RowHeight = DefaultRowHeight
	}
	out.BackgroundColor = out.BackgroundColor.Normalize()
	out.SelectedBackgroundColor = out.SelectedBackgroundColor.Normalize()
	out.TintColor = out.TintColor.Normalize()
	out.SelectedTintColor = out.SelectedTintColor.Normalize()
	out.SeparatorColor = out.SeparatorColor.Normalize()
	out.SectionSeparatorColor = out.SectionSeparatorColor.Normalize()

	out.Supplements = make([]SupplementaryMetrics, len(m.Supplements))
	for i, s := range m.Supplements {
		s.BackgroundColor = s.BackgroundColor.Normalize()
		s.SelectedBackgroundColor = s.SelectedBackgroundColor.Normalize()
		s.TintColor = s.TintColor.Normalize()
		s.SelectedTintColor = s.SelectedTintColor.Normalize()
		// Only headers participate in pinning.
		if s.Kind != SupplementKindHeader {
			s.Pinned = false
		}
		out.Supplements[i] = s
	}
	return out
}

// sectionSeparatorColor resolves the color used for before/after separators.
func (m SectionMetrics) sectionSeparatorColor() Color {
	if m.SectionSeparatorColor.IsSet() {
		return m.SectionSeparatorColor
	}
	return m.SeparatorColor
}
