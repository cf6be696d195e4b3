package grid

import "fmt"

// SectionIndex identifies a section. Ordinary sections are numbered from
// zero; the synthetic global section uses GlobalSectionIndex.
type SectionIndex int

// GlobalSectionIndex is the always-present section rendered above all
// ordinary sections, commonly holding a pinned search or filter band.
const GlobalSectionIndex SectionIndex = -1

// IsGlobal returns true for the global section.
func (s SectionIndex) IsGlobal() bool {
	return s == GlobalSectionIndex
}

// String returns "global" or the decimal section number.
func (s SectionIndex) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return fmt.Sprintf("%d", int(s))
}

// IndexPath addresses one element: a section plus an item position within it.
// Supplements and decorations use the item position as their per-kind index.
type IndexPath struct {
	Section SectionIndex
	Item    int
}

// NewIndexPath creates an IndexPath.
func NewIndexPath(section SectionIndex, item int) IndexPath {
	return IndexPath{Section: section, Item: item}
}

// String formats the path as "section.item".
func (ip IndexPath) String() string {
	return fmt.Sprintf("%s.%d", ip.Section, ip.Item)
}

// Category distinguishes the three families of rendered elements.
type Category uint8

const (
	// CategoryCell is an item cell.
	CategoryCell Category = iota

	// CategorySupplement is a section-owned band (header, footer, custom).
	CategorySupplement

	// CategoryDecoration is a purely visual element (separator, background).
	CategoryDecoration
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryCell:
		return "cell"
	case CategorySupplement:
		return "supplement"
	case CategoryDecoration:
		return "decoration"
	}
	return "unknown"
}
