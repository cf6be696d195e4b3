// Package preset loads grid descriptions from TOML files and turns them into
// the collaborators the layout engine consumes: a data source, a viewport,
// and section metrics.
//
// A preset describes the viewport and the sections of a grid:
//
//	[viewport]
//	width = 400
//	height = 600
//
//	[global]
//	background_color = "#202833"
//	[[global.supplement]]
//	kind = "header"
//	height = 50
//	pinned = true
//
//	[[section]]
//	columns = 2
//	row_height = 44
//	items = 12
//	separator_color = "#3a4454"
//	separators = ["rows", "after"]
package preset

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/abhi266raj/gridlayout/pkg/errors"
	"github.com/abhi266raj/gridlayout/pkg/geo"
	"github.com/abhi266raj/gridlayout/pkg/grid"
)

// Document is a parsed preset file.
type Document struct {
	Viewport ViewportConfig  `toml:"viewport"`
	Global   *SectionConfig  `toml:"global"`
	Sections []SectionConfig `toml:"section"`
}

// ViewportConfig describes the hosting scroll view.
type ViewportConfig struct {
	Width      float64     `toml:"width"`
	Height     float64     `toml:"height"`
	PixelScale float64     `toml:"pixel_scale"`
	Inset      EdgesConfig `toml:"inset"`
}

// EdgesConfig is a TOML-friendly geo.Edges.
type EdgesConfig struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

func (e EdgesConfig) edges() geo.Edges {
	return geo.Edges{Top: e.Top, Right: e.Right, Bottom: e.Bottom, Left: e.Left}
}

// SectionConfig describes one section (or the global band).
type SectionConfig struct {
	Columns     int     `toml:"columns"`
	RowHeight   float64 `toml:"row_height"`
	Items       int     `toml:"items"`
	Placeholder bool    `toml:"placeholder"`

	BackgroundColor       string `toml:"background_color"`
	TintColor             string `toml:"tint_color"`
	SeparatorColor        string `toml:"separator_color"`
	SectionSeparatorColor string `toml:"section_separator_color"`

	// Separators names the separator groups to draw: "rows", "columns",
	// "before", "after", "after_last", "supplements".
	Separators []string `toml:"separators"`

	Padding         EdgesConfig `toml:"padding"`
	SeparatorInsets EdgesConfig `toml:"separator_insets"`

	Supplements []SupplementConfig `toml:"supplement"`
}

// SupplementConfig describes one supplement band.
type SupplementConfig struct {
	Kind            string  `toml:"kind"`
	Height          float64 `toml:"height"`
	Measure         bool    `toml:"measure"`
	Pinned          bool    `toml:"pinned"`
	Hidden          bool    `toml:"hidden"`
	AlwaysVisible   bool    `toml:"always_visible"`
	BackgroundColor string  `toml:"background_color"`
}

// separatorFlagNames maps preset names to engine flags.
var separatorFlagNames = map[string]grid.SeparatorFlags{
	"rows":        grid.SeparatorsBetweenRows,
	"columns":     grid.SeparatorsBetweenColumns,
	"before":      grid.SeparatorsBeforeSection,
	"after":       grid.SeparatorsAfterSection,
	"after_last":  grid.SeparatorsAfterLastSection,
	"supplements": grid.SeparatorsAroundSupplements,
}

// Load reads and validates a preset file.
func Load(path string) (*Document, error) {
	if err := errors.ValidatePresetPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "cannot read preset %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates preset TOML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "malformed preset")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document's colors, kinds, and separator names.
func (d *Document) Validate() error {
	if d.Viewport.Width <= 0 || d.Viewport.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidPreset, "viewport must have positive width and height")
	}
	if d.Global != nil {
		if err := d.Global.validate("global"); err != nil {
			return err
		}
		if d.Global.Items > 0 {
			return errors.New(errors.ErrCodeInvalidPreset, "global section cannot have items")
		}
	}
	if len(d.Sections) == 0 {
		return errors.New(errors.ErrCodeInvalidPreset, "preset declares no sections")
	}
	for i := range d.Sections {
		if err := d.Sections[i].validate("section"); err != nil {
			return err
		}
	}
	return nil
}

func (s *SectionConfig) validate(label string) error {
	for _, c := range []string{s.BackgroundColor, s.TintColor, s.SeparatorColor, s.SectionSeparatorColor} {
		if err := errors.ValidateHexColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "%s has an invalid color", label)
		}
	}
	for _, name := range s.Separators {
		if _, ok := separatorFlagNames[name]; !ok {
			return errors.New(errors.ErrCodeInvalidPreset, "%s names unknown separator group %q", label, name)
		}
	}
	if s.Items < 0 {
		return errors.New(errors.ErrCodeInvalidPreset, "%s has negative item count", label)
	}
	for i := range s.Supplements {
		sup := &s.Supplements[i]
		if err := errors.ValidateKind(sup.Kind); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "%s supplement %d", label, i)
		}
		if err := errors.ValidateHexColor(sup.BackgroundColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "%s supplement %d has an invalid color", label, i)
		}
	}
	return nil
}

// metrics converts the section config into engine metrics. Colors were
// validated, so parse failures collapse to unset.
func (s *SectionConfig) metrics() grid.SectionMetrics {
	m := grid.SectionMetrics{
		NumberOfColumns:       s.Columns,
		RowHeight:             s.RowHeight,
		Padding:               s.Padding.edges(),
		SeparatorInsets:       s.SeparatorInsets.edges(),
		BackgroundColor:       parseColor(s.BackgroundColor),
		TintColor:             parseColor(s.TintColor),
		SeparatorColor:        parseColor(s.SeparatorColor),
		SectionSeparatorColor: parseColor(s.SectionSeparatorColor),
		HasPlaceholder:        s.Placeholder,
	}
	for _, name := range s.Separators {
		m.Separators |= separatorFlagNames[name]
	}
	for _, sup := range s.Supplements {
		m.Supplements = append(m.Supplements, grid.SupplementaryMetrics{
			Kind:                           sup.Kind,
			Height:                         sup.Height,
			MeasureContent:                 sup.Measure,
			Pinned:                         sup.Pinned,
			Hidden:                         sup.Hidden,
			VisibleWhileShowingPlaceholder: sup.AlwaysVisible,
			BackgroundColor:                parseColor(sup.BackgroundColor),
		})
	}
	return m
}

func parseColor(s string) grid.Color {
	if s == "" {
		return grid.Color{}
	}
	c, err := grid.ParseColor(s)
	if err != nil {
		return grid.Color{}
	}
	return c
}

// Source materializes the document as a grid.DataSource.
func (d *Document) Source() *Source {
	src := &Source{metrics: make(map[grid.SectionIndex]grid.SectionMetrics)}
	if d.Global != nil {
		src.metrics[grid.GlobalSectionIndex] = d.Global.metrics()
	}
	for i := range d.Sections {
		src.metrics[grid.SectionIndex(i)] = d.Sections[i].metrics()
		src.counts = append(src.counts, d.Sections[i].Items)
	}
	return src
}

// Source is a static grid.DataSource built from a preset. Item counts can be
// mutated between update batches to drive transitions.
type Source struct {
	metrics map[grid.SectionIndex]grid.SectionMetrics
	counts  []int
}

// SnapshotMetrics implements grid.DataSource.
func (s *Source) SnapshotMetrics() map[grid.SectionIndex]grid.SectionMetrics {
	out := make(map[grid.SectionIndex]grid.SectionMetrics, len(s.metrics))
	for k, v := range s.metrics {
		out[k] = v
	}
	return out
}

// NumberOfSections implements grid.DataSource.
func (s *Source) NumberOfSections() int { return len(s.counts) }

// NumberOfItems implements grid.DataSource.
func (s *Source) NumberOfItems(idx grid.SectionIndex) int {
	if int(idx) < 0 || int(idx) >= len(s.counts) {
		return 0
	}
	return s.counts[idx]
}

// SetItemCount updates a section's item count for the next rebuild.
func (s *Source) SetItemCount(idx grid.SectionIndex, count int) {
	if int(idx) >= 0 && int(idx) < len(s.counts) && count >= 0 {
		s.counts[idx] = count
	}
}
