package grid

import (
	"encoding/json"
	"io"

	"github.com/abhi266raj/gridlayout/pkg/geo"
)

// Snapshot is a serializable view of a computed layout, consumed by the CLI
// and the HTTP inspector.
type Snapshot struct {
	ContentSize geo.Size          `json:"contentSize"`
	Sections    []SectionSnapshot `json:"sections"`
	Elements    []ElementSnapshot `json:"elements"`
}

// SectionSnapshot summarizes one laid-out section.
type SectionSnapshot struct {
	Index SectionIndex `json:"index"`
	Frame geo.Rect     `json:"frame"`
	Items int          `json:"items"`
	Rows  int          `json:"rows"`
}

// ElementSnapshot is one element's render state.
type ElementSnapshot struct {
	Category        string   `json:"category"`
	Kind            string   `json:"kind,omitempty"`
	IndexPath       string   `json:"indexPath"`
	Frame           geo.Rect `json:"frame"`
	ZIndex          int      `json:"zIndex"`
	Pinned          bool     `json:"pinned,omitempty"`
	BackgroundColor Color    `json:"backgroundColor"`
}

// Snapshot captures the full current layout. It triggers a build when the
// layout is invalid.
func (e *Engine) Snapshot() *Snapshot {
	e.ensureLayout()

	snap := &Snapshot{ContentSize: e.ContentSize()}
	record := func(s *SectionInfo) {
		snap.Sections = append(snap.Sections, SectionSnapshot{
			Index: s.Index,
			Frame: s.Frame,
			Items: len(s.Items),
			Rows:  len(s.Rows),
		})
	}
	if e.global != nil {
		record(e.global)
	}
	for _, s := range e.sections {
		record(s)
	}

	everything := geo.NewRect(0, 0, snap.ContentSize.Width, snap.ContentSize.Height)
	for _, a := range e.AttributesInRect(everything) {
		snap.Elements = append(snap.Elements, ElementSnapshot{
			Category:        a.Category.String(),
			Kind:            a.Kind,
			IndexPath:       a.IndexPath.String(),
			Frame:           a.Frame,
			ZIndex:          a.ZIndex,
			Pinned:          a.Pinned,
			BackgroundColor: a.BackgroundColor,
		})
	}
	return snap
}

// WriteJSON writes the snapshot as indented JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
