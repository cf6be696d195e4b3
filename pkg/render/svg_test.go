package render

import (
	"bytes"
	"testing"

	"github.com/abhi266raj/gridlayout/pkg/grid"
	"github.com/abhi266raj/gridlayout/pkg/preset"
)

const testPreset = `
[viewport]
width = 200
height = 300

[[section]]
row_height = 50
items = 3
`

func testSnapshot(t *testing.T) *grid.Snapshot {
	t.Helper()
	doc, err := preset.Parse([]byte(testPreset))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	engine, _, _ := doc.Engine(grid.Options{})
	return engine.Snapshot()
}

func TestRenderSVG(t *testing.T) {
	svg := RenderSVG(testSnapshot(t))

	if !bytes.HasPrefix(svg, []byte("<svg ")) {
		t.Fatalf("output does not start with <svg: %.60s", svg)
	}
	if !bytes.HasSuffix(bytes.TrimSpace(svg), []byte("</svg>")) {
		t.Error("output not closed")
	}
	// Page background plus one rect per cell.
	if got := bytes.Count(svg, []byte("<rect")); got != 4 {
		t.Errorf("rect count = %d, want 4", got)
	}
	if bytes.Contains(svg, []byte("<text")) {
		t.Error("labels rendered without WithLabels")
	}
}

func TestRenderSVGWithLabels(t *testing.T) {
	svg := RenderSVG(testSnapshot(t), WithLabels())

	if got := bytes.Count(svg, []byte("<text")); got != 3 {
		t.Errorf("label count = %d, want 3", got)
	}
	if !bytes.Contains(svg, []byte(">0.1<")) {
		t.Error("cell label 0.1 missing")
	}
}

func TestRenderSVGScale(t *testing.T) {
	svg := RenderSVG(testSnapshot(t), WithScale(2))

	// The canvas covers the content: 200 wide, 3 rows of 50 tall.
	if !bytes.Contains(svg, []byte(`width="400" height="300"`)) {
		t.Errorf("scaled dimensions missing: %.120s", svg)
	}
	if !bytes.Contains(svg, []byte(`viewBox="0 0 200.0 150.0"`)) {
		t.Error("viewBox should stay in layout units")
	}
}
