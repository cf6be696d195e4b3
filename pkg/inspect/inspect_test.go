package inspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhi266raj/gridlayout/pkg/grid"
	"github.com/abhi266raj/gridlayout/pkg/preset"
)

const testPreset = `
[viewport]
width = 400
height = 600

[global]
[[global.supplement]]
kind = "header"
height = 50
pinned = true

[[section]]
row_height = 40
items = 3
`

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	doc, err := preset.Parse([]byte(testPreset))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	engine, _, _ := doc.Engine(grid.Options{})
	return NewRouter(engine, Options{})
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestLayoutEndpoint(t *testing.T) {
	rec := get(t, testRouter(t), "/layout")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var snap grid.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	// Global header 50 + 3 rows of 40.
	if snap.ContentSize.Height != 170 {
		t.Errorf("content height = %v, want 170", snap.ContentSize.Height)
	}
	if len(snap.Sections) != 2 {
		t.Errorf("len(Sections) = %d, want 2 (global + one)", len(snap.Sections))
	}
}

func TestLayoutSVGEndpoint(t *testing.T) {
	rec := get(t, testRouter(t), "/layout.svg?labels=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg ") {
		t.Error("body is not SVG")
	}
}

func TestAttributesEndpoint(t *testing.T) {
	h := testRouter(t)

	rec := get(t, h, "/attributes?x=0&y=50&w=400&h=80")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var elements []grid.ElementSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &elements); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	// Rows at 50..90 and 90..130 intersect the window.
	cells := 0
	for _, el := range elements {
		if el.Category == "cell" {
			cells++
		}
	}
	if cells != 2 {
		t.Errorf("cells in window = %d, want 2", cells)
	}
}

func TestAttributesEndpointRejectsBadRect(t *testing.T) {
	h := testRouter(t)

	tests := []struct {
		name string
		url  string
	}{
		{name: "missing size", url: "/attributes?x=0&y=0"},
		{name: "negative size", url: "/attributes?w=-4&h=10"},
		{name: "non-numeric", url: "/attributes?w=abc&h=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.url)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad JSON: %v", err)
			}
			if body.Error.Code != "INVALID_RECT" {
				t.Errorf("error code = %q, want INVALID_RECT", body.Error.Code)
			}
		})
	}
}

func TestSectionEndpoint(t *testing.T) {
	h := testRouter(t)

	rec := get(t, h, "/sections/0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var sec grid.SectionSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &sec); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if sec.Items != 3 || sec.Rows != 3 {
		t.Errorf("section = %d items / %d rows, want 3/3", sec.Items, sec.Rows)
	}

	rec = get(t, h, "/sections/global")
	if rec.Code != http.StatusOK {
		t.Fatalf("global status = %d, want 200", rec.Code)
	}

	rec = get(t, h, "/sections/9")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing section status = %d, want 404", rec.Code)
	}

	rec = get(t, h, "/sections/abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric section status = %d, want 400", rec.Code)
	}
}
