package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"toml extension", "demo.toml", "demo.svg"},
		{"nested path", "presets/feed.toml", "presets/feed.svg"},
		{"no extension", "demo", "demo.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutputPath(tt.path); got != tt.want {
				t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestRunRenderWritesSVG(t *testing.T) {
	c := testCLI()
	preset := writePreset(t)

	opts := renderOpts{scale: 1, labels: true}
	if err := c.runRender(preset, &opts); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	out := defaultOutputPath(preset)
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<svg ")) {
		t.Errorf("output is not SVG: %.60s", data)
	}
	if !bytes.Contains(data, []byte("<text")) {
		t.Error("labels requested but no <text> elements rendered")
	}
}

func TestRunRenderExplicitOutput(t *testing.T) {
	c := testCLI()
	out := filepath.Join(t.TempDir(), "custom.svg")

	opts := renderOpts{scale: 2, output: out}
	if err := c.runRender(writePreset(t), &opts); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestRenderCommandRejectsBadPageFill(t *testing.T) {
	root := testCLI().RootCommand()
	root.SetArgs([]string{"render", "ignored.toml", "--page-fill", "red"})

	if err := root.Execute(); err == nil {
		t.Error("Execute() error = nil, want invalid color error")
	}
}
