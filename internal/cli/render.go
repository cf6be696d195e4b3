package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhi266raj/gridlayout/pkg/errors"
	"github.com/abhi266raj/gridlayout/pkg/geo"
	"github.com/abhi266raj/gridlayout/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path; empty derives it from the preset path
	labels   bool    // annotate cells and supplements with index paths
	scale    float64 // render-size multiplier, layout units unchanged
	pageFill string  // page background color override (hex)
	offsetY  float64 // vertical scroll offset applied before rendering
}

// renderCommand creates the render command for drawing a layout as SVG.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: 1}

	cmd := &cobra.Command{
		Use:   "render <preset.toml>",
		Short: "Render a layout to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateHexColor(opts.pageFill); err != nil {
				return err
			}
			return c.runRender(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: preset path with .svg extension)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "annotate cells and supplements with index paths")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "render-size multiplier")
	cmd.Flags().StringVar(&opts.pageFill, "page-fill", "", "page background color (hex, e.g. #ffffff)")
	cmd.Flags().Float64Var(&opts.offsetY, "offset-y", 0, "vertical scroll offset before rendering")

	return cmd
}

// defaultOutputPath derives the SVG output path from the preset path.
func defaultOutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
}

func (c *CLI) runRender(path string, opts *renderOpts) error {
	engine, _, view, err := c.loadEngine(path)
	if err != nil {
		return err
	}
	if opts.offsetY != 0 {
		view.SetOffset(geo.Point{Y: opts.offsetY})
	}

	var svgOpts []render.SVGOption
	if opts.labels {
		svgOpts = append(svgOpts, render.WithLabels())
	}
	if opts.scale != 1 {
		svgOpts = append(svgOpts, render.WithScale(opts.scale))
	}
	if opts.pageFill != "" {
		svgOpts = append(svgOpts, render.WithPageFill(opts.pageFill))
	}

	snap := engine.Snapshot()
	data := render.RenderSVG(snap, svgOpts...)

	out := opts.output
	if out == "" {
		out = defaultOutputPath(path)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}

	printSuccess("Rendered %.0fx%.0f layout", snap.ContentSize.Width, snap.ContentSize.Height)
	printFile(out)
	printStats(len(snap.Sections), len(snap.Elements))
	return nil
}
