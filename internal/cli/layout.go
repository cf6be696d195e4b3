package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhi266raj/gridlayout/pkg/geo"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output  string  // output file path; empty writes to stdout
	offsetY float64 // vertical scroll offset applied before the snapshot
}

// layoutCommand creates the layout command for dumping a computed layout as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout <preset.toml>",
		Short: "Compute a layout and print it as JSON",
		Long: `Layout loads section metrics from a TOML preset, runs the grid engine
over them, and emits the resulting geometry as a JSON snapshot: content
size, per-section frames, and every cell, supplement, and decoration in
paint order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Float64Var(&opts.offsetY, "offset-y", 0, "vertical scroll offset before snapshotting")

	return cmd
}

func (c *CLI) runLayout(path string, opts *layoutOpts) error {
	engine, _, view, err := c.loadEngine(path)
	if err != nil {
		return err
	}
	if opts.offsetY != 0 {
		view.SetOffset(geo.Point{Y: opts.offsetY})
	}

	snap := engine.Snapshot()
	c.Logger.Debug("layout computed",
		"sections", len(snap.Sections),
		"elements", len(snap.Elements))

	if opts.output == "" {
		return snap.WriteJSON(os.Stdout)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := snap.WriteJSON(f); err != nil {
		return err
	}

	printSuccess("Layout written")
	printFile(opts.output)
	printStats(len(snap.Sections), len(snap.Elements))
	return nil
}
