// Package cli implements the gridlayout command-line interface.
//
// The CLI loads layout presets from TOML files and exposes the engine
// through four surfaces: a JSON snapshot dump (layout), an SVG rendering
// (render), a read-only HTTP inspector (serve), and an interactive
// terminal viewer (demo). All commands support --verbose (-v) for
// debug-level logging via the charmbracelet/log library.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhi266raj/gridlayout/pkg/buildinfo"
	"github.com/abhi266raj/gridlayout/pkg/grid"
	"github.com/abhi266raj/gridlayout/pkg/preset"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and completions.
	appName = "gridlayout"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridlayout computes collection-view grid layouts",
		Long:         `Gridlayout is a CLI for a two-dimensional grid layout engine: it loads section metrics from a TOML preset, lays out cells, headers, footers, and separators, and lets you inspect the result as JSON, SVG, HTTP endpoints, or an interactive terminal view.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// loadEngine reads a preset file and builds an engine over it.
func (c *CLI) loadEngine(path string) (*grid.Engine, *preset.Source, *preset.View, error) {
	doc, err := preset.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	engine, src, view := doc.Engine(grid.Options{Logger: c.Logger})
	return engine, src, view, nil
}
