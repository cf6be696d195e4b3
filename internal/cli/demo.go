package cli

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/abhi266raj/gridlayout/pkg/geo"
	"github.com/abhi266raj/gridlayout/pkg/grid"
	"github.com/abhi266raj/gridlayout/pkg/loader"
	"github.com/abhi266raj/gridlayout/pkg/preset"
)

// scrollStep is the vertical distance one key press scrolls, in layout units.
const scrollStep = 24

// =============================================================================
// Demo Command
// =============================================================================

// demoCommand creates the demo command for browsing a layout in the terminal.
func (c *CLI) demoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo <preset.toml>",
		Short: "Browse a layout interactively in the terminal",
		Long: `Demo opens a terminal viewer over the layout: scroll through the
elements that intersect the viewport, watch headers pin to the top as
you pass them, and press r to simulate an asynchronous content reload.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, src, view, err := c.loadEngine(args[0])
			if err != nil {
				return err
			}
			m := newDemoModel(c, engine, src, view)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	return cmd
}

// =============================================================================
// Styles
// =============================================================================

var (
	styleDemoHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDemoPinned = lipgloss.NewStyle().Foreground(colorYellow)
	styleDemoSupp   = lipgloss.NewStyle().Foreground(colorBlue)
	styleDemoCell   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDemoDim    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Model
// =============================================================================

// reloadDoneMsg is delivered when a simulated content reload completes.
// apply carries the loader's update closure back onto the UI goroutine,
// which owns the engine.
type reloadDoneMsg struct {
	apply  func()
	result loader.Result
	err    error
}

// demoModel is the bubbletea model for the interactive viewer.
type demoModel struct {
	engine *grid.Engine
	source *preset.Source
	view   *preset.View
	loads  *loader.Loader
	height int
	status string
}

func newDemoModel(c *CLI, engine *grid.Engine, src *preset.Source, view *preset.View) demoModel {
	return demoModel{
		engine: engine,
		source: src,
		view:   view,
		loads:  loader.New(loader.Options{Logger: c.Logger}),
		height: 24,
		status: "↑/↓ scroll · g/G top/bottom · r reload · q quit",
	}
}

func (m demoModel) Init() tea.Cmd {
	return nil
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case reloadDoneMsg:
		if msg.err != nil {
			m.status = "reload failed: " + msg.err.Error()
			return m, nil
		}
		if msg.apply != nil {
			m.engine.BeginUpdates()
			msg.apply()
			m.engine.InvalidateData()
			m.engine.EndUpdates()
		}
		m.status = "reload " + msg.result.String() + " · state " + string(m.loads.State())
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.scrollBy(-scrollStep)
		case "down", "j":
			m.scrollBy(scrollStep)
		case "pgup":
			m.scrollBy(-m.view.Bounds().Height)
		case "pgdown", " ":
			m.scrollBy(m.view.Bounds().Height)
		case "g", "home":
			m.view.SetOffset(geo.Point{})
		case "G", "end":
			m.view.SetOffset(m.engine.TargetContentOffset(geo.Point{Y: m.engine.ContentSize().Height}))
		case "r":
			m.status = "reloading..."
			return m, m.reload()
		}
	}
	return m, nil
}

// scrollBy moves the viewport and lets the engine clamp the result.
func (m demoModel) scrollBy(dy float64) {
	proposed := m.view.ContentOffset()
	proposed.Y += dy
	m.view.SetOffset(m.engine.TargetContentOffset(proposed))
}

// reload simulates an asynchronous content refresh: the load runs off the
// UI goroutine while the old layout keeps serving queries, and the update
// closure lands as a batch back on the UI goroutine.
func (m demoModel) reload() tea.Cmd {
	source, loads := m.source, m.loads
	done := make(chan reloadDoneMsg, 1)

	err := loads.LoadContent(context.Background(),
		func(update func()) {
			done <- reloadDoneMsg{apply: update, result: loader.ResultUpdate}
		},
		func(ctx context.Context, p *loader.Progress) {
			time.Sleep(150 * time.Millisecond)
			p.Done(func() {
				for i := 0; i < source.NumberOfSections(); i++ {
					source.SetItemCount(grid.SectionIndex(i), 1+rand.Intn(24))
				}
			})
		})
	if err != nil {
		return func() tea.Msg { return reloadDoneMsg{err: err} }
	}

	return func() tea.Msg {
		select {
		case msg := <-done:
			return msg
		case <-time.After(2 * time.Second):
			// Superseded by a newer reload; its completion reports instead.
			return reloadDoneMsg{result: loader.ResultIgnored}
		}
	}
}

// =============================================================================
// View
// =============================================================================

func (m demoModel) View() string {
	offset := m.view.ContentOffset()
	bounds := m.view.Bounds()
	window := geo.NewRect(0, offset.Y, bounds.Width, bounds.Height)
	size := m.engine.ContentSize()

	attrs := m.engine.AttributesInRect(window)
	sorted := make([]*grid.Attributes, len(attrs))
	copy(sorted, attrs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Frame.Y != sorted[j].Frame.Y {
			return sorted[i].Frame.Y < sorted[j].Frame.Y
		}
		return sorted[i].Frame.X < sorted[j].Frame.X
	})

	var b strings.Builder
	b.WriteString(styleDemoHeader.Render(fmt.Sprintf(
		"%s · content %.0f×%.0f · offset %.0f", appName, size.Width, size.Height, offset.Y)))
	b.WriteString("\n\n")

	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	shown := 0
	for _, a := range sorted {
		if a.Hidden || a.Category == grid.CategoryDecoration {
			continue
		}
		if shown >= rows {
			b.WriteString(styleDemoDim.Render("  …"))
			b.WriteString("\n")
			break
		}
		b.WriteString(renderDemoRow(a))
		b.WriteString("\n")
		shown++
	}

	b.WriteString("\n")
	b.WriteString(styleDemoDim.Render(m.status))
	b.WriteString("\n")
	return b.String()
}

func renderDemoRow(a *grid.Attributes) string {
	label := fmt.Sprintf("%-11s %-8s %-6s", a.Category, a.Kind, a.IndexPath)
	frame := fmt.Sprintf("y=%-5.0f h=%-4.0f", a.Frame.Y, a.Frame.Height)
	switch {
	case a.Pinned:
		return styleDemoPinned.Render("▸ " + label + " " + frame + " pinned")
	case a.Category == grid.CategorySupplement:
		return styleDemoSupp.Render("  " + label + " " + frame)
	default:
		return styleDemoCell.Render("  " + label + " " + frame)
	}
}
