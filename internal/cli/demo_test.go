package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testDemoModel(t *testing.T) demoModel {
	t.Helper()
	c := testCLI()
	engine, src, view, err := c.loadEngine(writePreset(t))
	if err != nil {
		t.Fatalf("loadEngine() error = %v", err)
	}
	return newDemoModel(c, engine, src, view)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDemoScrollClampsAtTop(t *testing.T) {
	m := testDemoModel(t)

	next, _ := m.Update(keyMsg("up"))
	m = next.(demoModel)

	if y := m.view.ContentOffset().Y; y != 0 {
		t.Errorf("offset after scrolling above top = %v, want 0", y)
	}
}

func TestDemoScrollDown(t *testing.T) {
	m := testDemoModel(t)

	next, _ := m.Update(keyMsg("down"))
	m = next.(demoModel)

	if y := m.view.ContentOffset().Y; y != scrollStep {
		t.Errorf("offset after one step = %v, want %v", y, scrollStep)
	}

	next, _ = m.Update(keyMsg("g"))
	m = next.(demoModel)
	if y := m.view.ContentOffset().Y; y != 0 {
		t.Errorf("offset after home = %v, want 0", y)
	}
}

func TestDemoQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := testDemoModel(t)
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("Update(%q) returned nil cmd, want tea.Quit", key)
		}
	}
}

func TestDemoViewListsElements(t *testing.T) {
	m := testDemoModel(t)

	out := m.View()
	if !strings.Contains(out, appName) {
		t.Error("view missing title")
	}
	if !strings.Contains(out, "content 400×250") {
		t.Errorf("view missing content size line:\n%s", out)
	}
	if !strings.Contains(out, "header") {
		t.Error("view missing global header row")
	}
}

func TestDemoReloadAppliesUpdate(t *testing.T) {
	m := testDemoModel(t)

	next, cmd := m.Update(keyMsg("r"))
	m = next.(demoModel)
	if cmd == nil {
		t.Fatal("reload returned nil cmd")
	}

	msg, ok := cmd().(reloadDoneMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want reloadDoneMsg", msg)
	}
	if msg.err != nil {
		t.Fatalf("reload error = %v", msg.err)
	}
	if msg.apply == nil {
		t.Fatal("reload delivered no update closure")
	}

	next, _ = m.Update(msg)
	m = next.(demoModel)
	if !strings.Contains(m.status, "update") {
		t.Errorf("status = %q, want reload result", m.status)
	}
}
