package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"jsfront/internal/driver"
)

func TestProgressModelEvents(t *testing.T) {
	m := newProgressModel("checking", []string{"a.js", "b.js"}, nil)
	if got := m.percent(); got != 0 {
		t.Fatalf("initial percent = %v", got)
	}

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" {
		t.Errorf("status = %q", m.items[0].status)
	}
	if got := m.percent(); got != 0.25 {
		t.Errorf("percent = %v, want 0.25", got)
	}

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageCheck, Status: driver.StatusDone, Cached: true})
	m.applyEvent(driver.Event{File: "b.js", Stage: driver.StageLex, Status: driver.StatusError, Err: errors.New("boom")})
	// late events of a finished file are ignored
	m.applyEvent(driver.Event{File: "b.js", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "unknown.js", Stage: driver.StageLex, Status: driver.StatusWorking})

	if m.items[0].status != "cached" || m.items[1].status != "error" {
		t.Errorf("statuses = %q, %q", m.items[0].status, m.items[1].status)
	}
	if m.finished != 2 || m.failed != 1 || m.percent() != 1 {
		t.Errorf("finished = %d, failed = %d, percent = %v", m.finished, m.failed, m.percent())
	}

	m.Update(doneMsg{})
	view := m.View()
	for _, want := range []string{"done: checking [2/2], 1 failed", "cached", "error", "a.js", "b.js"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestProgressModelDrainsChannel(t *testing.T) {
	ch := make(chan driver.Event, 1)
	m := newProgressModel("t", []string{"a.js"}, ch)
	ch <- driver.Event{File: "a.js", Stage: driver.StageLex, Status: driver.StatusWorking}
	close(ch)

	listen := m.listenForEvent()
	if msg, ok := listen().(eventMsg); !ok || msg.File != "a.js" {
		t.Fatalf("first message = %#v", msg)
	}
	if _, ok := listen().(doneMsg); !ok {
		t.Fatal("closed channel must produce doneMsg")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short.js", 20); got != "short.js" {
		t.Errorf("got %q", got)
	}
	if got := truncate("src/very/long/path/file.js", 10); got != "src/ver..." {
		t.Errorf("got %q", got)
	}
	if got := truncate("日本語.js", 5); runewidth.StringWidth(got) > 5 {
		t.Errorf("got %q", got)
	}
}

func TestProgressModelInterrupt(t *testing.T) {
	m := newProgressModel("t", []string{"a.js"}, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !m.Interrupted() {
		t.Fatal("ctrl+c must quit and mark the model interrupted")
	}
}
