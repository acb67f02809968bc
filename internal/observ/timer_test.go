package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	lex := tm.Begin("lex")
	time.Sleep(time.Millisecond)
	if d := tm.End(lex, "tokens=3"); d <= 0 {
		t.Fatalf("duration = %v", d)
	}
	tm.End(tm.Begin("parse"), "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "lex" || r.Phases[0].Note != "tokens=3" {
		t.Fatalf("report = %+v", r)
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f below phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
	s := r.Summary("a.js")
	if !strings.HasPrefix(s, "timings a.js:\n") || !strings.Contains(s, "// tokens=3") || !strings.Contains(s, "total") {
		t.Errorf("summary:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	if idx := tm.Begin("lex"); idx != -1 {
		t.Errorf("Begin on nil timer = %d", idx)
	}
	tm.End(0, "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Errorf("nil timer report = %+v", r)
	}
}
