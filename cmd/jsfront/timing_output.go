package main

import (
	"fmt"
	"io"
	"time"

	"jsfront/internal/driver"
)

// printTimings writes the phase table of every analyzed file and the sum of
// each phase over the run.
func printTimings(out io.Writer, files []*driver.FileResult, wall time.Duration) {
	var order []string
	totals := make(map[string]float64)
	for _, f := range files {
		if f == nil || f.Timing == nil || len(f.Timing.Phases) == 0 {
			continue
		}
		fmt.Fprint(out, f.Timing.Summary(f.Path))
		for _, p := range f.Timing.Phases {
			if _, seen := totals[p.Name]; !seen {
				order = append(order, p.Name)
			}
			totals[p.Name] += p.DurationMS
		}
	}
	for _, name := range order {
		fmt.Fprintf(out, "%s %.1f ms\n", name, totals[name])
	}
	fmt.Fprintf(out, "wall %.1f ms\n", toMillis(wall))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
