package main

import (
	"fmt"
	"io"

	"dol/internal/driver"
	"dol/internal/observ"
)

// printTimings writes the command phases followed by the slowest file.
func printTimings(out io.Writer, timer *observ.Timer, results []driver.FileResult) {
	if timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())

	var (
		slowest string
		worst   float64
		cached  int
	)
	for _, r := range results {
		if r.Cached {
			cached++
		}
		if r.Timing != nil && r.Timing.TotalMS > worst {
			slowest, worst = r.Path, r.Timing.TotalMS
		}
	}
	if slowest != "" {
		fmt.Fprintf(out, "slowest file: %s (%.2f ms)\n", slowest, worst)
	}
	if cached > 0 {
		fmt.Fprintf(out, "cache hits: %d/%d\n", cached, len(results))
	}
}
