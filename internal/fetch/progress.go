// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"io"
	"time"
)

// Progress tracks elapsed time across a batch and prints one line per item.
// It only observes; nothing in the batch depends on it.
type Progress struct {
	total int
	start time.Time
	last  time.Time
	now   func() time.Time
}

// NewProgress starts the clock for a batch of total items.
func NewProgress(total int) *Progress {
	return newProgressAt(total, time.Now)
}

func newProgressAt(total int, now func() time.Time) *Progress {
	t := now()
	return &Progress{total: total, start: t, last: t, now: now}
}

// Report prints a line for item done (1-based): count, percentage, time
// spent on this item, elapsed time and an estimate of the time remaining.
func (p *Progress) Report(w io.Writer, done int, id string) {
	t := p.now()
	item := t.Sub(p.last)
	elapsed := t.Sub(p.start)
	p.last = t

	var pct float64
	var remaining time.Duration
	if p.total > 0 {
		pct = float64(done) * 100 / float64(p.total)
	}
	if done > 0 && p.total > done {
		remaining = elapsed / time.Duration(done) * time.Duration(p.total-done)
	}

	fmt.Fprintf(w, "processed %s %d/%d (%.2f%%) (%.2fs) (elapsed %s, remaining %s)\n",
		id, done, p.total, pct, item.Seconds(), clock(elapsed), clock(remaining))
}

// clock renders d as hh:mm:ss.
func clock(d time.Duration) string {
	s := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
