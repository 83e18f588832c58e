package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/setu/internal/events"
)

// progressPrinter renders the single-line console progress display. It
// implements events.Handler; the pipeline delivers one event per
// finished entry. A background tick redraws the line between events so
// slow batches still show a moving elapsed time.
type progressPrinter struct {
	w io.Writer

	mu      sync.Mutex
	start   time.Time
	last    *events.ProgressEvent
	prevLen int
	active  bool
	done    chan struct{}
}

var _ events.Handler = (*progressPrinter)(nil)

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w}
}

// Start marks the beginning of the run and launches the keepalive tick.
func (p *progressPrinter) Start() {
	p.mu.Lock()
	p.start = time.Now()
	p.active = true
	p.done = make(chan struct{})
	p.mu.Unlock()

	go p.keepalive()
}

// HandleProgress records the latest totals and redraws the line.
func (p *progressPrinter) HandleProgress(ctx context.Context, event *events.ProgressEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.last = event
	if p.active {
		p.draw()
	}
	return nil
}

// Finish stops the keepalive tick, draws the final state, and ends the
// progress line. Calling Finish without a preceding Start is a no-op.
func (p *progressPrinter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return
	}
	p.active = false
	close(p.done)

	if p.last != nil {
		p.draw()
		fmt.Fprintln(p.w)
	}
}

func (p *progressPrinter) keepalive() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.mu.Lock()
			if p.active && p.last != nil {
				p.draw()
			}
			p.mu.Unlock()
		}
	}
}

// draw renders the current state over the previous line, padding with
// spaces when the new line is shorter. Callers must hold mu.
func (p *progressPrinter) draw() {
	event := p.last
	elapsed := time.Since(p.start)

	pct := 0.0
	if event.Total > 0 {
		pct = 100 * float64(event.Completed) / float64(event.Total)
	}
	rate := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(event.Completed) / secs
	}

	line := fmt.Sprintf("Processing: %d/%d (%.1f%%) | ok %d | failed %d | chunks %d | %.2f/s | %s",
		event.Completed, event.Total, pct,
		event.Successful, event.Failed, event.ChunksCreated,
		rate, elapsed.Round(time.Second))

	pad := ""
	if n := p.prevLen - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	p.prevLen = len(line)

	fmt.Fprintf(p.w, "\r%s%s", line, pad)
}
