package utils

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	progressBarWidth    = 40
	progressPrintPeriod = 200 * time.Millisecond
)

// ProgressPrinter renders a single-line terminal progress bar. Its Update
// method is a ProgressCallback.
type ProgressPrinter struct {
	mu          sync.Mutex
	out         io.Writer
	description string
	startTime   time.Time
	lastPrint   time.Time
	uploaded    int64
	total       int64
	lastLineLen int
	finished    bool
}

// NewProgressPrinter creates a printer writing to out
func NewProgressPrinter(out io.Writer, description string) *ProgressPrinter {
	now := time.Now()
	return &ProgressPrinter{
		out:         out,
		description: description,
		startTime:   now,
		lastPrint:   now.Add(-progressPrintPeriod),
	}
}

// Update records progress and redraws at most every progressPrintPeriod
func (p *ProgressPrinter) Update(uploaded, total int64, _ float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.uploaded = uploaded
	p.total = total

	now := time.Now()
	if now.Sub(p.lastPrint) < progressPrintPeriod && uploaded < total {
		return
	}
	p.lastPrint = now
	p.print()
}

// Close draws the final state and ends the line
func (p *ProgressPrinter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return nil
	}
	p.finished = true
	p.print()
	_, err := fmt.Fprintln(p.out)
	return err
}

func (p *ProgressPrinter) print() {
	if p.total <= 0 {
		return
	}

	percentage := float64(p.uploaded) / float64(p.total) * 100
	if percentage > 100 {
		percentage = 100
	}

	var speed string
	if elapsed := time.Since(p.startTime); elapsed.Seconds() > 0.1 {
		speed = fmt.Sprintf(" %s/s", humanize.IBytes(uint64(float64(p.uploaded)/elapsed.Seconds())))
	}

	filled := int(percentage * progressBarWidth / 100)
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", progressBarWidth-filled) + "]"

	line := fmt.Sprintf("%s %s %.1f%% (%s/%s)%s",
		p.description,
		bar,
		percentage,
		humanize.IBytes(uint64(p.uploaded)),
		humanize.IBytes(uint64(p.total)),
		speed)

	if p.lastLineLen > len(line) {
		fmt.Fprintf(p.out, "\r%s\r", strings.Repeat(" ", p.lastLineLen))
	}
	fmt.Fprintf(p.out, "\r%s", line)
	p.lastLineLen = len(line)
}
