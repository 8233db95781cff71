package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/minmax/internal/term"
)

// DefaultInterval is how often the progress line is redrawn.
const DefaultInterval = 100 * time.Millisecond

// barWidth is the number of cells between the brackets.
const barWidth = 40

var (
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderBar renders "[████░░░░]" for done out of total using width cells.
// done is clamped to [0, total]; a zero total renders a full bar.
func RenderBar(done, total int64, width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := width
	if total > 0 {
		if done < 0 {
			done = 0
		}
		if done > total {
			done = total
		}
		filled = int(done * int64(width) / total)
	}
	full := strings.Repeat("█", filled)
	rest := strings.Repeat("░", width-filled)
	if term.Enabled() {
		full = filledStyle.Render(full)
		rest = emptyStyle.Render(rest)
	}
	return "[" + full + rest + "]"
}

// Progress redraws a one-line bar from a polled counter until Stop is
// called. It never waits for the counter to reach total, so runs with
// skipped files still terminate.
type Progress struct {
	out      io.Writer
	total    int64
	poll     func() int64
	interval time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewProgress returns a bar over total files. poll must be safe to call
// from another goroutine.
func NewProgress(out io.Writer, total int, poll func() int64) *Progress {
	return &Progress{
		out:      out,
		total:    int64(total),
		poll:     poll,
		interval: DefaultInterval,
		stop:     make(chan struct{}),
	}
}

// Start launches the redraw goroutine.
func (p *Progress) Start() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			p.draw(p.poll())
			select {
			case <-p.stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop ends the redraw loop and prints the completion line. Safe to call
// more than once.
func (p *Progress) Stop() {
	p.once.Do(func() {
		close(p.stop)
		p.wg.Wait()
		done := p.poll()
		p.draw(done)
		fmt.Fprintf(p.out, "\nProcessing complete! (%d/%d)\n", done, p.total)
	})
}

func (p *Progress) draw(done int64) {
	fmt.Fprintf(p.out, "\rProcessing: %s %d/%d files", RenderBar(done, p.total, barWidth), done, p.total)
}
