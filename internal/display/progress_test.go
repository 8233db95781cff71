package display

import (
	"bytes"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/backmassage/minmax/internal/config"
	"github.com/backmassage/minmax/internal/term"
)

func TestRenderBar(t *testing.T) {
	term.Configure(config.ColorNever)
	tests := []struct {
		name        string
		done, total int64
		width       int
		want        string
	}{
		{"nothing done", 0, 10, 10, "[░░░░░░░░░░]"},
		{"half", 5, 10, 10, "[█████░░░░░]"},
		{"all", 10, 10, 10, "[██████████]"},
		{"over total clamped", 15, 10, 10, "[██████████]"},
		{"negative clamped", -1, 10, 4, "[░░░░]"},
		{"zero total", 0, 0, 3, "[███]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderBar(tt.done, tt.total, tt.width); got != tt.want {
				t.Errorf("RenderBar(%d, %d, %d) = %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
			}
		})
	}
}

// A run where some files are skipped never reaches total processed; the bar
// must still stop when told to.
func TestProgress_StopsWithoutReachingTotal(t *testing.T) {
	term.Configure(config.ColorNever)
	var done atomic.Int64
	done.Store(3)
	var buf bytes.Buffer
	p := NewProgress(&buf, 5, done.Load)
	p.interval = time.Millisecond
	p.Start()
	time.Sleep(5 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	out := buf.String()
	if !strings.Contains(out, "Processing: [") || !strings.Contains(out, "3/5 files") {
		t.Errorf("missing progress line: %q", out)
	}
	if strings.Count(out, "Processing complete! (3/5)") != 1 {
		t.Errorf("completion line should appear once: %q", out)
	}
}
