package engine

import (
	"runtime"
	"sync/atomic"
)

// FileTask references one discovered regular file. It is read-only once
// discovery has produced it.
type FileTask struct {
	Path string
	Size int64
}

// Cursor hands out task indexes. Each index is returned to exactly one
// caller, in ascending order across all callers.
type Cursor struct {
	next atomic.Int64
}

// Claim returns the next unclaimed index. Callers stop once the index is
// past the end of their task list.
func (c *Cursor) Claim() int {
	return int(c.next.Add(1) - 1)
}

// Workers returns the pool size for n tasks: requested when positive,
// otherwise GOMAXPROCS, capped at n. It is 0 only when n is 0.
func Workers(n, requested int) int {
	if n <= 0 {
		return 0
	}
	w := requested
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return max(1, min(w, n))
}
