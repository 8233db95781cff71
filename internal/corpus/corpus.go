// Package corpus writes synthetic test corpora: N files of M random int64
// values, one per line, named file_<i>.txt. Each file draws from its own
// PCG stream derived from the seed and the file index, so the output is
// identical for a given seed regardless of how many writers run.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/backmassage/minmax/internal/reduce"
)

// ErrInvalidShape is returned when the file or per-file count is not positive.
var ErrInvalidShape = errors.New("files and per-file counts must be positive")

// Options describes the corpus to write.
type Options struct {
	Dir     string
	Files   int
	PerFile int
	Seed    uint64 // 0 = derive from the clock.
	Workers int    // <= 0 means GOMAXPROCS.
}

// Report summarizes what Generate wrote. Extremum is the true min/max over
// every value, for checking a scan against.
type Report struct {
	Seed     uint64
	Files    int
	Values   int64
	Bytes    int64
	Extremum reduce.Extremum
}

// FileName returns the name of the i-th corpus file.
func FileName(i int) string {
	return "file_" + strconv.Itoa(i) + ".txt"
}

// Generate writes the corpus described by opts into fs.
func Generate(fs afero.Fs, opts Options) (Report, error) {
	if opts.Files <= 0 || opts.PerFile <= 0 {
		return Report{}, fmt.Errorf("%d x %d: %w", opts.Files, opts.PerFile, ErrInvalidShape)
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if err := fs.MkdirAll(opts.Dir, 0o755); err != nil {
		return Report{}, fmt.Errorf("create %s: %w", opts.Dir, err)
	}

	// One slot per file; each task writes only its own.
	extrema := make([]reduce.Extremum, opts.Files)
	sizes := make([]int64, opts.Files)

	p := pool.New().WithMaxGoroutines(workers).WithErrors()
	for i := range opts.Files {
		p.Go(func() error {
			path := filepath.Join(opts.Dir, FileName(i))
			e, n, err := writeFile(fs, path, opts.PerFile, rand.New(rand.NewPCG(seed, uint64(i))))
			if err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			extrema[i], sizes[i] = e, n
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return Report{}, err
	}

	r := Report{
		Seed:     seed,
		Files:    opts.Files,
		Values:   int64(opts.Files) * int64(opts.PerFile),
		Extremum: reduce.Empty(),
	}
	for i := range extrema {
		r.Extremum = reduce.Merge(r.Extremum, extrema[i])
		r.Bytes += sizes[i]
	}
	return r, nil
}

// writeFile writes count values from rng to path, one per line, and
// returns their extremum and the byte count.
func writeFile(fs afero.Fs, path string, count int, rng *rand.Rand) (reduce.Extremum, int64, error) {
	f, err := fs.Create(path)
	if err != nil {
		return reduce.Extremum{}, 0, err
	}

	e := reduce.Empty()
	w := bufio.NewWriterSize(f, 64*1024)
	var n int64
	var scratch [24]byte
	for range count {
		v := int64(rng.Uint64())
		e.Observe(v)
		line := strconv.AppendInt(scratch[:0], v, 10)
		line = append(line, '\n')
		m, err := w.Write(line)
		n += int64(m)
		if err != nil {
			f.Close()
			return reduce.Extremum{}, 0, err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return reduce.Extremum{}, 0, err
	}
	if err := f.Close(); err != nil {
		return reduce.Extremum{}, 0, err
	}
	return e, n, nil
}
