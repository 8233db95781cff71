package ingest

import (
	"io"

	"github.com/spf13/afero"
)

// Outcome classifies what happened to one file.
type Outcome int

const (
	OutcomeScanned    Outcome = iota // Mapped and tokenized.
	OutcomeOpenFailed                // Missing, unreadable, or removed mid-run.
	OutcomeEmpty                     // Zero bytes.
	OutcomeMapFailed                 // Opened but no view could be acquired.
)

func (o Outcome) String() string {
	switch o {
	case OutcomeScanned:
		return "scanned"
	case OutcomeOpenFailed:
		return "open failed"
	case OutcomeEmpty:
		return "empty"
	case OutcomeMapFailed:
		return "map failed"
	default:
		return "unknown"
	}
}

// View is a read-only byte view owned by one worker. Bytes must not be used
// after Release.
type View interface {
	Bytes() []byte
	Release() error
}

// Source acquires views. Acquire returns a nil View for every outcome other
// than OutcomeScanned and leaves nothing open in that case.
type Source interface {
	Acquire(path string) (View, Outcome)
	// Mapped reports whether views are zero-copy mappings.
	Mapped() bool
}

// NewSource picks the mapping source for the OS filesystem when mmap is
// requested and supported, and a buffered afero source otherwise.
func NewSource(fs afero.Fs, mmap bool) Source {
	if _, ok := fs.(*afero.OsFs); ok && mmap && mmapSupported {
		return mmapSource{}
	}
	return FsSource{Fs: fs}
}

// MmapSupported reports whether this build can map files.
func MmapSupported() bool { return mmapSupported }

// FsSource reads each file once into memory through an afero filesystem.
type FsSource struct {
	Fs afero.Fs
}

func (s FsSource) Mapped() bool { return false }

func (s FsSource) Acquire(path string) (View, Outcome) {
	f, err := s.Fs.Open(path)
	if err != nil {
		return nil, OutcomeOpenFailed
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, OutcomeOpenFailed
	}
	if fi.IsDir() {
		return nil, OutcomeMapFailed
	}
	if fi.Size() == 0 {
		return nil, OutcomeEmpty
	}

	buf := make([]byte, fi.Size())
	n, err := io.ReadFull(f, buf)
	switch {
	case n == 0:
		// Truncated between Stat and Read.
		return nil, OutcomeEmpty
	case err != nil && err != io.ErrUnexpectedEOF:
		return nil, OutcomeMapFailed
	}
	return bufferView(buf[:n]), OutcomeScanned
}

// bufferView is a heap copy of a file; Release just drops the reference.
type bufferView []byte

func (b bufferView) Bytes() []byte  { return b }
func (b bufferView) Release() error { return nil }
