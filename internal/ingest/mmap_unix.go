//go:build linux || darwin

package ingest

import (
	"os"

	"golang.org/x/sys/unix"
)

const mmapSupported = true

// mmapSource maps whole files read-only with MAP_SHARED so no page is copied.
type mmapSource struct{}

func (mmapSource) Mapped() bool { return true }

func (mmapSource) Acquire(path string) (View, Outcome) {
	f, err := os.Open(path)
	if err != nil {
		return nil, OutcomeOpenFailed
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, OutcomeOpenFailed
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, OutcomeMapFailed
	}
	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, OutcomeEmpty
	}
	if int64(int(size)) != size {
		f.Close()
		return nil, OutcomeMapFailed
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, OutcomeMapFailed
	}
	// Advisory only; the scan is strictly front to back.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)

	return &mappedView{data: data, file: f}, OutcomeScanned
}

// mappedView owns both the mapping and the descriptor behind it.
type mappedView struct {
	data []byte
	file *os.File
}

func (v *mappedView) Bytes() []byte { return v.data }

// Release unmaps and closes. Both steps always run; the first error wins.
func (v *mappedView) Release() error {
	var err error
	if v.data != nil {
		err = unix.Munmap(v.data)
		v.data = nil
	}
	if v.file != nil {
		if cerr := v.file.Close(); err == nil {
			err = cerr
		}
		v.file = nil
	}
	return err
}
