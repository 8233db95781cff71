//go:build !linux && !darwin

package ingest

import "github.com/spf13/afero"

const mmapSupported = false

// mmapSource is never selected on this platform; NewSource falls back to a
// buffered FsSource. It exists so the type is defined on every build.
type mmapSource struct{}

func (mmapSource) Mapped() bool { return false }

func (mmapSource) Acquire(path string) (View, Outcome) {
	return FsSource{Fs: afero.NewOsFs()}.Acquire(path)
}
