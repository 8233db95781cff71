package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"github.com/backmassage/minmax/internal/engine"
)

// ErrNotDirectory is returned when the input path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Discover lists the regular files under dir whose base name matches
// include (every file when include is empty). Subdirectories are walked
// only when recursive is set. Tasks are sorted by path for a
// deterministic claim order.
func Discover(fs afero.Fs, dir, include string, recursive bool) ([]engine.FileTask, error) {
	fi, err := fs.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	var match glob.Glob
	if include != "" {
		match, err = glob.Compile(include)
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", include, err)
		}
	}

	var tasks []engine.FileTask
	err = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if match != nil && !match.Match(info.Name()) {
			return nil
		}
		tasks = append(tasks, engine.FileTask{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Path < tasks[j].Path })
	return tasks, nil
}
