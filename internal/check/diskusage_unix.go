//go:build linux || darwin

package check

import "golang.org/x/sys/unix"

// diskUsage returns total and available bytes on the filesystem holding path.
func diskUsage(path string) (total, free uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	bsize := uint64(st.Bsize)
	return st.Blocks * bsize, st.Bavail * bsize, nil
}
