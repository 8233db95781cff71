package probe

import (
	"io"

	"github.com/spf13/afero"

	"github.com/backmassage/minmax/internal/parse"
)

// DefaultHead is how many bytes Sample reads from the start of each file.
const DefaultHead = 64 * 1024

// DefaultLimit is how many files Sample examines.
const DefaultLimit = 8

// Inspect walks a complete buffer and returns its layout.
func Inspect(buf []byte) Layout {
	return inspect(buf, true)
}

// Sample reads up to head bytes from each of the first limit paths on fs
// and merges their layouts. Files that fail to open or read are counted in
// Unreadable and otherwise ignored.
func Sample(fs afero.Fs, paths []string, limit, head int) Layout {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if head <= 0 {
		head = DefaultHead
	}
	var total Layout
	buf := make([]byte, head)
	for _, path := range paths[:min(limit, len(paths))] {
		n, complete, err := readHead(fs, path, buf)
		if err != nil {
			total.Unreadable++
			continue
		}
		if n == 0 {
			continue
		}
		total.Add(inspect(buf[:n], complete))
	}
	return total
}

// readHead fills buf from the start of path. complete is true when the
// whole file fit.
func readHead(fs afero.Fs, path string, buf []byte) (n int, complete bool, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, false, err
	}
	defer f.Close()

	n, err = io.ReadFull(f, buf)
	switch err {
	case nil:
		// Filled exactly; more may follow.
		var one [1]byte
		m, _ := f.Read(one[:])
		return n, m == 0, nil
	case io.EOF, io.ErrUnexpectedEOF:
		return n, true, nil
	default:
		return 0, false, err
	}
}

// inspect scans buf. When complete is false the buffer is a prefix of a
// larger file and a gap running into its end is not counted.
func inspect(buf []byte, complete bool) Layout {
	l := Layout{Files: 1, Bytes: int64(len(buf))}
	i := 0
	if len(buf) > 0 && parse.IsDelimiter(buf[0]) {
		l.LeadingGaps = 1
		for i < len(buf) && parse.IsDelimiter(buf[i]) {
			i++
		}
	}
	for i < len(buf) {
		// Token: optional '-' then digits, matching the tokenizer grammar.
		if buf[i] == '-' {
			i++
		}
		for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
			i++
		}
		l.Tokens++

		start := i
		for i < len(buf) && parse.IsDelimiter(buf[i]) {
			i++
		}
		gap := i - start
		if gap == 0 || (i == len(buf) && !complete) {
			continue
		}
		l.Gaps++
		if gap > 1 {
			l.LongGaps++
		}
		l.MaxGap = max(l.MaxGap, gap)
	}
	return l
}
