// Package parse turns raw corpus bytes into signed 64-bit integers.
//
// A token is an optional '-' followed by a run of ASCII digits. Every byte
// that is neither a digit nor '-' is a delimiter. Digits accumulate into an
// int64 with plain multiply-by-ten-and-add, so values outside the int64
// range wrap instead of failing. The one value that needs the wrap is
// math.MinInt64: its magnitude overflows to MinInt64 and negation leaves it
// unchanged, so the full int64 range parses exactly.
//
// A '-' with no digits after it (followed by a delimiter, another '-', or the
// end of the buffer) yields 0.
package parse

import "iter"

// Policy selects how the tokenizer moves over the delimiter gap between two
// tokens.
type Policy int

const (
	// Permissive skips any run of delimiter bytes. It is correct for every
	// layout and is the default.
	Permissive Policy = iota

	// SingleByte assumes exactly one delimiter byte between tokens and
	// steps over it without scanning. When the assumption is wrong the
	// tokenizer records a misalignment and finishes the gap permissively,
	// so both policies always produce the same sequence.
	SingleByte
)

// String returns the flag spelling of p.
func (p Policy) String() string {
	switch p {
	case Permissive:
		return "permissive"
	case SingleByte:
		return "single-byte"
	default:
		return "unknown"
	}
}

// Tokenizer is a forward-only cursor over one buffer. It is not safe for
// concurrent use and cannot be rewound; create a new one per file.
type Tokenizer struct {
	buf        []byte
	pos        int
	policy     Policy
	afterToken bool
	misaligned int
}

// New returns a tokenizer positioned at the start of buf.
func New(buf []byte, policy Policy) *Tokenizer {
	return &Tokenizer{buf: buf, policy: policy}
}

// Reset points t at a new buffer, clearing all cursor state.
func (t *Tokenizer) Reset(buf []byte) {
	t.buf = buf
	t.pos = 0
	t.afterToken = false
	t.misaligned = 0
}

// Misaligned reports how many gaps violated the SingleByte layout. It is
// always zero under Permissive.
func (t *Tokenizer) Misaligned() int { return t.misaligned }

// Offset returns the current byte offset into the buffer.
func (t *Tokenizer) Offset() int { return t.pos }

// IsDelimiter reports whether b separates tokens.
func IsDelimiter(b byte) bool {
	return b != '-' && (b < '0' || b > '9')
}

// Next returns the next integer in the buffer. ok is false once the buffer
// is exhausted.
func (t *Tokenizer) Next() (v int64, ok bool) {
	t.skipGap()
	buf := t.buf
	i := t.pos
	if i >= len(buf) {
		return 0, false
	}

	neg := buf[i] == '-'
	if neg {
		i++
	}
	for i < len(buf) {
		d := buf[i] - '0'
		if d > 9 {
			break
		}
		v = v*10 + int64(d)
		i++
	}
	if neg {
		v = -v
	}

	t.pos = i
	t.afterToken = true
	return v, true
}

// Fill writes up to len(dst) integers into dst and returns how many were
// written. A return of 0 with a non-empty dst means the buffer is exhausted.
func (t *Tokenizer) Fill(dst []int64) int {
	n := 0
	for n < len(dst) {
		v, ok := t.Next()
		if !ok {
			break
		}
		dst[n] = v
		n++
	}
	return n
}

// Values returns the remaining integers as a single-use sequence.
func (t *Tokenizer) Values() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for {
			v, ok := t.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// skipGap advances past the delimiters in front of the next token.
func (t *Tokenizer) skipGap() {
	buf := t.buf
	i := t.pos
	if t.policy == SingleByte && t.afterToken {
		if i >= len(buf) || !IsDelimiter(buf[i]) {
			return
		}
		i++
		if i >= len(buf) || !IsDelimiter(buf[i]) {
			t.pos = i
			return
		}
		t.misaligned++
	}
	for i < len(buf) && IsDelimiter(buf[i]) {
		i++
	}
	t.pos = i
}

// ParsePolicy maps a flag value to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "permissive", "":
		return Permissive, true
	case "single-byte", "single":
		return SingleByte, true
	default:
		return Permissive, false
	}
}
