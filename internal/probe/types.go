package probe

// Layout holds delimiter statistics for the bytes examined.
type Layout struct {
	Files      int   // Files that contributed bytes.
	Unreadable int   // Files that could not be opened or read.
	Bytes      int64 // Bytes examined.
	Tokens     int

	// Gaps counts delimiter runs that follow a token. LongGaps is the subset
	// longer than one byte (e.g. "\r\n" or blank lines); MaxGap is the
	// longest run seen.
	Gaps     int
	LongGaps int
	MaxGap   int

	// LeadingGaps counts files that start with a delimiter.
	LeadingGaps int
}

// SingleByteSafe reports whether the single-byte tokenizer policy would
// never fall back on the sampled data.
func (l Layout) SingleByteSafe() bool {
	return l.Tokens > 0 && l.LongGaps == 0
}

// Add merges o into l.
func (l *Layout) Add(o Layout) {
	l.Files += o.Files
	l.Unreadable += o.Unreadable
	l.Bytes += o.Bytes
	l.Tokens += o.Tokens
	l.Gaps += o.Gaps
	l.LongGaps += o.LongGaps
	l.MaxGap = max(l.MaxGap, o.MaxGap)
	l.LeadingGaps += o.LeadingGaps
}
