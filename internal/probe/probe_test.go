package probe

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Layout
		safe bool
	}{
		{"newline separated", "1\n-2\n3\n", Layout{Files: 1, Bytes: 7, Tokens: 3, Gaps: 3, MaxGap: 1}, true},
		{"no trailing newline", "10 20", Layout{Files: 1, Bytes: 5, Tokens: 2, Gaps: 1, MaxGap: 1}, true},
		{"crlf", "1\r\n2\r\n", Layout{Files: 1, Bytes: 6, Tokens: 2, Gaps: 2, LongGaps: 2, MaxGap: 2}, false},
		{"blank line", "1\n\n2", Layout{Files: 1, Bytes: 4, Tokens: 2, Gaps: 1, LongGaps: 1, MaxGap: 2}, false},
		{"leading delimiter", "\n5", Layout{Files: 1, Bytes: 2, Tokens: 1, LeadingGaps: 1}, true},
		{"only delimiters", " \n ", Layout{Files: 1, Bytes: 3, LeadingGaps: 1}, false},
		{"adjacent tokens", "5-3", Layout{Files: 1, Bytes: 3, Tokens: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Inspect([]byte(tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Inspect(%q) (-want +got):\n%s", tt.in, diff)
			}
			if got.SingleByteSafe() != tt.safe {
				t.Errorf("SingleByteSafe() = %v, want %v", got.SingleByteSafe(), tt.safe)
			}
		})
	}
}

func TestInspect_TruncatedTailGapIgnored(t *testing.T) {
	got := inspect([]byte("1\n2\r\n"), false)
	if got.LongGaps != 0 || got.Gaps != 1 {
		t.Errorf("truncated tail counted: %+v", got)
	}
}

func TestSample(t *testing.T) {
	fs := afero.NewMemMapFs()
	var paths []string
	for i := range 4 {
		p := fmt.Sprintf("/c/file_%d.txt", i)
		if err := afero.WriteFile(fs, p, []byte("1\n2\n3\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	// Outside the limit; its CRLF layout must not be seen.
	if err := afero.WriteFile(fs, "/c/late.txt", []byte("1\r\n2\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths = append(paths, "/c/late.txt")
	paths = append([]string{"/c/missing.txt"}, paths...)

	got := Sample(fs, paths, 5, 0)
	if got.Files != 4 || got.Unreadable != 1 || got.Tokens != 12 {
		t.Errorf("Sample = %+v", got)
	}
	if !got.SingleByteSafe() {
		t.Error("uniform newline corpus should be single-byte safe")
	}

	got = Sample(fs, paths, 10, 4)
	if got.SingleByteSafe() {
		t.Errorf("CRLF file within limit should disable single-byte: %+v", got)
	}
}
