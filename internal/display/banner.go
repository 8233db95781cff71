package display

import (
	"fmt"
	"io"

	"github.com/backmassage/minmax/internal/term"
)

// PrintBanner writes the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	if term.Enabled() {
		fmt.Fprint(w, term.Magenta)
	}
	fmt.Fprint(w, ` _ __ ___ (_)_ __  _ __ ___   __ ___  __
| '_ ' _ \| | '_ \| '_ ' _ \ / _' \ \/ /
| | | | | | | | | | | | | | | (_| |>  <
|_| |_| |_|_|_| |_|_| |_| |_|\__,_/_/\_\
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
