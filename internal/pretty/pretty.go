package pretty

import (
	"os"

	"golang.org/x/term"
)

// Whether f is a terminal, where we can use colors and redraw lines.
func AllowDynamic(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
