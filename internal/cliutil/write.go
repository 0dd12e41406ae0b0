// Package cliutil provides output helpers shared by the abeye commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// ErrOutput receives write failures reported by [Writef].
var ErrOutput io.Writer = os.Stderr

// Writef writes formatted output to w. A failed write is reported on
// ErrOutput rather than returned.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(ErrOutput, "write error: %v\n", err)
	}
}

// WriteSource writes generated source to w, adding a final newline when
// the source lacks one.
func WriteSource(w io.Writer, src []byte) {
	Writef(w, "%s", src)
	if len(src) > 0 && src[len(src)-1] != '\n' {
		Writef(w, "\n")
	}
}

// WriteTable writes rows as aligned columns separated by two spaces.
// Cells must not contain tabs or newlines.
func WriteTable(w io.Writer, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		Writef(tw, "%s\n", strings.Join(row, "\t"))
	}
	return tw.Flush()
}
