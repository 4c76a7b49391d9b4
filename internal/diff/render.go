package diff

import (
	"fmt"
	"strings"
)

// ANSI escape sequences for terminal rendering.
const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// Render produces the terminal form of the report: for each differing
// position, a dim "@ line N" header (1-based), a "- " marker with the
// expected line, and a "+ " marker with the actual line. Absent sides emit
// no marker. With color enabled, removed lines are red and added lines
// green.
func (r *Report) Render(color bool) string {
	var b strings.Builder
	for _, line := range r.Lines {
		writeMarked(&b, color, ansiDim, fmt.Sprintf("@ line %d", line.Index+1))
		if line.InExpected {
			writeMarked(&b, color, ansiRed, "- "+line.Expected)
		}
		if line.InActual {
			writeMarked(&b, color, ansiGreen, "+ "+line.Actual)
		}
	}
	return b.String()
}

func writeMarked(b *strings.Builder, color bool, code, text string) {
	if color {
		b.WriteString(code)
		b.WriteString(text)
		b.WriteString(ansiReset)
	} else {
		b.WriteString(text)
	}
	b.WriteByte('\n')
}
