// Package diff renders line-oriented comparisons between the expected and
// actual canonical snapshot texts.
//
// Comparison is positional: line index i of the expected text is compared
// against line index i of the actual text, with no alignment algorithm.
// A structural insertion shifts all subsequent lines and they report as
// differing.
package diff

import "strings"

// Line records one differing position. A side is absent (rather than
// empty) when the corresponding text has fewer lines than the other.
type Line struct {
	// Index is the zero-based line index.
	Index int

	Expected   string
	Actual     string
	InExpected bool
	InActual   bool
}

// Report is the structured comparison result, for programmatic consumption
// by test reports. Lines holds only differing positions, in order.
type Report struct {
	Lines []Line
}

// Empty reports whether the two texts matched at every position.
func (r *Report) Empty() bool {
	return len(r.Lines) == 0
}

// Compare splits both texts into lines and compares positionally up to the
// longer of the two. Lines are compared after trimming surrounding
// whitespace, so indentation-only differences are not reported.
func Compare(expected, actual string) *Report {
	expLines := splitLines(expected)
	actLines := splitLines(actual)

	n := len(expLines)
	if len(actLines) > n {
		n = len(actLines)
	}

	r := &Report{}
	for i := 0; i < n; i++ {
		var line Line
		line.Index = i
		if i < len(expLines) {
			line.Expected = expLines[i]
			line.InExpected = true
		}
		if i < len(actLines) {
			line.Actual = actLines[i]
			line.InActual = true
		}
		if line.InExpected && line.InActual &&
			strings.TrimSpace(line.Expected) == strings.TrimSpace(line.Actual) {
			continue
		}
		r.Lines = append(r.Lines, line)
	}
	return r
}

// splitLines splits on newlines, dropping a single trailing empty line so
// that newline-terminated texts do not report a phantom final line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
