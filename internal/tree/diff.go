package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Diff writes a line diff of every staged file against its on-disk content.
func (t *Tree) Diff(w io.Writer) error {
	dmp := diffmatchpatch.New()
	for _, a := range t.actions {
		before := string(t.original(a.Path))
		after := string(t.staged[a.Path])

		from := "a/" + a.Path
		if a.Kind == ActionCreate {
			from = "/dev/null"
		}
		if _, err := fmt.Fprintf(w, "--- %s\n+++ b/%s\n", from, a.Path); err != nil {
			return err
		}

		chars1, chars2, lines := dmp.DiffLinesToChars(before, after)
		diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)
		if err := writeHunks(w, diffs); err != nil {
			return err
		}
	}
	return nil
}

func writeHunks(w io.Writer, diffs []diffmatchpatch.Diff) error {
	for i, d := range diffs {
		lines := splitLines(d.Text)
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		default:
			prefix = " "
			lines = trimContext(lines, i == 0, i == len(diffs)-1)
		}
		for _, line := range lines {
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// trimContext keeps contextLines of an unchanged run next to each change and
// replaces the middle with a single marker line.
func trimContext(lines []string, first, last bool) []string {
	head, tail := contextLines, contextLines
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if len(lines) <= head+tail {
		return lines
	}
	out := append([]string(nil), lines[:head]...)
	out = append(out, "...")
	return append(out, lines[len(lines)-tail:]...)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
