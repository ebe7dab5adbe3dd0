// Package diff computes line diffs between two renderings of the corpus.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Line is one line of a diff, without its newline.
type Line struct {
	Op   Op
	Text string
	// Old and New are 1-based line numbers on each side; zero when the line
	// does not exist on that side.
	Old int
	New int
}

// Result holds a computed line diff.
type Result struct {
	Lines   []Line
	Added   int
	Removed int
}

// Changed reports whether the two inputs differ.
func (r Result) Changed() bool {
	return r.Added > 0 || r.Removed > 0
}

// Compute returns the line diff turning before into after. A missing final
// newline is not a difference.
func Compute(before, after string) Result {
	before = withNewline(before)
	after = withNewline(after)

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var r Result
	oldLine, newLine := 0, 0
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			l := Line{Text: text}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				newLine++
				l.Op, l.New = Insert, newLine
				r.Added++
			case diffmatchpatch.DiffDelete:
				oldLine++
				l.Op, l.Old = Delete, oldLine
				r.Removed++
			default:
				oldLine++
				newLine++
				l.Op, l.Old, l.New = Equal, oldLine, newLine
			}
			r.Lines = append(r.Lines, l)
		}
	}
	return r
}

// Format renders the changed lines only. Each run of changes starts with a
// "@@ -old +new @@" marker naming where it begins on each side.
func (r Result) Format(name string) string {
	if !r.Changed() {
		return ""
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "--- %s\n+++ %s\n", name, name)
	}
	oldLine, newLine := 0, 0
	inRun := false
	for _, l := range r.Lines {
		if l.Op == Equal {
			oldLine, newLine = l.Old, l.New
			inRun = false
			continue
		}
		if !inRun {
			fmt.Fprintf(&b, "@@ -%d +%d @@\n", oldLine+1, newLine+1)
			inRun = true
		}
		if l.Op == Insert {
			newLine = l.New
			b.WriteString("+" + l.Text + "\n")
		} else {
			oldLine = l.Old
			b.WriteString("-" + l.Text + "\n")
		}
	}
	return b.String()
}

func withNewline(s string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		return s + "\n"
	}
	return s
}

func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}
