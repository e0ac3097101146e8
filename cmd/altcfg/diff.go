package main

import (
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// lineDiff compares from and to line by line.
func lineDiff(from, to string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []diffLine
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, l := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, diffLine{op: d.Type, text: l})
		}
	}
	return out
}

// writeDiff prints the changed lines between from and to with some
// context. Runs of skipped unchanged lines are marked with "@@".
func (a *app) writeDiff(fromName, toName, from, to string) error {
	lines := lineDiff(from, to)

	var sb strings.Builder
	sb.WriteString(a.colors.header.Sprint("--- "+fromName) + "\n")
	sb.WriteString(a.colors.header.Sprint("+++ "+toName) + "\n")
	last := -1
	for i, l := range lines {
		if !nearChange(lines, i) {
			continue
		}
		if i > last+1 {
			sb.WriteString(a.colors.header.Sprint("@@") + "\n")
		}
		last = i
		switch l.op {
		case diffmatchpatch.DiffDelete:
			sb.WriteString(a.colors.del.Sprint("-"+l.text) + "\n")
		case diffmatchpatch.DiffInsert:
			sb.WriteString(a.colors.add.Sprint("+"+l.text) + "\n")
		default:
			sb.WriteString(" " + l.text + "\n")
		}
	}
	_, err := io.WriteString(a.stdout, sb.String())
	return err
}

func nearChange(lines []diffLine, i int) bool {
	lo, hi := max(0, i-diffContext), min(len(lines)-1, i+diffContext)
	for j := lo; j <= hi; j++ {
		if lines[j].op != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}
