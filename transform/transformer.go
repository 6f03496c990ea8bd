package transform

import (
	"strings"

	"go.jacobcolvin.com/idldoc/annotate"
	"go.jacobcolvin.com/idldoc/derive"
)

// Transformer rewrites IDL text: comments become documentation directives
// (see package annotate), then metadata directives are derived from the
// captured comment text (see package derive).
//
// A Transformer is safe for concurrent use.
type Transformer struct {
	scanner *annotate.Scanner
	deriver *derive.Deriver
}

// New creates a [Transformer]. A nil deriver skips metadata derivation.
func New(scanner *annotate.Scanner, deriver *derive.Deriver) *Transformer {
	return &Transformer{
		scanner: scanner,
		deriver: deriver,
	}
}

// Transform returns the rewritten text. The presence of a final newline
// follows src. When every line of src ends in CRLF the output uses CRLF too.
// Otherwise lines are split on LF only: a stray CR stays part of its line, so
// untouched lines keep their exact bytes, and rewritten lines end in LF.
func (t *Transformer) Transform(src string) string {
	crlf := isCRLF(src)

	lines := strings.Split(src, "\n")
	if crlf {
		for i, line := range lines {
			lines[i] = strings.TrimSuffix(line, "\r")
		}
	}

	out := t.Lines(lines)

	result := strings.Join(out, "\n")
	if crlf {
		result = strings.ReplaceAll(result, "\n", "\r\n")
	}

	return result
}

// isCRLF reports whether src has line breaks and all of them are CRLF.
func isCRLF(src string) bool {
	n := strings.Count(src, "\n")

	return n > 0 && strings.Count(src, "\r\n") == n
}

// Lines rewrites individual lines, without line terminators.
func (t *Transformer) Lines(lines []string) []string {
	annotated := t.scanner.Scan(lines)

	if t.deriver != nil {
		return t.deriver.Apply(annotated)
	}

	out := make([]string, len(annotated))
	for i, l := range annotated {
		out[i] = l.Text
	}

	return out
}
