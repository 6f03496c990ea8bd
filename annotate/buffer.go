package annotate

import "strings"

// continuation joins buffered fragments inside directive text.
const continuation = " \\\n"

// Buffer accumulates comment fragments until they are flushed into a single
// directive [Line].
//
// Fragments carry their own indentation. The indentation of the first
// fragment is dropped when flushing, so continuation fragments should be
// indented one step further than the directive they end up in.
type Buffer struct {
	template  Directive
	fragments []string
}

// NewBuffer creates a [Buffer] whose directives copy template, replacing its
// indentation and text on every flush.
func NewBuffer(template Directive) *Buffer {
	return &Buffer{template: template}
}

// Append adds one fragment. Blank fragments are kept as paragraph breaks.
func (b *Buffer) Append(fragment string) {
	fragment = strings.TrimRight(fragment, " \t")
	if strings.TrimSpace(fragment) == "" {
		fragment = ""
	}

	b.fragments = append(b.fragments, fragment)
}

// Len returns the number of buffered fragments.
func (b *Buffer) Len() int {
	return len(b.fragments)
}

// Flush joins the buffered fragments into a directive indented by indent and
// clears the buffer. An empty buffer yields a directive with empty text when
// emitEmpty is set, and nothing otherwise.
func (b *Buffer) Flush(indent string, emitEmpty bool) (Line, bool) {
	if len(b.fragments) == 0 && !emitEmpty {
		return Line{}, false
	}

	fragments := trimBlank(b.fragments)

	words := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f != "" {
			words = append(words, strings.TrimSpace(f))
		}
	}

	d := b.template
	d.Indent = indent
	d.Text = strings.TrimSpace(strings.Join(fragments, continuation))

	b.fragments = b.fragments[:0]

	return Line{
		Text:      d.String(),
		Directive: &d,
		Comment:   strings.Join(words, " "),
	}, true
}

// trimBlank drops blank fragments from both ends of fragments.
func trimBlank(fragments []string) []string {
	for len(fragments) > 0 && fragments[0] == "" {
		fragments = fragments[1:]
	}

	for len(fragments) > 0 && fragments[len(fragments)-1] == "" {
		fragments = fragments[:len(fragments)-1]
	}

	return fragments
}
