package annotate

import "strings"

// DefaultDocMarker is the directive marker written before documentation text.
const DefaultDocMarker = "@doc"

// Directive is an annotation emitted in place of a comment.
type Directive struct {
	// Indent is the whitespace written before the marker.
	Indent string
	// Marker names the directive, e.g. "@doc".
	Marker string
	// Key, when set, names the text argument: @doc(value="...").
	Key string
	// Text is the unescaped directive text.
	Text string
	// Format, when set, is written as a second quoted argument.
	Format string
}

// String renders the directive as a single output line (multi-line text keeps
// its embedded line breaks).
func (d Directive) String() string {
	var sb strings.Builder

	sb.WriteString(d.Indent)
	sb.WriteString(d.Marker)
	sb.WriteByte('(')

	if d.Key != "" {
		sb.WriteString(d.Key)
		sb.WriteByte('=')
	}

	sb.WriteByte('"')
	sb.WriteString(Escape(d.Text))
	sb.WriteByte('"')

	if d.Format != "" {
		sb.WriteString(`, "`)
		sb.WriteString(d.Format)
		sb.WriteByte('"')
	}

	sb.WriteByte(')')

	return sb.String()
}

// Escape backslash-escapes every double quote in s. Nothing else is escaped.
func Escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Line is one line of [Scanner] output.
type Line struct {
	// Directive is set when the line was produced from comment text.
	Directive *Directive
	// Text is the rendered line.
	Text string
	// Comment is the captured comment text behind Directive, with fragments
	// trimmed and joined by single spaces.
	Comment string
}
