package derive

import (
	"regexp"
	"slices"
	"strings"

	"go.jacobcolvin.com/idldoc/annotate"
)

const numberPattern = `([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)`

var (
	maxExpr   = regexp.MustCompile(`\bmaxInclusive=` + numberPattern)
	minExpr   = regexp.MustCompile(`\bminInclusive=` + numberPattern)
	unitsExpr = regexp.MustCompile(`\bunits=`)
	// nextKeyExpr ends a units value. A value containing "word=" is cut
	// short.
	nextKeyExpr = regexp.MustCompile(`\s*\w+=`)
)

// DefaultUnitSentinels are units values that mean "no unit".
var DefaultUnitSentinels = []string{"N/A", "None"}

// Metadata holds the tokens found in one comment. Empty fields were absent.
type Metadata struct {
	Max   string
	Min   string
	Units string
}

// Parse extracts [Metadata] from comment text. Numbers are returned as
// written.
func Parse(comment string) Metadata {
	var m Metadata

	if match := maxExpr.FindStringSubmatch(comment); match != nil {
		m.Max = match[1]
	}

	if match := minExpr.FindStringSubmatch(comment); match != nil {
		m.Min = match[1]
	}

	if loc := unitsExpr.FindStringIndex(comment); loc != nil {
		units := comment[loc[1]:]
		if next := nextKeyExpr.FindStringIndex(units); next != nil {
			units = units[:next[0]]
		}

		m.Units = strings.TrimSpace(units)
	}

	return m
}

// Deriver turns [Metadata] into directive lines.
//
// Create instances with [New].
type Deriver struct {
	sentinels []string
}

// Option configures a [Deriver].
type Option func(*Deriver)

// New creates a [Deriver] with the given options.
func New(opts ...Option) *Deriver {
	d := &Deriver{
		sentinels: DefaultUnitSentinels,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// WithUnitSentinels replaces the units values that suppress @unit.
func WithUnitSentinels(sentinels ...string) Option {
	return func(d *Deriver) {
		d.sentinels = sentinels
	}
}

// Derive returns the metadata directives for comment without indentation, or
// "" when the comment carries none.
func (d *Deriver) Derive(comment string) string {
	m := Parse(comment)

	var parts []string

	switch {
	case m.Max != "" && m.Min != "":
		parts = append(parts, "@range(min="+m.Min+", max="+m.Max+")")
	case m.Max != "":
		parts = append(parts, "@max("+m.Max+")")
	case m.Min != "":
		parts = append(parts, "@min("+m.Min+")")
	}

	if m.Units != "" && !slices.Contains(d.sentinels, m.Units) {
		parts = append(parts, `@unit("`+annotate.Escape(m.Units)+`")`)
	}

	return strings.Join(parts, " ")
}

// Apply renders lines, inserting derived directives after every directive
// line whose comment carries metadata.
func (d *Deriver) Apply(lines []annotate.Line) []string {
	out := make([]string, 0, len(lines))

	for _, l := range lines {
		out = append(out, l.Text)

		if l.Directive == nil {
			continue
		}

		if derived := d.Derive(l.Comment); derived != "" {
			out = append(out, l.Directive.Indent+derived)
		}
	}

	return out
}
