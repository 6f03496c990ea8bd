package annotate

import (
	"cmp"
	"log/slog"
	"strings"
)

// Default guard markers and indentation step.
const (
	DefaultGuardOpen  = "#ifndef"
	DefaultGuardClose = "#endif"
	DefaultIndentStep = 4
)

// Scanner rewrites comments inside guarded regions into directives.
//
// A Scanner holds configuration only. All scan state is created per call to
// [Scanner.Scan], so a Scanner is safe for concurrent use.
//
// Create instances with [New].
type Scanner struct {
	classifier *Classifier
	logger     *slog.Logger
	template   Directive
	guardOpen  string
	guardClose string
	step       string
}

// Option configures a [Scanner].
type Option func(*Scanner)

// New creates a [Scanner] with the given options.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		template:   Directive{Marker: DefaultDocMarker},
		guardOpen:  DefaultGuardOpen,
		guardClose: DefaultGuardClose,
		step:       strings.Repeat(" ", DefaultIndentStep),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.classifier = NewClassifier(s.guardOpen, s.guardClose)

	return s
}

// WithDocMarker sets the documentation directive marker (default "@doc").
func WithDocMarker(marker string) Option {
	return func(s *Scanner) {
		s.template.Marker = marker
	}
}

// WithValueKey names the text argument, producing @doc(key="...").
func WithValueKey(key string) Option {
	return func(s *Scanner) {
		s.template.Key = key
	}
}

// WithFormat adds a quoted formatting parameter, e.g. "markdown", after the
// directive text.
func WithFormat(format string) Option {
	return func(s *Scanner) {
		s.template.Format = format
	}
}

// WithGuardMarkers sets the markers that open and close guarded regions.
func WithGuardMarkers(open, closing string) Option {
	return func(s *Scanner) {
		s.guardOpen = open
		s.guardClose = closing
	}
}

// WithIndentStep sets how many spaces continuation lines of multi-line
// directive text are indented past the directive.
func WithIndentStep(n int) Option {
	return func(s *Scanner) {
		s.step = strings.Repeat(" ", max(n, 0))
	}
}

// WithLogger sets the logger used for diagnostics. Defaults to
// [slog.Default] at scan time.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// Classifier returns the [Classifier] used by s.
func (s *Scanner) Classifier() *Classifier {
	return s.classifier
}

// Scan rewrites lines and returns the output lines in order.
func (s *Scanner) Scan(lines []string) []Line {
	sc := &scan{
		Scanner: s,
		logger:  cmp.Or(s.logger, slog.Default()),
		buf:     NewBuffer(s.template),
		out:     make([]Line, 0, len(lines)),
	}

	for i, line := range lines {
		sc.lineNo = i + 1
		sc.next(line)
	}

	sc.flushPending()

	return sc.out
}

// scan holds the state of one [Scanner.Scan] call.
type scan struct {
	*Scanner

	logger *slog.Logger
	buf    *Buffer
	block  *blockComment
	out    []Line

	// runIndent is the indentation of the first line of the pending run of
	// full-line comments.
	runIndent string
	lineNo    int
	guarded   bool
}

func (s *scan) next(raw string) {
	kind := s.classifier.Classify(raw, s.block != nil)

	switch {
	case kind == KindGuardOpen:
		s.flushPending()
		s.guarded = true
		s.emit(Line{Text: raw})

		return

	case kind == KindGuardClose && s.guarded:
		s.flushPending()
		s.guarded = false
		s.emit(Line{Text: raw})

		return

	case !s.guarded:
		s.emit(Line{Text: raw})

		return
	}

	line := strings.TrimRight(raw, " \t\r")

	if s.block != nil {
		s.blockLine(line)

		return
	}

	if kind == KindFullLineComment {
		if s.buf.Len() == 0 {
			s.runIndent = indentOf(line)
		}

		s.buf.Append(indentOf(line) + s.step + lineCommentText(line))

		return
	}

	// The comment run, if any, ended on the previous line.
	s.flushRun()

	switch kind {
	case KindInlineComment:
		s.inline(line)
	case KindBlockCommentOpen:
		s.openBlock(line)
	default:
		s.emit(Line{Text: line})
	}
}

// flushRun emits the pending run of full-line comments, if any.
func (s *scan) flushRun() {
	if l, ok := s.buf.Flush(s.runIndent, false); ok {
		s.emit(l)
	}
}

// flushPending emits whatever comment text is still buffered. A block comment
// left open is abandoned.
func (s *scan) flushPending() {
	if s.block != nil {
		s.logger.Debug("block comment not closed",
			"line", s.lineNo,
		)

		s.runIndent = s.block.indent
		s.block = nil
	}

	s.flushRun()
}

func (s *scan) emit(l Line) {
	s.out = append(s.out, l)
}
