package annotate

import (
	"regexp"
	"strings"
)

// Kind is the classification of a single line of IDL text.
type Kind string

const (
	// KindGuardOpen marks the start of a guarded region.
	KindGuardOpen Kind = "guard-open"
	// KindGuardClose marks the end of a guarded region.
	KindGuardClose Kind = "guard-close"
	// KindFullLineComment is a line holding nothing but a comment.
	KindFullLineComment Kind = "full-line-comment"
	// KindInlineComment is a declaration followed by a trailing comment.
	KindInlineComment Kind = "inline-comment"
	// KindBlockCommentOpen opens a block comment that is not closed on the
	// same line.
	KindBlockCommentOpen Kind = "block-comment-open"
	// KindBlockCommentClose closes the block comment currently open.
	KindBlockCommentClose Kind = "block-comment-close"
	// KindPlain is any other line.
	KindPlain Kind = "plain"
)

const (
	lineCommentMarker = "//"
	blockOpenMarker   = "/*"
	blockCloseMarker  = "*/"

	// directiveSigil starts full-line comments that already are directives.
	directiveSigil = "//@"
)

// inlineCommentExpr is deliberately permissive; [splitInline] decides whether
// the line really splits into a declaration and a comment.
var inlineCommentExpr = regexp.MustCompile(`^\s*\S.*?(?://|/\*.*\*/)`)

type rule struct {
	match func(line string, inBlock bool) bool
	kind  Kind
}

// Classifier maps lines to a [Kind] by trying an ordered list of rules. The
// first rule that matches wins.
//
// Create instances with [NewClassifier].
type Classifier struct {
	rules []rule
}

// NewClassifier creates a [Classifier] that recognizes guarded regions by
// lines starting (after optional whitespace) with guardOpen and guardClose.
func NewClassifier(guardOpen, guardClose string) *Classifier {
	openExpr := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(guardOpen))
	closeExpr := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(guardClose))

	return &Classifier{
		rules: []rule{
			{kind: KindGuardOpen, match: func(line string, _ bool) bool {
				return openExpr.MatchString(line)
			}},
			{kind: KindGuardClose, match: func(line string, _ bool) bool {
				return closeExpr.MatchString(line)
			}},
			{kind: KindPlain, match: func(line string, _ bool) bool {
				return isDirectiveComment(line)
			}},
			{kind: KindFullLineComment, match: func(line string, _ bool) bool {
				return isFullLineComment(line)
			}},
			{kind: KindInlineComment, match: func(line string, _ bool) bool {
				return inlineCommentExpr.MatchString(line)
			}},
			{kind: KindBlockCommentOpen, match: func(line string, _ bool) bool {
				return opensBlock(line)
			}},
			{kind: KindBlockCommentClose, match: func(line string, inBlock bool) bool {
				return inBlock && strings.Contains(line, blockCloseMarker)
			}},
		},
	}
}

// Classify returns the [Kind] of line. inBlock reports whether the line is
// inside a block comment opened on an earlier line.
func (c *Classifier) Classify(line string, inBlock bool) Kind {
	for _, r := range c.rules {
		if r.match(line, inBlock) {
			return r.kind
		}
	}

	return KindPlain
}

// isDirectiveComment reports whether line is a "//@" comment.
func isDirectiveComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), directiveSigil)
}

// isFullLineComment reports whether line is a "//" comment, or a single
// "/* ... */" comment with nothing before or after it.
func isFullLineComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, lineCommentMarker) {
		return true
	}

	if !strings.HasPrefix(trimmed, blockOpenMarker) {
		return false
	}

	end := strings.Index(trimmed[len(blockOpenMarker):], blockCloseMarker)

	return end >= 0 && end == len(trimmed)-len(blockOpenMarker)-len(blockCloseMarker)
}

// opensBlock reports whether line starts a block comment left open at the
// end of the line.
func opensBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, blockOpenMarker) {
		return false
	}

	return !strings.Contains(trimmed[len(blockOpenMarker):], blockCloseMarker)
}

// lineCommentText returns the text of a full-line comment without its
// markers.
func lineCommentText(line string) string {
	trimmed := strings.TrimSpace(line)
	if text, ok := strings.CutPrefix(trimmed, lineCommentMarker); ok {
		return strings.TrimSpace(text)
	}

	text := strings.TrimPrefix(trimmed, blockOpenMarker)
	text = strings.TrimSuffix(text, blockCloseMarker)

	return strings.TrimSpace(strings.Trim(text, "*"))
}

// indentOf returns the leading whitespace of line.
func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
