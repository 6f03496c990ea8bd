package annotate

import "strings"

// blockComment is the state of a block comment spanning several lines.
type blockComment struct {
	// indent is the indentation of the opening line, used for the directive
	// no matter how the inner lines are indented.
	indent string
}

// openBlock starts tracking a block comment. Text following the opening
// marker becomes the first fragment.
func (s *scan) openBlock(line string) {
	s.block = &blockComment{indent: indentOf(line)}

	text := strings.TrimSpace(line)
	text = strings.TrimPrefix(text, blockOpenMarker)
	text = strings.TrimSpace(strings.TrimLeft(text, "*"))

	if text != "" {
		s.buf.Append(s.block.indent + text)
	}
}

// blockLine handles a line inside an open block comment. Any line holding
// "*/" closes the block, whatever else it looks like.
func (s *scan) blockLine(line string) {
	if strings.Contains(line, blockCloseMarker) {
		s.closeBlock(line)

		return
	}

	if text := blockText(line); text != "" {
		s.buf.Append(s.step + text)
	}
}

// closeBlock appends the text before "*/" and flushes the block as one
// directive, emitting a placeholder when the block held no text. Anything
// after "*/" is emitted as its own line.
func (s *scan) closeBlock(line string) {
	end := strings.Index(line, blockCloseMarker)
	tail := strings.TrimSpace(line[end+len(blockCloseMarker):])

	if text := blockText(line[:end]); text != "" {
		s.buf.Append(s.step + text)
	}

	indent := s.block.indent
	s.block = nil

	if l, ok := s.buf.Flush(indent, true); ok {
		s.emit(l)
	}

	if tail != "" {
		s.emit(Line{Text: indent + tail})
	}
}

// blockText strips the leading "*" column from an inner block comment line.
// The line's own indentation is kept so that continuation lines stay aligned.
// Blank results are returned as "".
func blockText(line string) string {
	indent := indentOf(line)
	text := strings.TrimRight(line[len(indent):], " \t")

	if strings.HasPrefix(text, "*") {
		text = strings.TrimLeft(text, "*")
		text = strings.TrimLeft(text, " \t")
	}

	if text == "" {
		return ""
	}

	return indent + text
}
