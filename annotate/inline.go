package annotate

import "strings"

// splitInline splits a line holding a declaration and trailing comments.
// A comment starts at "//" or "/*" outside a double-quoted string literal.
// Text between or after C-style comments, such as a trailing ";" or ",",
// stays with the declaration. The text of every comment on the line is
// joined with single spaces.
func splitInline(line string) (decl, text string, ok bool) {
	start := commentStart(line)
	if start < 0 {
		return "", "", false
	}

	decl = strings.TrimSpace(line[:start])
	if decl == "" {
		return "", "", false
	}

	var texts []string

	rest := line[start:]
	for {
		if strings.HasPrefix(rest, lineCommentMarker) {
			texts = append(texts, strings.TrimSpace(rest[len(lineCommentMarker):]))

			break
		}

		body := rest[len(blockOpenMarker):]

		end := strings.Index(body, blockCloseMarker)
		if end < 0 {
			return "", "", false
		}

		texts = append(texts, strings.TrimSpace(body[:end]))
		rest = body[end+len(blockCloseMarker):]

		next := commentStart(rest)
		if next < 0 {
			decl = joinNonEmpty(decl, strings.TrimSpace(rest))

			break
		}

		decl = joinNonEmpty(decl, strings.TrimSpace(rest[:next]))
		rest = rest[next:]
	}

	return decl, joinNonEmpty(texts...), true
}

// joinNonEmpty joins the non-empty parts with single spaces.
func joinNonEmpty(parts ...string) string {
	var kept []string

	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, " ")
}

// commentStart returns the byte offset of the first comment opener in line
// that is not inside a string literal, or -1.
func commentStart(line string) int {
	inString := false

	for i := 0; i < len(line)-1; i++ {
		switch c := line[i]; {
		case c == '\\' && inString:
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '/' && (line[i+1] == '/' || line[i+1] == '*'):
			return i
		}
	}

	return -1
}

// inline handles a [KindInlineComment] line: a directive carrying the comment
// text, then the bare declaration, both at the line's indentation.
func (s *scan) inline(line string) {
	decl, text, ok := splitInline(line)
	if !ok {
		s.logger.Debug("inline comment not split",
			"line", s.lineNo,
			"text", line,
		)
		s.emit(Line{Text: line})

		return
	}

	indent := indentOf(line)

	d := s.template
	d.Indent = indent
	d.Text = text

	s.emit(Line{Text: d.String(), Directive: &d, Comment: text})
	s.emit(Line{Text: indent + decl})
}
