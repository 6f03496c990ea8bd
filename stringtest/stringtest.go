package stringtest

import "strings"

// Input trims one leading and one trailing newline from s and removes the
// indentation shared by all non-blank lines. Whitespace-only lines become
// empty, and a whitespace-only last line counts as the trailing newline. It
// lets test inputs be written as indented raw string literals.
//
// Example:
//
//	src := stringtest.Input(`
//		#ifndef A
//		    int x; // count
//		#endif
//	`) // -> "#ifndef A\n    int x; // count\n#endif"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 && strings.TrimSpace(s[i+1:]) == "" {
		s = s[:i+1]
	}

	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix := ""
	found := false

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			prefix = indent
			found = true

			continue
		}

		prefix = commonPrefix(prefix, indent)
	}

	if prefix == "" {
		return strings.Join(lines, "\n")
	}

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:n]
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to construct expected test output with explicit line endings on
// Windows.
//
// Example:
//
//	want := stringtest.JoinCRLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\r\nline2\r\nline3"
func JoinCRLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\r')
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}
