package script

import "strings"

// Arg is one argument of a character constructor. Positional arguments have
// an empty Name.
type Arg struct {
	Name  string
	Value string
}

// scanBalanced walks text starting just after an opening parenthesis and
// returns the raw argument list together with the offset one past the
// closing parenthesis.
//
// The scanner tracks two pieces of state: whether it is inside a single- or
// double-quoted string (with backslash-escape awareness) and the current
// nesting depth of parentheses. It never fails: an unmatched quote simply
// extends the in-string state to end of input, and a missing closing
// parenthesis yields the rest of the text as-is.
func scanBalanced(text string, start int) (args string, end int) {
	depth := 1
	var quote byte // 0 when outside a string, otherwise '\'' or '"'
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[start:i], i + 1
			}
		}
	}

	return text[start:], len(text)
}

// splitArgs splits a raw argument list on commas at parenthesis depth zero
// outside of strings. Nested calls and quoted commas stay intact:
//
//	`"Eileen, PhD", color="#ff0000", who_outlines=[(2, "#000")]`
//
// yields three arguments. Like scanBalanced, splitArgs degrades gracefully
// on malformed input instead of failing.
func splitArgs(raw string) []string {
	var parts []string
	depth := 0
	var quote byte
	escaped := false
	last := 0

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, raw[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, raw[last:])
	return parts
}

// ScanArgs tokenizes a character-constructor argument list into positional
// and keyword arguments. Each split piece is classified by a single regex
// match against the `name = value` shape; everything else is positional.
// Empty pieces (trailing commas, empty lists) are dropped.
func ScanArgs(raw string) []Arg {
	var args []Arg
	for _, part := range splitArgs(raw) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := keywordArgRe.FindStringSubmatch(part); m != nil {
			args = append(args, Arg{Name: m[1], Value: strings.TrimSpace(m[2])})
			continue
		}
		args = append(args, Arg{Value: part})
	}
	return args
}

// unquote strips one layer of matching single or double quotes, if present.
// Escaped quotes inside the string are unescaped. Values that are not
// quoted strings are returned unchanged.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return s
	}
	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, "\\") {
		return inner
	}
	var b strings.Builder
	escaped := false
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
