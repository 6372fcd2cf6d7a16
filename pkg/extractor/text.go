package extractor

import (
	"strings"
	"unicode"
)

// member is one declaration inside a braced body plus the comment that
// immediately preceded it.
type member struct {
	text string
	doc  string
}

// splitMembers splits an interface or object body into members on newlines
// and top-level semicolons. Comment-only lines are not members; the last one
// seen becomes the doc of the next member. A blank line clears it. A line
// starting with | or & continues an unterminated member from the line before.
func splitMembers(body string) []member {
	var (
		members []member
		pending string
		inBlock bool
		open    bool
	)
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)

		if inBlock {
			text := line
			if i := strings.Index(line, "*/"); i >= 0 {
				text, inBlock = line[:i], false
			}
			if pending == "" {
				pending = commentText(text)
			}
			continue
		}

		if line == "" {
			pending, open = "", false
			continue
		}
		if rest, ok := strings.CutPrefix(line, "//"); ok {
			pending = strings.TrimSpace(rest)
			continue
		}
		if strings.HasPrefix(line, "/*") {
			end := strings.Index(line, "*/")
			if end < 0 {
				inBlock = true
				pending = commentText(line[2:])
				continue
			}
			pending = commentText(line[2:end])
			line = strings.TrimSpace(line[end+2:])
			if line == "" {
				continue
			}
		} else if strings.HasPrefix(line, "*") {
			pending = commentText(line)
			continue
		}

		line = stripLineComment(line)
		parts := splitTopLevel(line, ';')
		if open && len(members) > 0 && (strings.HasPrefix(line, "|") || strings.HasPrefix(line, "&")) {
			last := &members[len(members)-1]
			last.text += " " + strings.TrimSpace(parts[0])
			parts = parts[1:]
		}
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			members = append(members, member{text: part, doc: pending})
			pending = ""
		}
		open = line != "" && !strings.HasSuffix(line, ";") && !strings.HasSuffix(line, ",")
	}
	return members
}

// stripLineComment drops a trailing // comment outside string literals.
func stripLineComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch {
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			return strings.TrimSpace(s[:i])
		}
	}
	return s
}

// commentEnd returns the index just past the comment starting at i, or i when
// no comment starts there.
func commentEnd(s string, i int) int {
	if i+1 >= len(s) || s[i] != '/' {
		return i
	}
	switch s[i+1] {
	case '/':
		if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
			return i + nl
		}
		return len(s)
	case '*':
		if end := strings.Index(s[i+2:], "*/"); end >= 0 {
			return i + 2 + end + 2
		}
		return len(s)
	}
	return i
}

// commentText strips comment decoration from one comment line.
func commentText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "*")
	return strings.TrimSpace(s)
}

// splitTopLevel splits s on sep where sep is outside brackets, parens,
// braces, generics and string literals.
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		if skip := commentEnd(s, i); skip > i {
			i = skip - 1
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '>':
			if i > 0 && s[i-1] == '=' {
				continue
			}
			if depth > 0 {
				depth--
			}
		default:
			if c == sep && depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// leadingComment returns the first non-empty line of the /** ... */ block that
// ends right before pos, ignoring whitespace in between.
func leadingComment(content string, pos int) Match[string] {
	if pos > len(content) {
		pos = len(content)
	}
	before := strings.TrimRightFunc(content[:pos], unicode.IsSpace)
	if !strings.HasSuffix(before, "*/") {
		return NoMatch[string]()
	}
	open := strings.LastIndex(before, "/**")
	if open < 0 || open+3 > len(before)-2 {
		return NoMatch[string]()
	}
	body := before[open+3 : len(before)-2]
	if strings.Contains(body, "*/") {
		return NoMatch[string]()
	}
	for _, line := range strings.Split(body, "\n") {
		if text := commentText(line); text != "" {
			return Matched(text)
		}
	}
	return NoMatch[string]()
}

// fileComment returns the doc comment that opens the file, if any.
func fileComment(content string) Match[string] {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, "/**") {
		return NoMatch[string]()
	}
	end := strings.Index(trimmed, "*/")
	if end < 0 {
		return NoMatch[string]()
	}
	return leadingComment(trimmed, end+2)
}

// cleanType trims whitespace, a leading union or intersection operator and a
// trailing terminator from a type expression.
func cleanType(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ";,")
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "|"); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "&"); ok {
		s = rest
	}
	return strings.TrimSpace(s)
}

// dedupe keeps the first occurrence of every string.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
