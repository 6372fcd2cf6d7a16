package render

import (
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"
)

var keywords = map[string]bool{
	"import": true, "export": true, "from": true, "const": true, "let": true,
	"var": true, "function": true, "return": true, "if": true, "else": true,
	"for": true, "while": true, "class": true, "interface": true, "type": true,
	"enum": true, "extends": true, "implements": true, "async": true,
	"await": true, "default": true, "new": true, "readonly": true,
	"keyof": true, "typeof": true,
}

// Highlight escapes TypeScript source and wraps keywords, strings, numbers
// and comments in classed spans. Tokens are classified in one pass, so
// markup is never matched twice.
func Highlight(code string) template.HTML {
	var b strings.Builder
	b.Grow(len(code) * 2)

	for i := 0; i < len(code); {
		c := code[i]
		switch {
		case c == '/' && i+1 < len(code) && code[i+1] == '/':
			end := strings.IndexByte(code[i:], '\n')
			if end < 0 {
				end = len(code) - i
			}
			span(&b, "comment", code[i:i+end])
			i += end
		case c == '/' && i+1 < len(code) && code[i+1] == '*':
			end := strings.Index(code[i+2:], "*/")
			if end < 0 {
				end = len(code)
			} else {
				end = i + 2 + end + 2
			}
			span(&b, "comment", code[i:end])
			i = end
		case c == '\'' || c == '"' || c == '`':
			end := stringEnd(code, i)
			span(&b, "string", code[i:end])
			i = end
		case c >= '0' && c <= '9':
			end := i
			for end < len(code) && (isDigit(code[end]) || code[end] == '.' || code[end] == '_') {
				end++
			}
			span(&b, "number", code[i:end])
			i = end
		case isIdentStart(code, i):
			end := i
			for end < len(code) {
				r, size := utf8.DecodeRuneInString(code[end:])
				if !(r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
					break
				}
				end += size
			}
			word := code[i:end]
			if keywords[word] {
				span(&b, "keyword", word)
			} else {
				b.WriteString(template.HTMLEscapeString(word))
			}
			i = end
		default:
			_, size := utf8.DecodeRuneInString(code[i:])
			b.WriteString(template.HTMLEscapeString(code[i : i+size]))
			i += size
		}
	}
	return template.HTML(b.String())
}

func span(b *strings.Builder, class, text string) {
	b.WriteString(`<span class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(template.HTMLEscapeString(text))
	b.WriteString(`</span>`)
}

// stringEnd returns the index just past the string literal opening at i.
// Unterminated single-line strings end at the newline.
func stringEnd(code string, i int) int {
	quote := code[i]
	for j := i + 1; j < len(code); j++ {
		switch code[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			if quote != '`' {
				return j
			}
		}
	}
	return len(code)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(code string, i int) bool {
	r, _ := utf8.DecodeRuneInString(code[i:])
	return r == '_' || r == '$' || unicode.IsLetter(r)
}
