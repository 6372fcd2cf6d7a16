package extractor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

var (
	interfaceRe = regexp.MustCompile(`(export\s+)?\binterface\s+(\w+)(?:<[^>{]*>)?(?:\s+extends\s+[^{]+?)?\s*\{`)
	aliasRe     = regexp.MustCompile(`(export\s+)?\btype\s+(\w+)(?:<[^>=]*>)?\s*=`)
	enumRe      = regexp.MustCompile(`(export\s+)?\b(?:const\s+)?enum\s+(\w+)\s*\{`)
	constRe     = regexp.MustCompile(`(export\s+)?\bconst\s+(\w+)(?:\s*:\s*[^=\n]+?)?\s*=\s*\{`)

	enumMemberRe = regexp.MustCompile(`^(\w+)(?:\s*=\s*(.+?))?\s*$`)
	constPairRe  = regexp.MustCompile(`^(\w+|'[^']*'|"[^"]*")\s*:\s*([\s\S]+)$`)
)

// Types extracts every interface, type alias, enum and constant table in f.
// Each kind is matched independently, so one file can yield several kinds.
func Types(f docmodel.SourceFile) []docmodel.TypeDecl {
	decls := []docmodel.TypeDecl{}
	decls = append(decls, interfaces(f)...)
	decls = append(decls, aliases(f)...)
	decls = append(decls, enums(f)...)
	decls = append(decls, constTables(f)...)
	return decls
}

func newDecl(f docmodel.SourceFile, kind docmodel.TypeKind, m []int, raw string) docmodel.TypeDecl {
	content := f.Content
	d := docmodel.TypeDecl{
		Name:          content[m[4]:m[5]],
		Kind:          kind,
		Properties:    []docmodel.Property{},
		FilePath:      f.Path,
		RelativePath:  f.RelativePath,
		Exported:      m[2] >= 0,
		RawDefinition: strings.TrimSpace(raw),
	}
	if c := leadingComment(content, m[0]); c.OK {
		d.Description = c.Value
	}
	return d
}

func interfaces(f docmodel.SourceFile) []docmodel.TypeDecl {
	var out []docmodel.TypeDecl
	for _, m := range interfaceRe.FindAllStringSubmatchIndex(f.Content, -1) {
		body, end, ok := braceBody(f.Content, m[1]-1)
		if !ok {
			continue
		}
		d := newDecl(f, docmodel.KindInterface, m, f.Content[m[0]:end])
		d.Properties = memberProperties(body)
		out = append(out, d)
	}
	return out
}

func aliases(f docmodel.SourceFile) []docmodel.TypeDecl {
	var out []docmodel.TypeDecl
	for _, m := range aliasRe.FindAllStringSubmatchIndex(f.Content, -1) {
		body, end := aliasExtent(f.Content, m[1])
		d := newDecl(f, docmodel.KindAlias, m, f.Content[m[0]:end])
		d.Properties = aliasProperties(strings.TrimSpace(body))
		out = append(out, d)
	}
	return out
}

func enums(f docmodel.SourceFile) []docmodel.TypeDecl {
	var out []docmodel.TypeDecl
	for _, m := range enumRe.FindAllStringSubmatchIndex(f.Content, -1) {
		body, end, ok := braceBody(f.Content, m[1]-1)
		if !ok {
			continue
		}
		d := newDecl(f, docmodel.KindEnum, m, f.Content[m[0]:end])
		for _, item := range listItems(body) {
			em := enumMemberRe.FindStringSubmatch(item.text)
			if em == nil {
				continue
			}
			typ := "auto"
			if em[2] != "" {
				typ = strings.TrimSpace(em[2])
			}
			d.Properties = append(d.Properties, docmodel.Property{Name: em[1], Type: typ, Description: item.doc})
		}
		out = append(out, d)
	}
	return out
}

func constTables(f docmodel.SourceFile) []docmodel.TypeDecl {
	var out []docmodel.TypeDecl
	for _, m := range constRe.FindAllStringSubmatchIndex(f.Content, -1) {
		if !isLookupTableName(f.Content[m[4]:m[5]]) {
			continue
		}
		body, end, ok := braceBody(f.Content, m[1]-1)
		if !ok {
			continue
		}
		d := newDecl(f, docmodel.KindConst, m, f.Content[m[0]:end])
		for _, item := range listItems(body) {
			pm := constPairRe.FindStringSubmatch(item.text)
			if pm == nil {
				continue
			}
			d.Properties = append(d.Properties, docmodel.Property{
				Name:        strings.Trim(pm[1], `'"`),
				Type:        strings.TrimSpace(pm[2]),
				Description: item.doc,
			})
		}
		out = append(out, d)
	}
	return out
}

// isLookupTableName keeps SCREAMING_CASE names and names mentioning LABEL or
// CONFIG.
func isLookupTableName(name string) bool {
	if strings.Contains(name, "LABEL") || strings.Contains(name, "CONFIG") {
		return true
	}
	hasLetter := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// memberProperties parses an interface or object-literal type body.
func memberProperties(body string) []docmodel.Property {
	props := []docmodel.Property{}
	for _, m := range splitMembers(body) {
		fm := propRe.FindStringSubmatch(m.text)
		if fm == nil {
			continue
		}
		props = append(props, docmodel.Property{
			Name:        fm[1],
			Type:        cleanType(fm[3]),
			Optional:    fm[2] == "?",
			Description: m.doc,
		})
	}
	return props
}

// aliasProperties gives an alias body a tabular form: object members for an
// object literal, one value_N pseudo-property per union arm, or a single
// value entry otherwise.
func aliasProperties(body string) []docmodel.Property {
	if strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}") {
		return memberProperties(body[1 : len(body)-1])
	}

	var arms []string
	for _, arm := range splitTopLevel(body, '|') {
		if arm = strings.TrimSpace(arm); arm != "" {
			arms = append(arms, arm)
		}
	}
	if len(arms) > 1 {
		props := make([]docmodel.Property, len(arms))
		for i, arm := range arms {
			props[i] = docmodel.Property{Name: fmt.Sprintf("value_%d", i+1), Type: arm}
		}
		return props
	}
	return []docmodel.Property{{Name: "value", Type: body}}
}

// aliasExtent returns the alias body starting at start and the index just
// past the declaration. The body ends at a top-level semicolon, or at a
// top-level newline unless the declaration visibly continues on the next
// line, or at EOF.
func aliasExtent(content string, start int) (string, int) {
	depth := 0
	var quote byte
	for i := start; i < len(content); i++ {
		c := content[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		if skip := commentEnd(content, i); skip > i {
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
			if content[i-1] != '=' && depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				return content[start:i], i + 1
			}
		case '\n':
			if depth == 0 && !aliasContinues(content[start:i], content[i+1:]) {
				return content[start:i], i
			}
		}
	}
	return content[start:], len(content)
}

func aliasContinues(sofar, rest string) bool {
	if strings.TrimSpace(sofar) == "" {
		return true
	}
	body := strings.TrimSpace(stripLineComment(lastLine(sofar)))
	for _, suffix := range []string{"=", "|", "&", "=>", ",", "(", "?", ":"} {
		if strings.HasSuffix(body, suffix) {
			return true
		}
	}
	next := strings.TrimLeftFunc(rest, unicode.IsSpace)
	for _, prefix := range []string{"|", "&", "=>", "?", ":"} {
		if strings.HasPrefix(next, prefix) {
			return true
		}
	}
	return false
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// listItems splits an enum or object-literal body on top-level commas,
// attaching the comment that preceded each item.
func listItems(body string) []member {
	var items []member
	for _, part := range splitTopLevel(body, ',') {
		doc, text := leadingDoc(part)
		if text != "" {
			items = append(items, member{text: text, doc: doc})
		}
	}
	return items
}

// leadingDoc separates the comments in front of an item from the item text.
// The last comment wins.
func leadingDoc(part string) (string, string) {
	var doc string
	text := strings.TrimSpace(part)
	for {
		end := commentEnd(text, 0)
		if end == 0 {
			return doc, text
		}
		comment := text[:end]
		if strings.HasPrefix(comment, "//") {
			doc = strings.TrimSpace(comment[2:])
		} else {
			doc = ""
			inner := strings.TrimSuffix(comment[2:], "*/")
			for _, line := range strings.Split(inner, "\n") {
				if t := commentText(line); t != "" {
					doc = t
					break
				}
			}
		}
		text = strings.TrimSpace(text[end:])
	}
}
