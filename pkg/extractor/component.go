package extractor

import (
	"regexp"
	"strings"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

// Tried in order; the first pattern that matches anywhere names the component.
var componentNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`export\s+default\s+function\s+(\w+)`),
	regexp.MustCompile(`export\s+function\s+(\w+)`),
	regexp.MustCompile(`export\s+const\s+(\w+)\s*[:=]`),
	regexp.MustCompile(`function\s+(\w+)\s*\(`),
	regexp.MustCompile(`const\s+(\w+)\s*[:=]\s*(?:\([^)]*\)|[^=])*=>\s*[({]`),
}

var (
	componentExtPattern = regexp.MustCompile(`\.(tsx?|jsx?)$`)
	propRe              = regexp.MustCompile(`^(?:readonly\s+)?(\w+)\s*(\?)?\s*:\s*(.+)$`)
	importRe            = regexp.MustCompile(`import\s+(?:type\s+)?(?:(?:\*\s*as\s+(\w+)|(\w+))\s*,?\s*)?(?:\{([^}]*)\})?\s*from\s*['"]([^'"]+)['"]`)
	hookRe              = regexp.MustCompile(`\buse[A-Z]\w+`)
)

// Component extracts the component record of one file. The category comes
// from the directory names of the full file path, so a scan rooted inside
// components/ui still yields ui components.
func Component(f docmodel.SourceFile) docmodel.Component {
	name := ComponentName(f.Content).Or(componentExtPattern.ReplaceAllString(f.BaseName(), ""))

	desc := declarationComment(f.Content, name).Or(name + " component")

	return docmodel.Component{
		Name:         name,
		FilePath:     f.Path,
		RelativePath: f.RelativePath,
		Props:        Props(f.Content, name),
		Imports:      Imports(f.Content),
		Hooks:        Hooks(f.Content),
		Description:  desc,
		Category:     docmodel.CategoryForPath(f.Path),
	}
}

// ComponentName returns the component identifier declared in content.
func ComponentName(content string) Match[string] {
	return firstCapture(content, componentNamePatterns)
}

// Props parses the props declaration of the named component. The first of
// interface <Name>Props, interface Props, type <Name>Props = {...} and
// type Props = {...} found is used.
func Props(content, component string) []docmodel.Prop {
	q := regexp.QuoteMeta(component)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`interface\s+` + q + `Props(?:<[^>{]*>)?(?:\s+extends\s+[^{]+)?\s*\{`),
		regexp.MustCompile(`interface\s+Props(?:<[^>{]*>)?(?:\s+extends\s+[^{]+)?\s*\{`),
		regexp.MustCompile(`type\s+` + q + `Props\s*=\s*\{`),
		regexp.MustCompile(`type\s+Props\s*=\s*\{`),
	}

	props := []docmodel.Prop{}
	body := firstBody(content, patterns)
	if !body.OK {
		return props
	}
	for _, m := range splitMembers(body.Value) {
		fm := propRe.FindStringSubmatch(m.text)
		if fm == nil {
			continue
		}
		props = append(props, docmodel.Prop{
			Name:        fm[1],
			Type:        cleanType(fm[3]),
			Required:    fm[2] == "",
			Description: m.doc,
		})
	}
	return props
}

// Imports lists every import statement that has a from clause.
func Imports(content string) []docmodel.Import {
	imports := []docmodel.Import{}
	for _, m := range importRe.FindAllStringSubmatch(content, -1) {
		imp := docmodel.Import{Module: m[4], Named: []string{}}
		if m[1] != "" {
			imp.Default = m[1]
		} else {
			imp.Default = m[2]
		}
		for _, binding := range strings.Split(m[3], ",") {
			binding = strings.TrimSpace(binding)
			binding = strings.TrimSpace(strings.TrimPrefix(binding, "type "))
			if before, _, found := strings.Cut(binding, " as "); found {
				binding = strings.TrimSpace(before)
			}
			if binding != "" {
				imp.Named = append(imp.Named, binding)
			}
		}
		imports = append(imports, imp)
	}
	return imports
}

// Hooks returns the distinct use<Upper>... identifiers in first-seen order.
func Hooks(content string) []string {
	return dedupe(hookRe.FindAllString(content, -1))
}

// declarationComment finds the doc comment right above the declaration of name.
func declarationComment(content, name string) Match[string] {
	re := regexp.MustCompile(`(?:export\s+)?(?:default\s+)?(?:function|const|class)\s+` + regexp.QuoteMeta(name) + `\b`)
	loc := re.FindStringIndex(content)
	if loc == nil {
		return NoMatch[string]()
	}
	return leadingComment(content, loc[0])
}

// firstBody returns the brace-balanced body following the first pattern that
// matches. Each pattern must end at an opening brace.
func firstBody(content string, patterns []*regexp.Regexp) Match[string] {
	for _, re := range patterns {
		loc := re.FindStringIndex(content)
		if loc == nil {
			continue
		}
		if body, _, ok := braceBody(content, loc[1]-1); ok {
			return Matched(body)
		}
	}
	return NoMatch[string]()
}

// braceBody returns the text between the brace at open and its matching
// close brace, and the index just past the close brace.
func braceBody(content string, open int) (string, int, bool) {
	if open < 0 || open >= len(content) || content[open] != '{' {
		return "", 0, false
	}
	depth := 0
	var quote byte
	for i := open; i < len(content); i++ {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[open+1 : i], i + 1, true
			}
		}
	}
	return "", 0, false
}
