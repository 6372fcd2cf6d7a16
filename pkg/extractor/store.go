package extractor

import (
	"regexp"
	"strings"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

var storeNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`export\s+const\s+use(\w+)Store\b`),
	regexp.MustCompile(`const\s+use(\w+)Store\b`),
	regexp.MustCompile(`create<(\w+)State>`),
}

var stateShapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`interface\s+\w*State(?:<[^>{]*>)?(?:\s+extends\s+[^{]+)?\s*\{`),
	regexp.MustCompile(`type\s+\w*State\s*=\s*\{`),
}

// The first pattern is the classic persist(fn, { name }) form; the second
// finds the options object after a multi-line state initializer.
var persistNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`persist\s*\([^,]+,\s*\{\s*name:\s*['"]([^'"]+)['"]`),
	regexp.MustCompile(`\)\s*,\s*\{[^{}]*?\bname:\s*['"]([^'"]+)['"]`),
}

var storagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`storage:\s*createJSONStorage\s*\(\s*\(\)\s*=>\s*(\w+)`),
	regexp.MustCompile(`storage:\s*(\w+)`),
}

var (
	persistCallRe  = regexp.MustCompile(`\bpersist\s*\(`)
	arrowActionRe  = regexp.MustCompile(`(\w+)\s*:\s*(?:async\s*)?\(([^)]*)\)\s*=>`)
	storeFileExtRe = regexp.MustCompile(`(Store)?\.ts$`)
)

// Accessors injected by the store library; never documented.
var storeAccessors = map[string]bool{"set": true, "get": true}

// DefaultStorage is reported when a persisted store names no storage.
const DefaultStorage = "localStorage"

// IsStore reports whether f should be treated as a state store: its base
// name mentions "store" (any case), or its content references both a create
// call and the zustand module.
func IsStore(f docmodel.SourceFile) bool {
	if strings.Contains(strings.ToLower(f.BaseName()), "store") {
		return true
	}
	return strings.Contains(f.Content, "create") && strings.Contains(f.Content, "zustand")
}

// Store extracts the store record of f, or NoMatch when f is not a store.
func Store(f docmodel.SourceFile) Match[docmodel.Store] {
	if !IsStore(f) {
		return NoMatch[docmodel.Store]()
	}

	name := firstCapture(f.Content, storeNamePatterns).Or(storeFileExtRe.ReplaceAllString(f.BaseName(), ""))
	state, actions := StateAndActions(f.Content)

	desc := declarationComment(f.Content, "use"+name+"Store")
	if !desc.OK {
		desc = fileComment(f.Content)
	}

	var persistence *docmodel.Persistence
	if p := Persistence(f.Content); p.OK {
		persistence = &p.Value
	}

	return Matched(docmodel.Store{
		Name:         name,
		FilePath:     f.Path,
		RelativePath: f.RelativePath,
		State:        state,
		Actions:      actions,
		Persistence:  persistence,
		Description:  desc.Or("State store for " + name),
	})
}

// StateAndActions splits the members of the first *State shape into state
// fields and actions. A member is an action when its type starts with a
// parameter list or contains an arrow. Without a state shape, actions are
// collected from name: (params) => assignments anywhere in the file.
func StateAndActions(content string) ([]docmodel.StateField, []docmodel.Action) {
	state := []docmodel.StateField{}
	actions := []docmodel.Action{}

	body := firstBody(content, stateShapePatterns)
	if !body.OK {
		seen := map[string]bool{}
		for _, m := range arrowActionRe.FindAllStringSubmatch(content, -1) {
			if storeAccessors[m[1]] || seen[m[1]] {
				continue
			}
			seen[m[1]] = true
			actions = append(actions, docmodel.Action{Name: m[1], Parameters: strings.TrimSpace(m[2])})
		}
		return state, actions
	}

	for _, m := range splitMembers(body.Value) {
		fm := propRe.FindStringSubmatch(m.text)
		if fm == nil || storeAccessors[fm[1]] {
			continue
		}
		typ := cleanType(fm[3])
		if isFunctionType(typ) {
			actions = append(actions, docmodel.Action{Name: fm[1], Parameters: parameterList(typ)})
		} else {
			state = append(state, docmodel.StateField{Name: fm[1], Type: typ})
		}
	}
	return state, actions
}

// Persistence finds the persist middleware options in content.
func Persistence(content string) Match[docmodel.Persistence] {
	loc := persistCallRe.FindStringIndex(content)
	if loc == nil {
		return NoMatch[docmodel.Persistence]()
	}
	rest := content[loc[0]:]
	name := firstCapture(rest, persistNamePatterns)
	if !name.OK {
		return NoMatch[docmodel.Persistence]()
	}
	return Matched(docmodel.Persistence{
		Name:    name.Value,
		Storage: firstCapture(rest, storagePatterns).Or(DefaultStorage),
	})
}

func isFunctionType(typ string) bool {
	return strings.HasPrefix(typ, "(") || strings.Contains(typ, "=>")
}

// parameterList returns the contents of the leading parenthesised list of
// typ, or "" when typ does not start with one.
func parameterList(typ string) string {
	if !strings.HasPrefix(typ, "(") {
		return ""
	}
	depth := 0
	for i := 0; i < len(typ); i++ {
		switch typ[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return strings.TrimSpace(typ[1:i])
			}
		}
	}
	return ""
}
