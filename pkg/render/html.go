// Package render turns a docmodel.Document into a standalone HTML document
// and, through a headless browser, into a paginated PDF.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Parsed once; "t" is rebound to the locale of each render.
var baseTemplate = template.Must(template.New("document").
	Funcs(template.FuncMap{
		"t":     func(string) string { return "" },
		"lower": strings.ToLower,
	}).
	ParseFS(templateFS, "templates/*.tmpl"))

// HTMLOptions tunes the HTML output.
type HTMLOptions struct {
	// Highlight adds a syntax-highlighted definition to every type card.
	Highlight bool
	// PrintNotice shows the "print to PDF" hint, hidden when printing.
	PrintNotice bool
}

// HTMLRenderer emits a self-contained HTML document: inline styles, no
// external assets. All scanned text goes through html/template escaping.
type HTMLRenderer struct {
	locale *Locale
	opts   HTMLOptions
}

// NewHTMLRenderer creates a renderer for loc.
func NewHTMLRenderer(loc *Locale, opts HTMLOptions) *HTMLRenderer {
	return &HTMLRenderer{locale: loc, opts: opts}
}

// Render writes the cover, table of contents and body of doc to w.
func (r *HTMLRenderer) Render(w io.Writer, doc *docmodel.Document) error {
	if doc == nil {
		return fmt.Errorf("render html: nil document")
	}
	tmpl, err := baseTemplate.Clone()
	if err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	tmpl.Funcs(template.FuncMap{
		"t": func(key string) string { return r.locale.Label(docmodel.Label(key)) },
	})

	if err := tmpl.ExecuteTemplate(w, "document", r.view(doc)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// RenderBytes renders doc into memory.
func (r *HTMLRenderer) RenderBytes(doc *docmodel.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type documentView struct {
	Lang         string
	ProjectName  string
	Subtitle     string
	GeneratedOn  string
	PrintNotice  string
	Sections     []docmodel.Section
	Components   *componentsView
	Types        *typesView
	Architecture *architectureView
	Developer    *developerView
}

type componentsView struct {
	Title  string
	Intro  string
	Groups []componentGroup
}

type componentGroup struct {
	ID         string
	Title      string
	Intro      string
	Components []docmodel.Component
}

type typesView struct {
	Title  string
	Intro  string
	Groups []typeGroup
}

type typeGroup struct {
	ID    string
	Title string
	Intro string
	Types []typeCard
}

type typeCard struct {
	docmodel.TypeDecl
	Badge      string
	Definition template.HTML
}

type architectureView struct {
	Title          string
	Guide          Guide
	StackTitle     string
	StructureTitle string
	RoutingTitle   string
	StateTitle     string
	StoresSummary  string
	Stores         []docmodel.Store
}

type developerView struct {
	Title            string
	Guide            Guide
	SetupTitle       string
	ConventionsTitle string
	Install          string
}

func (r *HTMLRenderer) view(doc *docmodel.Document) documentView {
	loc := r.locale
	g := loc.Guide
	v := documentView{
		Lang:        loc.Code(),
		ProjectName: doc.Metadata.ProjectName,
		Subtitle:    loc.Title(doc.Metadata.Kind),
		GeneratedOn: loc.Label(docmodel.LabelGeneratedOn) + " " + loc.FormatDate(doc.Metadata.GeneratedAt),
		Sections:    doc.Sections,
	}
	if r.opts.PrintNotice {
		v.PrintNotice = loc.Label(docmodel.LabelPrintNotice)
	}

	title := func(id string) string {
		s, _ := doc.Section(id)
		return s.Title
	}

	for _, topic := range doc.Topics {
		switch topic {
		case docmodel.TopicComponents:
			cv := &componentsView{
				Title: title("components"),
				Intro: fmt.Sprintf(g.ComponentsIntro, doc.Counts.Components),
			}
			for _, cat := range docmodel.Categories {
				id := "components-" + string(cat)
				cv.Groups = append(cv.Groups, componentGroup{
					ID:         id,
					Title:      title(id),
					Intro:      g.CategoryIntros[cat],
					Components: doc.Components[cat],
				})
			}
			v.Components = cv
		case docmodel.TopicTypes:
			tv := &typesView{
				Title: title("types"),
				Intro: fmt.Sprintf(g.TypesIntro, doc.Counts.Types),
			}
			for _, kind := range docmodel.TypeKinds {
				id := "types-" + string(kind)
				group := typeGroup{ID: id, Title: title(id), Intro: g.KindIntros[kind]}
				for _, decl := range doc.Types[kind] {
					card := typeCard{TypeDecl: decl, Badge: loc.KindBadge(decl.Kind)}
					if r.opts.Highlight && decl.RawDefinition != "" {
						card.Definition = Highlight(decl.RawDefinition)
					}
					group.Types = append(group.Types, card)
				}
				tv.Groups = append(tv.Groups, group)
			}
			v.Types = tv
		case docmodel.TopicArchitecture:
			v.Architecture = &architectureView{
				Title:          title("architecture"),
				Guide:          g,
				StackTitle:     title("architecture-stack"),
				StructureTitle: title("architecture-structure"),
				RoutingTitle:   title("architecture-routing"),
				StateTitle:     title("architecture-state"),
				StoresSummary:  fmt.Sprintf(g.StoresSummary, doc.Counts.Stores, doc.Counts.PersistentStores),
				Stores:         doc.Stores,
			}
		case docmodel.TopicDeveloper:
			v.Developer = &developerView{
				Title:            title("developer"),
				Guide:            g,
				SetupTitle:       title("developer-setup"),
				ConventionsTitle: title("developer-conventions"),
				Install:          g.Install(doc.Metadata.ProjectName),
			}
		}
	}
	return v
}
