package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

var fixedTime = time.Date(2026, time.October, 19, 14, 30, 0, 0, time.UTC)

func buildDoc(t *testing.T, loc *Locale, kind docmodel.DocumentKind, in docmodel.Inputs) *docmodel.Document {
	t.Helper()
	doc, err := docmodel.Build(docmodel.Request{
		Kind:        kind,
		ProjectName: "BusinessConnect",
		Language:    loc.Code(),
		GeneratedAt: fixedTime,
		Labels:      loc,
	}, in)
	require.NoError(t, err)
	return doc
}

func renderHTML(t *testing.T, loc *Locale, opts HTMLOptions, doc *docmodel.Document) (string, *goquery.Document) {
	t.Helper()
	out, err := NewHTMLRenderer(loc, opts).RenderBytes(doc)
	require.NoError(t, err)
	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	return string(out), parsed
}

func sampleInputs() docmodel.Inputs {
	return docmodel.Inputs{
		Components: []docmodel.Component{
			{
				Name:         "Button",
				RelativePath: "components/ui/Button.tsx",
				Category:     docmodel.CategoryUI,
				Description:  "Clickable action",
				Props: []docmodel.Prop{
					{Name: "label", Type: "string", Required: true, Description: "Visible text"},
					{Name: "variant", Type: "'primary' | 'ghost'"},
				},
			},
			{
				Name:         "Header",
				RelativePath: "components/layout/Header.tsx",
				Category:     docmodel.CategoryLayout,
				Description:  "Header component",
				Hooks:        []string{"useAuthStore", "useNavigate"},
			},
		},
		Types: []docmodel.TypeDecl{
			{
				Name:          "Status",
				Kind:          docmodel.KindAlias,
				RelativePath:  "types/index.ts",
				Exported:      true,
				RawDefinition: "export type Status = 'active' | 'inactive'",
				Properties: []docmodel.Property{
					{Name: "value_1", Type: "'active'"},
					{Name: "value_2", Type: "'inactive'"},
				},
			},
			{Name: "Role", Kind: docmodel.KindEnum, RawDefinition: "enum Role { Admin }"},
		},
		Stores: []docmodel.Store{
			{
				Name:         "Auth",
				RelativePath: "store/authStore.ts",
				Description:  "State store for Auth",
				State:        []docmodel.StateField{{Name: "user", Type: "User | null"}},
				Actions:      []docmodel.Action{{Name: "login", Parameters: "email: string"}},
				Persistence:  &docmodel.Persistence{Name: "auth", Storage: "localStorage"},
			},
		},
	}
}

func TestRender_CoverAndTOC(t *testing.T) {
	loc := French()
	doc := buildDoc(t, loc, docmodel.DocAll, sampleInputs())
	_, page := renderHTML(t, loc, HTMLOptions{}, doc)

	assert.Equal(t, "fr", page.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "BusinessConnect", page.Find(".cover-page h1").Text())
	assert.Equal(t, "Documentation complète", page.Find(".cover-page .subtitle").Text())
	assert.Equal(t, "Généré le 19 octobre 2026", page.Find(".cover-page .meta").Text())

	items := page.Find(".toc .toc-item")
	require.Equal(t, len(doc.Sections), items.Length())
	items.Each(func(i int, s *goquery.Selection) {
		section := doc.Sections[i]
		assert.True(t, s.HasClass(fmt.Sprintf("level-%d", section.Level)))
		assert.Equal(t, "#"+section.ID, s.Find("a").AttrOr("href", ""))
		assert.Equal(t, section.Title, s.Find("a").Text())
		// Every TOC entry points at an element in the body.
		assert.Equal(t, 1, page.Find("#"+section.ID).Length(), "missing anchor %s", section.ID)
	})
}

func TestRender_ComponentCards(t *testing.T) {
	loc := English()
	doc := buildDoc(t, loc, docmodel.DocComponents, sampleInputs())
	_, page := renderHTML(t, loc, HTMLOptions{}, doc)

	button := page.Find("#components-ui #component-button")
	require.Equal(t, 1, button.Length())
	assert.Equal(t, "components/ui/Button.tsx", button.Find(".file-path").Text())

	rows := button.Find("table.props tbody tr")
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "Required", strings.TrimSpace(rows.Eq(0).Find(".badge").Text()))
	assert.True(t, rows.Eq(0).Find(".badge").HasClass("badge-required"))
	assert.Equal(t, "Optional", strings.TrimSpace(rows.Eq(1).Find(".badge").Text()))
	assert.Equal(t, "-", rows.Eq(1).Find("td").Last().Text())

	header := page.Find("#components-layout #component-header")
	assert.Equal(t, "No properties", header.Find(".no-props").Text())
	assert.Equal(t, 2, header.Find("ul.hooks li").Length())

	// Only the requested topic is rendered.
	assert.Zero(t, page.Find("#types").Length())
	assert.Zero(t, page.Find("#architecture").Length())
}

func TestRender_TypeCards(t *testing.T) {
	loc := English()
	doc := buildDoc(t, loc, docmodel.DocTypes, sampleInputs())

	_, page := renderHTML(t, loc, HTMLOptions{}, doc)
	status := page.Find("#types-type #type-status")
	require.Equal(t, 1, status.Length())
	assert.Equal(t, "Type", status.Find(".badge-type").Text())
	assert.Equal(t, 2, status.Find("table.properties tbody tr").Length())
	assert.Zero(t, status.Find("pre.definition").Length(), "definitions are only shown when highlighting")

	assert.Equal(t, "Enum", page.Find("#types-enum #type-role .badge-type").Text())

	_, printed := renderHTML(t, loc, HTMLOptions{Highlight: true}, doc)
	def := printed.Find("#type-status pre.definition")
	require.Equal(t, 1, def.Length())
	assert.Equal(t, "export type Status = 'active' | 'inactive'", def.Text())
	assert.Equal(t, 2, def.Find("span.keyword").Length())
}

func TestRender_StoresInArchitecture(t *testing.T) {
	loc := French()
	doc := buildDoc(t, loc, docmodel.DocArchitecture, sampleInputs())
	_, page := renderHTML(t, loc, HTMLOptions{}, doc)

	store := page.Find("#architecture-state #store-auth")
	require.Equal(t, 1, store.Length())
	assert.Equal(t, "useAuthStore", store.Find("h3").Text())
	assert.Contains(t, store.Find(".badge-persist").Text(), "Persistance")
	assert.Equal(t, "auth", store.Find(".badge-persist").AttrOr("title", ""))
	assert.Equal(t, 1, store.Find("table.state tbody tr").Length())
	assert.Equal(t, "email: string", store.Find("table.actions tbody td code").Last().Text())
	assert.Equal(t, "1 stores Zustand, dont 1 avec persistance.", page.Find("#architecture-state .intro").Text())

	assert.Equal(t, 7, page.Find("#architecture-stack tbody tr").Length())
}

func TestRender_DeveloperGuide(t *testing.T) {
	loc := English()
	doc := buildDoc(t, loc, docmodel.DocDeveloper, docmodel.Inputs{})
	_, page := renderHTML(t, loc, HTMLOptions{}, doc)

	assert.Contains(t, page.Find("#developer-setup pre code").Text(), "cd BusinessConnect")
	assert.Equal(t, 5, page.Find("#developer-conventions table tbody tr").Length())
	assert.Equal(t, "Developer Guide", page.Find(".cover-page .subtitle").Text())
}

func TestRender_EscapesScannedText(t *testing.T) {
	hostile := []string{
		`<script>alert("x")</script>`,
		`Tom & Jerry <b>bold</b>`,
		`"quoted" & 'single'`,
		`a<b && c>d`,
	}

	for _, text := range hostile {
		in := docmodel.Inputs{Components: []docmodel.Component{{
			Name:         "Card",
			RelativePath: text,
			Category:     docmodel.CategoryShared,
			Description:  text,
			Props:        []docmodel.Prop{{Name: "p", Type: text, Required: true, Description: text}},
			Hooks:        []string{text},
		}}}
		loc := English()
		raw, page := renderHTML(t, loc, HTMLOptions{}, buildDoc(t, loc, docmodel.DocComponents, in))

		assert.NotContains(t, raw, text, "raw text must never reach the markup")
		card := page.Find("#component-card")
		assert.Equal(t, text, card.Find(".description").Text())
		assert.Equal(t, text, card.Find(".file-path").Text())
		assert.Equal(t, text, card.Find("table.props tbody td code").Eq(1).Text())
		assert.Equal(t, text, card.Find("ul.hooks li code").Text())
		assert.Zero(t, page.Find("script").Length())
	}
}

func TestRender_EscapesProjectName(t *testing.T) {
	loc := French()
	doc, err := docmodel.Build(docmodel.Request{
		Kind:        docmodel.DocDeveloper,
		ProjectName: `Acme <Labs> & "Co"`,
		GeneratedAt: fixedTime,
		Labels:      loc,
	}, docmodel.Inputs{})
	require.NoError(t, err)

	raw, page := renderHTML(t, loc, HTMLOptions{}, doc)
	assert.NotContains(t, raw, "<Labs>")
	assert.Equal(t, `Acme <Labs> & "Co"`, page.Find(".cover-page h1").Text())
	assert.Equal(t, `Acme <Labs> & "Co" - Documentation`, page.Find("title").Text())
}

func TestRender_EmptyProjectShell(t *testing.T) {
	loc := French()
	doc := buildDoc(t, loc, docmodel.DocAll, docmodel.Inputs{})
	raw, page := renderHTML(t, loc, HTMLOptions{PrintNotice: true}, doc)

	assert.True(t, strings.HasPrefix(raw, "<!DOCTYPE html>"))
	assert.Equal(t, 1, page.Find(".cover-page").Length())
	assert.Equal(t, 1, page.Find(".toc").Length())
	assert.Equal(t, 1, page.Find(".print-notice").Length())
	assert.Zero(t, page.Find(".component-card").Length())
	assert.Equal(t, "Composants UI (0)", page.Find(`.toc a[href="#components-ui"]`).Text())
	assert.NotContains(t, raw, "<script")
	assert.NotContains(t, raw, "<link")
}

func TestRender_NilDocument(t *testing.T) {
	_, err := NewHTMLRenderer(French(), HTMLOptions{}).RenderBytes(nil)
	assert.Error(t, err)
}
