package docmodel

import (
	"fmt"
	"time"
)

// Section is one table-of-contents entry. Level 1 is a topic root, level 2 a
// subsection.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// Metadata describes one generation run.
type Metadata struct {
	ProjectName string       `json:"projectName"`
	Language    string       `json:"language"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Kind        DocumentKind `json:"kind"`
}

// Counts are the aggregate numbers shown in section titles and reports.
type Counts struct {
	Components       int
	ByCategory       map[Category]int
	Types            int
	ByKind           map[TypeKind]int
	Stores           int
	PersistentStores int
}

// Document is the aggregate handed to a renderer. It is not modified after
// Build returns.
type Document struct {
	Metadata   Metadata
	Topics     []Topic
	Sections   []Section
	Components map[Category][]Component
	Types      map[TypeKind][]TypeDecl
	Stores     []Store
	Counts     Counts
}

// Inputs are the extractor outputs of one run.
type Inputs struct {
	Components []Component
	Types      []TypeDecl
	Stores     []Store
}

// Request carries everything Build needs besides the records.
type Request struct {
	Kind        DocumentKind
	ProjectName string
	Language    string
	GeneratedAt time.Time
	Labels      Labeler
}

// Build groups the records and assembles the section list for req.Kind.
// Records are trusted verbatim.
func Build(req Request, in Inputs) (*Document, error) {
	topics := req.Kind.Topics()
	if topics == nil {
		return nil, &UnknownKindError{Kind: string(req.Kind)}
	}
	if req.Labels == nil {
		return nil, fmt.Errorf("build document: labels are required")
	}

	doc := &Document{
		Metadata: Metadata{
			ProjectName: req.ProjectName,
			Language:    req.Language,
			GeneratedAt: req.GeneratedAt,
			Kind:        req.Kind,
		},
		Topics:     topics,
		Sections:   []Section{},
		Components: GroupComponents(in.Components),
		Types:      GroupTypes(in.Types),
		Stores:     append([]Store{}, in.Stores...),
	}
	doc.Counts = countAll(doc)

	for _, t := range topics {
		doc.Sections = append(doc.Sections, topicSections(t, doc, req.Labels)...)
	}
	return doc, nil
}

// GroupComponents buckets components by category, keeping input order within
// each bucket. Every category has a non-nil entry.
func GroupComponents(components []Component) map[Category][]Component {
	grouped := make(map[Category][]Component, len(Categories))
	for _, c := range Categories {
		grouped[c] = []Component{}
	}
	for _, comp := range components {
		cat := comp.Category
		if _, ok := grouped[cat]; !ok {
			cat = CategoryOther
		}
		grouped[cat] = append(grouped[cat], comp)
	}
	return grouped
}

// GroupTypes buckets type declarations by kind.
func GroupTypes(types []TypeDecl) map[TypeKind][]TypeDecl {
	grouped := make(map[TypeKind][]TypeDecl, len(TypeKinds))
	for _, k := range TypeKinds {
		grouped[k] = []TypeDecl{}
	}
	for _, t := range types {
		if _, ok := grouped[t.Kind]; !ok {
			continue
		}
		grouped[t.Kind] = append(grouped[t.Kind], t)
	}
	return grouped
}

// PersistentCount returns how many stores declare persistence.
func PersistentCount(stores []Store) int {
	n := 0
	for _, s := range stores {
		if s.Persistence != nil {
			n++
		}
	}
	return n
}

func countAll(doc *Document) Counts {
	c := Counts{
		ByCategory:       make(map[Category]int, len(Categories)),
		ByKind:           make(map[TypeKind]int, len(TypeKinds)),
		Stores:           len(doc.Stores),
		PersistentStores: PersistentCount(doc.Stores),
	}
	for cat, list := range doc.Components {
		c.ByCategory[cat] = len(list)
		c.Components += len(list)
	}
	for kind, list := range doc.Types {
		c.ByKind[kind] = len(list)
		c.Types += len(list)
	}
	return c
}

func topicSections(t Topic, doc *Document, labels Labeler) []Section {
	var sections []Section
	switch t {
	case TopicComponents:
		sections = append(sections, Section{ID: "components", Title: labels.Label(LabelComponents), Level: 1})
		for _, cat := range Categories {
			sections = append(sections, Section{
				ID:    "components-" + string(cat),
				Title: counted(labels.Label(CategoryLabel(cat)), doc.Counts.ByCategory[cat]),
				Level: 2,
			})
		}
	case TopicTypes:
		sections = append(sections, Section{ID: "types", Title: labels.Label(LabelTypes), Level: 1})
		for _, k := range TypeKinds {
			sections = append(sections, Section{
				ID:    "types-" + string(k),
				Title: counted(labels.Label(KindLabel(k)), doc.Counts.ByKind[k]),
				Level: 2,
			})
		}
	case TopicArchitecture:
		sections = append(sections,
			Section{ID: "architecture", Title: labels.Label(LabelArchitecture), Level: 1},
			Section{ID: "architecture-stack", Title: labels.Label(LabelTechStack), Level: 2},
			Section{ID: "architecture-structure", Title: labels.Label(LabelDirectoryStructure), Level: 2},
			Section{ID: "architecture-routing", Title: labels.Label(LabelRouting), Level: 2},
			Section{ID: "architecture-state", Title: counted(labels.Label(LabelStateManagement), doc.Counts.Stores), Level: 2},
		)
	case TopicDeveloper:
		sections = append(sections,
			Section{ID: "developer", Title: labels.Label(LabelDeveloperGuide), Level: 1},
			Section{ID: "developer-setup", Title: labels.Label(LabelSetup), Level: 2},
			Section{ID: "developer-conventions", Title: labels.Label(LabelConventions), Level: 2},
		)
	}
	return sections
}

func counted(title string, n int) string {
	return fmt.Sprintf("%s (%d)", title, n)
}

// Section returns the section with the given id.
func (d *Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
