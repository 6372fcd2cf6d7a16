package docmodel

import (
	"encoding/json"
	"fmt"
	"io"
)

// ComponentGroups is the per-category split of a component report.
type ComponentGroups struct {
	UI     []Component `json:"ui"`
	Shared []Component `json:"shared"`
	Layout []Component `json:"layout"`
	Page   []Component `json:"page"`
	Other  []Component `json:"other"`
}

// ComponentReport is the JSON dump of a component scan.
type ComponentReport struct {
	Total      int             `json:"total"`
	Grouped    ComponentGroups `json:"grouped"`
	Components []Component     `json:"components"`
}

// NewComponentReport groups components by category.
func NewComponentReport(components []Component) *ComponentReport {
	g := GroupComponents(components)
	return &ComponentReport{
		Total: len(components),
		Grouped: ComponentGroups{
			UI:     g[CategoryUI],
			Shared: g[CategoryShared],
			Layout: g[CategoryLayout],
			Page:   g[CategoryPage],
			Other:  g[CategoryOther],
		},
		Components: nonNil(components),
	}
}

// StoreGroups splits stores by whether they persist.
type StoreGroups struct {
	Persistent []Store `json:"persistent"`
	Memory     []Store `json:"memory"`
}

// StoreReport is the JSON dump of a store scan.
type StoreReport struct {
	Total           int         `json:"total"`
	Grouped         StoreGroups `json:"grouped"`
	Stores          []Store     `json:"stores"`
	WithPersistence int         `json:"withPersistence"`
}

// NewStoreReport counts persistent stores.
func NewStoreReport(stores []Store) *StoreReport {
	r := &StoreReport{
		Total:   len(stores),
		Grouped: StoreGroups{Persistent: []Store{}, Memory: []Store{}},
		Stores:  nonNil(stores),
	}
	for _, s := range stores {
		if s.Persistence != nil {
			r.Grouped.Persistent = append(r.Grouped.Persistent, s)
		} else {
			r.Grouped.Memory = append(r.Grouped.Memory, s)
		}
	}
	r.WithPersistence = len(r.Grouped.Persistent)
	return r
}

// TypeGroups is the per-kind split of a type report.
type TypeGroups struct {
	Interfaces []TypeDecl `json:"interfaces"`
	Types      []TypeDecl `json:"types"`
	Enums      []TypeDecl `json:"enums"`
	Constants  []TypeDecl `json:"constants"`
}

// TypeReport is the JSON dump of a type scan.
type TypeReport struct {
	Total   int        `json:"total"`
	Grouped TypeGroups `json:"grouped"`
	Types   []TypeDecl `json:"types"`
}

// NewTypeReport groups declarations by kind.
func NewTypeReport(types []TypeDecl) *TypeReport {
	g := GroupTypes(types)
	return &TypeReport{
		Total: len(types),
		Grouped: TypeGroups{
			Interfaces: g[KindInterface],
			Types:      g[KindAlias],
			Enums:      g[KindEnum],
			Constants:  g[KindConst],
		},
		Types: nonNil(types),
	}
}

// WriteJSON writes v with two-space indentation. HTML characters are left
// as-is so type expressions like Record<string, T> stay readable.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
