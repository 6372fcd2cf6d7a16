// Package docmodel defines the metadata records produced by the extractors,
// the closed enumerations shared by every stage, and the DocumentModel that
// the renderers consume.
package docmodel

import (
	"path/filepath"
	"strings"
)

// SourceFile is one file handed from the scanner to an extractor.
type SourceFile struct {
	Path         string // absolute path
	RelativePath string // slash-separated, relative to the scan root
	Content      string
}

// BaseName returns the file name without directories.
func (f SourceFile) BaseName() string {
	return filepath.Base(f.Path)
}

// Category is the directory-derived grouping of a component.
type Category string

const (
	CategoryUI     Category = "ui"
	CategoryShared Category = "shared"
	CategoryLayout Category = "layout"
	CategoryPage   Category = "page"
	CategoryOther  Category = "other"
)

// Categories lists every category in document order.
var Categories = []Category{CategoryUI, CategoryShared, CategoryLayout, CategoryPage, CategoryOther}

// CategoryForPath derives a category from directory names in path only.
func CategoryForPath(path string) Category {
	p := "/" + filepath.ToSlash(path)
	switch {
	case strings.Contains(p, "/ui/"):
		return CategoryUI
	case strings.Contains(p, "/shared/"):
		return CategoryShared
	case strings.Contains(p, "/layout/"), strings.Contains(p, "/layouts/"):
		return CategoryLayout
	case strings.Contains(p, "/pages/"):
		return CategoryPage
	default:
		return CategoryOther
	}
}

// TypeKind is the declaration kind of a TypeDecl.
type TypeKind string

const (
	KindInterface TypeKind = "interface"
	KindAlias     TypeKind = "type"
	KindEnum      TypeKind = "enum"
	KindConst     TypeKind = "const"
)

// TypeKinds lists every type kind in document order.
var TypeKinds = []TypeKind{KindInterface, KindAlias, KindEnum, KindConst}

// Prop is one field of a component's props declaration.
type Prop struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// Import is one import statement of a component file.
type Import struct {
	Module  string   `json:"module"`
	Named   []string `json:"named"`
	Default string   `json:"default,omitempty"`
}

// Component describes one UI component found in a file.
type Component struct {
	Name         string   `json:"name"`
	FilePath     string   `json:"filePath"`
	RelativePath string   `json:"relativePath"`
	Props        []Prop   `json:"props"`
	Imports      []Import `json:"imports"`
	Hooks        []string `json:"hooks"`
	Description  string   `json:"description"`
	Category     Category `json:"category"`
}

// StateField is a non-function member of a store's state shape.
type StateField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Action is a function member of a store.
type Action struct {
	Name       string `json:"name"`
	Parameters string `json:"parameters"`
}

// Persistence is present when a store is wrapped with the persist middleware.
type Persistence struct {
	Name    string `json:"name"`
	Storage string `json:"storage"`
}

// Store describes one state-container module.
type Store struct {
	Name         string       `json:"name"`
	FilePath     string       `json:"filePath"`
	RelativePath string       `json:"relativePath"`
	State        []StateField `json:"state"`
	Actions      []Action     `json:"actions"`
	Persistence  *Persistence `json:"persistence"`
	Description  string       `json:"description"`
}

// Property is one member of a type declaration. Union aliases carry one
// pseudo-property per arm named value_1, value_2, ...
type Property struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Optional    bool   `json:"optional"`
	Description string `json:"description,omitempty"`
}

// TypeDecl describes one type-level declaration.
type TypeDecl struct {
	Name          string     `json:"name"`
	Kind          TypeKind   `json:"kind"`
	Properties    []Property `json:"properties"`
	FilePath      string     `json:"filePath"`
	RelativePath  string     `json:"relativePath"`
	Exported      bool       `json:"exported"`
	Description   string     `json:"description,omitempty"`
	RawDefinition string     `json:"rawDefinition"`
}
