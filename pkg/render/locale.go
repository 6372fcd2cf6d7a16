package render

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = "fr"

// Locale is the label table and formatting rules of one output language.
// Renderers receive it explicitly; nothing reads a global table.
type Locale struct {
	Tag    language.Tag
	Labels map[docmodel.Label]string
	// Titles are the cover subtitles per document kind.
	Titles map[docmodel.DocumentKind]string
	Months [12]string
	// DayFirst selects "19 octobre 2026" over "October 19, 2026".
	DayFirst bool
	Guide    Guide
}

// ParseLocale resolves a language tag such as "fr", "fr-FR" or "en_US" to
// one of the built-in locales.
func ParseLocale(s string) (*Locale, error) {
	if s == "" {
		s = DefaultLanguage
	}
	tag, err := language.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", s, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "fr":
		return French(), nil
	case "en":
		return English(), nil
	default:
		return nil, fmt.Errorf("unsupported language %q (supported: fr, en)", s)
	}
}

// Code returns the two-letter language code, used for the lang attribute.
func (l *Locale) Code() string {
	base, _ := l.Tag.Base()
	return base.String()
}

// Label returns the text of key, or the key itself when the table lacks it.
func (l *Locale) Label(key docmodel.Label) string {
	if v, ok := l.Labels[key]; ok {
		return v
	}
	return string(key)
}

// Title returns the cover subtitle of kind.
func (l *Locale) Title(kind docmodel.DocumentKind) string {
	if v, ok := l.Titles[kind]; ok {
		return v
	}
	return string(kind)
}

// FormatDate renders t as a long date, without time of day.
func (l *Locale) FormatDate(t time.Time) string {
	month := l.Months[t.Month()-1]
	if l.DayFirst {
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
}

// KindBadge returns the badge text of a type kind ("Interface", "Enum"...).
func (l *Locale) KindBadge(k docmodel.TypeKind) string {
	return cases.Title(l.Tag).String(string(k))
}

// French is the default locale.
func French() *Locale {
	return &Locale{
		Tag: language.French,
		Labels: map[docmodel.Label]string{
			docmodel.LabelTableOfContents:    "Table des matières",
			docmodel.LabelGeneratedOn:        "Généré le",
			docmodel.LabelPrintNotice:        "Pour imprimer en PDF : Ctrl+P (Windows/Linux) ou Cmd+P (Mac)",
			docmodel.LabelComponents:         "Composants",
			docmodel.LabelUIComponents:       "Composants UI",
			docmodel.LabelSharedComponents:   "Composants partagés",
			docmodel.LabelLayoutComponents:   "Composants de mise en page",
			docmodel.LabelPageComponents:     "Pages",
			docmodel.LabelOtherComponents:    "Autres composants",
			docmodel.LabelProps:              "Propriétés",
			docmodel.LabelNoProps:            "Aucune propriété",
			docmodel.LabelHooks:              "Hooks utilisés",
			docmodel.LabelRequired:           "Requis",
			docmodel.LabelOptional:           "Optionnel",
			docmodel.LabelName:               "Nom",
			docmodel.LabelType:               "Type",
			docmodel.LabelStatus:             "Statut",
			docmodel.LabelDescription:        "Description",
			docmodel.LabelParameters:         "Paramètres",
			docmodel.LabelTypes:              "Types et interfaces",
			docmodel.LabelInterfaces:         "Interfaces",
			docmodel.LabelTypeAliases:        "Types",
			docmodel.LabelEnums:              "Énumérations",
			docmodel.LabelConstants:          "Constantes",
			docmodel.LabelProperties:         "Propriété",
			docmodel.LabelDefinition:         "Définition",
			docmodel.LabelArchitecture:       "Architecture",
			docmodel.LabelTechStack:          "Stack technique",
			docmodel.LabelDirectoryStructure: "Structure des dossiers",
			docmodel.LabelRouting:            "Routage",
			docmodel.LabelStateManagement:    "Gestion d'état",
			docmodel.LabelState:              "État",
			docmodel.LabelActions:            "Actions",
			docmodel.LabelPersistence:        "Persistance",
			docmodel.LabelDeveloperGuide:     "Guide du développeur",
			docmodel.LabelSetup:              "Installation",
			docmodel.LabelConventions:        "Conventions",
			docmodel.LabelOverview:           "Vue d'ensemble",
		},
		Titles: map[docmodel.DocumentKind]string{
			docmodel.DocComponents:   "Documentation des composants",
			docmodel.DocArchitecture: "Documentation d'architecture",
			docmodel.DocDeveloper:    "Guide du développeur",
			docmodel.DocTypes:        "Documentation des types",
			docmodel.DocAll:          "Documentation complète",
		},
		Months: [12]string{
			"janvier", "février", "mars", "avril", "mai", "juin",
			"juillet", "août", "septembre", "octobre", "novembre", "décembre",
		},
		DayFirst: true,
		Guide:    frenchGuide(),
	}
}

// English is selected with --lang en.
func English() *Locale {
	return &Locale{
		Tag: language.English,
		Labels: map[docmodel.Label]string{
			docmodel.LabelTableOfContents:    "Table of Contents",
			docmodel.LabelGeneratedOn:        "Generated on",
			docmodel.LabelPrintNotice:        "To print as PDF: Ctrl+P (Windows/Linux) or Cmd+P (Mac)",
			docmodel.LabelComponents:         "Components",
			docmodel.LabelUIComponents:       "UI Components",
			docmodel.LabelSharedComponents:   "Shared Components",
			docmodel.LabelLayoutComponents:   "Layout Components",
			docmodel.LabelPageComponents:     "Pages",
			docmodel.LabelOtherComponents:    "Other Components",
			docmodel.LabelProps:              "Properties",
			docmodel.LabelNoProps:            "No properties",
			docmodel.LabelHooks:              "Hooks used",
			docmodel.LabelRequired:           "Required",
			docmodel.LabelOptional:           "Optional",
			docmodel.LabelName:               "Name",
			docmodel.LabelType:               "Type",
			docmodel.LabelStatus:             "Status",
			docmodel.LabelDescription:        "Description",
			docmodel.LabelParameters:         "Parameters",
			docmodel.LabelTypes:              "Types and Interfaces",
			docmodel.LabelInterfaces:         "Interfaces",
			docmodel.LabelTypeAliases:        "Types",
			docmodel.LabelEnums:              "Enums",
			docmodel.LabelConstants:          "Constants",
			docmodel.LabelProperties:         "Property",
			docmodel.LabelDefinition:         "Definition",
			docmodel.LabelArchitecture:       "Architecture",
			docmodel.LabelTechStack:          "Tech Stack",
			docmodel.LabelDirectoryStructure: "Directory Structure",
			docmodel.LabelRouting:            "Routing",
			docmodel.LabelStateManagement:    "State Management",
			docmodel.LabelState:              "State",
			docmodel.LabelActions:            "Actions",
			docmodel.LabelPersistence:        "Persistence",
			docmodel.LabelDeveloperGuide:     "Developer Guide",
			docmodel.LabelSetup:              "Setup",
			docmodel.LabelConventions:        "Conventions",
			docmodel.LabelOverview:           "Overview",
		},
		Titles: map[docmodel.DocumentKind]string{
			docmodel.DocComponents:   "Component Documentation",
			docmodel.DocArchitecture: "Architecture Documentation",
			docmodel.DocDeveloper:    "Developer Guide",
			docmodel.DocTypes:        "Types Documentation",
			docmodel.DocAll:          "Complete Documentation",
		},
		Months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		Guide: englishGuide(),
	}
}
