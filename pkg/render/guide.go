package render

import (
	"fmt"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

// Guide is the authored prose of a locale. None of it is derived from the
// scanned sources.
type Guide struct {
	ComponentsIntro string // %d: number of components
	CategoryIntros  map[docmodel.Category]string
	TypesIntro      string // %d: number of declarations
	KindIntros      map[docmodel.TypeKind]string

	ArchitectureIntro string
	StackHeaders      [2]string
	TechStack         [][2]string
	DirectoryTree     string
	RoutingIntro      string
	StoresSummary     string // %d stores, %d persisted

	DeveloperIntro     string
	PrerequisitesTitle string
	Prerequisites      []string
	InstallTitle       string
	InstallScript      string // %s: project name
	ScriptsTitle       string
	ScriptHeaders      [2]string
	Scripts            [][2]string
	NamingTitle        string
	NamingHeaders      [3]string
	Naming             [][3]string
	PracticesTitle     string
	Practices          []string
}

// Install returns the installation snippet for project.
func (g Guide) Install(project string) string {
	return fmt.Sprintf(g.InstallScript, project)
}

var techStack = [][2]string{
	{"Framework", "React 18 + TypeScript"},
	{"Build", "Vite"},
	{"Styling", "TailwindCSS"},
	{"UI", "Shadcn/ui (Radix UI)"},
	{"State", "Zustand"},
	{"Routing", "React Router v6"},
	{"Icons", "Lucide React"},
}

func frenchGuide() Guide {
	return Guide{
		ComponentsIntro: "Documentation des %d composants React du projet.",
		CategoryIntros: map[docmodel.Category]string{
			docmodel.CategoryUI:     "Composants de base construits avec Shadcn/ui et Radix UI.",
			docmodel.CategoryShared: "Composants métier réutilisables à travers l'application.",
			docmodel.CategoryLayout: "Composants de mise en page et de navigation.",
			docmodel.CategoryPage:   "Composants de pages correspondant aux routes de l'application.",
			docmodel.CategoryOther:  "Composants hors des dossiers conventionnels.",
		},
		TypesIntro: "Référence des %d définitions TypeScript.",
		KindIntros: map[docmodel.TypeKind]string{
			docmodel.KindInterface: "Interfaces définissant les structures de données.",
			docmodel.KindAlias:     "Alias de types et types union.",
			docmodel.KindEnum:      "Énumérations TypeScript.",
			docmodel.KindConst:     "Constantes et objets de configuration.",
		},

		ArchitectureIntro: "Vue d'ensemble de l'architecture technique du projet.",
		StackHeaders:      [2]string{"Catégorie", "Technologie"},
		TechStack:         techStack,
		DirectoryTree: `src/
├── components/
│   ├── ui/           # Composants Shadcn/ui
│   ├── shared/       # Composants métier
│   └── layout/       # Composants de mise en page
├── pages/            # Pages de l'application
├── layouts/          # Layouts partagés
├── store/            # Stores Zustand
├── hooks/            # Hooks personnalisés
├── types/            # Types TypeScript
├── data/             # Données mockées
├── lib/              # Utilitaires
└── App.tsx           # Point d'entrée`,
		RoutingIntro:  "Structure des routes avec React Router v6.",
		StoresSummary: "%d stores Zustand, dont %d avec persistance.",

		DeveloperIntro:     "Guide pour les développeurs travaillant sur le projet.",
		PrerequisitesTitle: "Prérequis",
		Prerequisites:      []string{"Node.js 18+", "npm ou yarn"},
		InstallTitle:       "Installation",
		InstallScript: `# Cloner le dépôt
git clone [repository-url]
cd %s

# Installer les dépendances
npm install

# Lancer en développement
npm run dev`,
		ScriptsTitle:  "Scripts disponibles",
		ScriptHeaders: [2]string{"Commande", "Description"},
		Scripts: [][2]string{
			{"npm run dev", "Lance le serveur de développement"},
			{"npm run build", "Build pour la production"},
			{"npm run lint", "Vérifie le code avec ESLint"},
			{"npm run preview", "Prévisualise le build de production"},
		},
		NamingTitle:   "Nommage des fichiers",
		NamingHeaders: [3]string{"Type", "Convention", "Exemple"},
		Naming: [][3]string{
			{"Composant", "PascalCase", "ParticipantCard.tsx"},
			{"Hook", "camelCase avec 'use'", "useAuth.ts"},
			{"Store", "camelCase avec 'Store'", "authStore.ts"},
			{"Type/Interface", "PascalCase", "Participant.ts"},
			{"Utilitaire", "camelCase", "formatDate.ts"},
		},
		PracticesTitle: "Bonnes pratiques",
		Practices: []string{
			"Un composant = un fichier",
			"Textes utilisateur en français",
			"TypeScript strict (pas de 'any')",
			"Composants fonctionnels avec hooks",
		},
	}
}

func englishGuide() Guide {
	return Guide{
		ComponentsIntro: "Documentation of the project's %d React components.",
		CategoryIntros: map[docmodel.Category]string{
			docmodel.CategoryUI:     "Base components built with Shadcn/ui and Radix UI.",
			docmodel.CategoryShared: "Reusable business components shared across the application.",
			docmodel.CategoryLayout: "Layout and navigation components.",
			docmodel.CategoryPage:   "Page components mapped to the application routes.",
			docmodel.CategoryOther:  "Components outside the conventional folders.",
		},
		TypesIntro: "Reference of the %d TypeScript declarations.",
		KindIntros: map[docmodel.TypeKind]string{
			docmodel.KindInterface: "Interfaces describing the data structures.",
			docmodel.KindAlias:     "Type aliases and union types.",
			docmodel.KindEnum:      "TypeScript enums.",
			docmodel.KindConst:     "Constants and configuration objects.",
		},

		ArchitectureIntro: "Overview of the project's technical architecture.",
		StackHeaders:      [2]string{"Category", "Technology"},
		TechStack:         techStack,
		DirectoryTree: `src/
├── components/
│   ├── ui/           # Shadcn/ui components
│   ├── shared/       # Business components
│   └── layout/       # Layout components
├── pages/            # Application pages
├── layouts/          # Shared layouts
├── store/            # Zustand stores
├── hooks/            # Custom hooks
├── types/            # TypeScript types
├── data/             # Mock data
├── lib/              # Utilities
└── App.tsx           # Entry point`,
		RoutingIntro:  "Route structure with React Router v6.",
		StoresSummary: "%d Zustand stores, %d of them persisted.",

		DeveloperIntro:     "Guide for developers working on the project.",
		PrerequisitesTitle: "Prerequisites",
		Prerequisites:      []string{"Node.js 18+", "npm or yarn"},
		InstallTitle:       "Installation",
		InstallScript: `# Clone the repository
git clone [repository-url]
cd %s

# Install dependencies
npm install

# Start the dev server
npm run dev`,
		ScriptsTitle:  "Available scripts",
		ScriptHeaders: [2]string{"Command", "Description"},
		Scripts: [][2]string{
			{"npm run dev", "Starts the development server"},
			{"npm run build", "Production build"},
			{"npm run lint", "Checks the code with ESLint"},
			{"npm run preview", "Previews the production build"},
		},
		NamingTitle:   "File naming",
		NamingHeaders: [3]string{"Kind", "Convention", "Example"},
		Naming: [][3]string{
			{"Component", "PascalCase", "ParticipantCard.tsx"},
			{"Hook", "camelCase with 'use'", "useAuth.ts"},
			{"Store", "camelCase with 'Store'", "authStore.ts"},
			{"Type/Interface", "PascalCase", "Participant.ts"},
			{"Utility", "camelCase", "formatDate.ts"},
		},
		PracticesTitle: "Best practices",
		Practices: []string{
			"One component per file",
			"User-facing text in French",
			"Strict TypeScript (no 'any')",
			"Function components with hooks",
		},
	}
}
