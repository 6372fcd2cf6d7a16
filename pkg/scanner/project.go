package scanner

import (
	"os"
	"path/filepath"

	"github.com/gnana997/techdocs/pkg/docmodel"
)

// ProjectLayout locates the parts of a project scanned for a document.
type ProjectLayout struct {
	Root string
	// TypesDir and StoresDir are relative to Root. When the directory does
	// not exist the whole root is scanned instead.
	TypesDir  string
	StoresDir string
}

// DefaultLayout uses <root>/types and <root>/store.
func DefaultLayout(root string) ProjectLayout {
	return ProjectLayout{Root: root, TypesDir: "types", StoresDir: "store"}
}

func (l ProjectLayout) dirOrRoot(sub string) string {
	if sub == "" {
		return l.Root
	}
	dir := filepath.Join(l.Root, sub)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return l.Root
}

// ProjectStats aggregates the per-kind scans of ScanProject.
type ProjectStats struct {
	Components ScanStats
	Stores     ScanStats
	Types      ScanStats
}

// ScanProject runs the scans needed by topics. Components are needed by the
// components topic, types by the types topic and stores by the architecture
// topic. Records of unneeded kinds are left empty.
func (s *Scanner) ScanProject(layout ProjectLayout, topics []docmodel.Topic) (docmodel.Inputs, ProjectStats, error) {
	var (
		in    docmodel.Inputs
		stats ProjectStats
	)

	if _, err := os.Stat(layout.Root); err != nil {
		return in, stats, &PathNotFoundError{Path: layout.Root}
	}

	for _, topic := range topics {
		switch topic {
		case docmodel.TopicComponents:
			res, err := s.ScanComponents(layout.Root)
			if err != nil {
				return in, stats, err
			}
			in.Components, stats.Components = res.Records, res.Stats
		case docmodel.TopicTypes:
			res, err := s.ScanTypes(layout.dirOrRoot(layout.TypesDir))
			if err != nil {
				return in, stats, err
			}
			in.Types, stats.Types = res.Records, res.Stats
		case docmodel.TopicArchitecture:
			res, err := s.ScanStores(layout.dirOrRoot(layout.StoresDir))
			if err != nil {
				return in, stats, err
			}
			in.Stores, stats.Stores = res.Records, res.Stats
		}
	}
	return in, stats, nil
}
