// Package scanner discovers TypeScript and React source files under a root
// directory and runs the structural extractors over them.
package scanner

import "fmt"

// Kind selects which files a scan considers.
type Kind string

const (
	// KindComponents matches UI files (.tsx, .jsx).
	KindComponents Kind = "components"
	// KindStores matches plain .ts files, declaration files excluded.
	KindStores Kind = "stores"
	// KindTypes matches plain .ts files, declaration files excluded.
	KindTypes Kind = "types"
)

// ScanConfig configures file discovery. Include and Exclude patterns are
// doublestar globs matched against the slash-separated path relative to the
// scan root. Exclude patterns apply to files only; directories are always
// descended.
type ScanConfig struct {
	Include []string
	Exclude []string
}

// ConfigFor returns the discovery rules of a scan kind.
func ConfigFor(kind Kind) ScanConfig {
	switch kind {
	case KindComponents:
		return ScanConfig{
			Include: []string{"**/*.tsx", "**/*.jsx"},
			Exclude: []string{
				"**/index.*",
				"**/*.test.*",
				"**/*.spec.*",
			},
		}
	default:
		return ScanConfig{
			Include: []string{"**/*.ts"},
			Exclude: []string{
				"**/*.d.ts",
				"**/*.test.*",
				"**/*.spec.*",
			},
		}
	}
}

// PathNotFoundError reports a scan root that does not exist.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// ScanStats tracks scan metrics.
type ScanStats struct {
	FilesDiscovered int
	FilesExtracted  int
	FilesFailed     int
	// FilesSkipped counts discovered files the extractor declined, such as
	// .ts files that are not stores.
	FilesSkipped int
	Records      int
	TotalTimeMs  int64
}

// Result is the output of one scan.
type Result[T any] struct {
	Records []T
	Stats   ScanStats
}
