package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/gnana997/techdocs/pkg/docmodel"
	"github.com/gnana997/techdocs/pkg/extractor"
	"github.com/gnana997/techdocs/pkg/util"
)

// Scanner walks source trees and runs the extractors over each file.
// Per-file read or decode failures are logged and skipped.
type Scanner struct {
	cache util.SourceCache
	log   *slog.Logger
}

// NewScanner creates a scanner. A nil cache reads files straight from disk.
func NewScanner(logger *slog.Logger, cache util.SourceCache) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{cache: cache, log: logger}
}

// ScanComponents extracts one component record per UI file under root.
func (s *Scanner) ScanComponents(root string) (*Result[docmodel.Component], error) {
	return scan(s, root, KindComponents, func(f docmodel.SourceFile) []docmodel.Component {
		return []docmodel.Component{extractor.Component(f)}
	})
}

// ScanStores extracts one store record per store file under root. Files
// that are not stores are counted as skipped.
func (s *Scanner) ScanStores(root string) (*Result[docmodel.Store], error) {
	return scan(s, root, KindStores, func(f docmodel.SourceFile) []docmodel.Store {
		if m := extractor.Store(f); m.OK {
			return []docmodel.Store{m.Value}
		}
		return nil
	})
}

// ScanTypes extracts every type declaration under root, which may also be a
// single file.
func (s *Scanner) ScanTypes(root string) (*Result[docmodel.TypeDecl], error) {
	return scan(s, root, KindTypes, extractor.Types)
}

// scan drives one walk. extract returning no records marks the file skipped.
func scan[T any](s *Scanner, root string, kind Kind, extract func(docmodel.SourceFile) []T) (*Result[T], error) {
	start := time.Now()

	seq, err := Walk(root, ConfigFor(kind))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", kind, err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	result := &Result[T]{Records: []T{}}
	stats := &result.Stats

	for path, walkErr := range seq {
		if walkErr != nil {
			s.log.Warn("cannot read path, skipping", "file", path, "error", walkErr)
			stats.FilesFailed++
			continue
		}
		stats.FilesDiscovered++

		file, err := s.load(absRoot, path)
		if err != nil {
			s.log.Warn("extraction failed", "file", path, "error", err)
			stats.FilesFailed++
			continue
		}

		records := extract(file)
		if len(records) == 0 {
			stats.FilesSkipped++
			s.log.Debug("no records", "file", file.RelativePath)
			continue
		}
		stats.FilesExtracted++
		stats.Records += len(records)
		s.log.Debug("extracted", "file", file.RelativePath, "count", len(records))
		result.Records = append(result.Records, records...)
	}

	stats.TotalTimeMs = time.Since(start).Milliseconds()
	s.log.Info("scan complete",
		"kind", kind,
		"files", stats.FilesDiscovered,
		"failed", stats.FilesFailed,
		"count", stats.Records,
		"ms", stats.TotalTimeMs)

	return result, nil
}

// load reads path and builds its SourceFile. Content must be valid UTF-8.
func (s *Scanner) load(absRoot, path string) (docmodel.SourceFile, error) {
	var (
		data []byte
		err  error
	)
	if s.cache != nil {
		data, err = s.cache.Read(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return docmodel.SourceFile{}, err
	}
	if !utf8.Valid(data) {
		return docmodel.SourceFile{}, fmt.Errorf("%s: content is not valid UTF-8", path)
	}

	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == "." {
		rel = filepath.Base(path)
	}
	return docmodel.SourceFile{
		Path:         path,
		RelativePath: filepath.ToSlash(rel),
		Content:      string(data),
	}, nil
}
