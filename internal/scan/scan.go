// Package scan enumerates slide files and pairs them with their extracted
// label images.
//
// The listing is lexicographically sorted so the resulting order is stable
// and deterministic: the work list's entry indexes are defined by it.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/handiism/slide-renamer/internal/model"
)

// Scanner discovers slide files in a folder.
//
// Only files with a supported extension are considered, and files whose
// name starts with a skip prefix (hidden files, test slides) are ignored.
//
// Example:
//
//	s := scan.NewScanner(settings.SupportedExtensions, settings.SkipPrefixes)
//	descs, err := s.Scan("/data/KPC12-1", "label_image")
type Scanner struct {
	extensions   map[string]bool
	skipPrefixes []string
}

// NewScanner creates a Scanner for the given slide extensions (with dots,
// matched case-insensitively) and skip prefixes.
func NewScanner(extensions, skipPrefixes []string) *Scanner {
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Scanner{extensions: exts, skipPrefixes: skipPrefixes}
}

// Scan lists the supported slide files in folder, sorted by filename, and
// pairs each with its label image under labelFolder when one exists.
//
// The label image for slide <base>.<ext> is <folder>/<labelFolder>/<base>.jpg.
// Slides without a label image are still returned, with an empty LabelPath.
func (s *Scanner) Scan(folder, labelFolder string) ([]model.SourceDescriptor, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var descs []model.SourceDescriptor
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if s.shouldSkip(name) || !s.supported(name) {
			continue
		}
		descs = append(descs, model.SourceDescriptor{
			SlidePath: filepath.Join(folder, name),
			LabelPath: s.labelFor(folder, labelFolder, name),
		})
	}

	sort.Slice(descs, func(i, j int) bool {
		return descs[i].SlidePath < descs[j].SlidePath
	})
	return descs, nil
}

// supported reports whether the filename has a supported slide extension.
func (s *Scanner) supported(name string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(name))]
}

// shouldSkip applies the skip-prefix rules to a base filename.
func (s *Scanner) shouldSkip(name string) bool {
	for _, prefix := range s.skipPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// labelFor returns the path of the label image paired with the slide, or
// "" when no label image exists on disk.
func (s *Scanner) labelFor(folder, labelFolder, slideName string) string {
	if labelFolder == "" {
		return ""
	}
	base := strings.TrimSuffix(slideName, filepath.Ext(slideName))
	labelPath := filepath.Join(folder, labelFolder, base+".jpg")
	if _, err := os.Stat(labelPath); err != nil {
		return ""
	}
	return labelPath
}
