// Package docs serves the runtime API documentation tree: a directory of
// markdown files addressed by class path (e.g. "Geom/Point3d"), browsed by
// the CLI and exposed as MCP resources.
package docs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// indexFile is the documentation index at the tree root. It is addressed
// explicitly and excluded from class listings.
const indexFile = "INDEX.md"

// Store reads documentation from a markdown tree on disk.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir. The directory may not exist yet;
// lookups then return ErrNotFound.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = fmt.Errorf("documentation not found")

// Available reports whether the documentation tree exists.
func (s *Store) Available() bool {
	info, err := os.Stat(s.root)

	return err == nil && info.IsDir()
}

// List returns all class paths with documentation, sorted, with the .md
// suffix stripped: ["Array", "Geom/BoundingBox", "Sketchup/Face", ...].
func (s *Store) List() ([]string, error) {
	if !s.Available() {
		return nil, nil
	}

	var classes []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") || d.Name() == indexFile {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		classes = append(classes, filepath.ToSlash(strings.TrimSuffix(rel, ".md")))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk documentation tree: %w", err)
	}

	sort.Strings(classes)

	return classes, nil
}

// Load returns the documentation for a class path like "Sketchup/Face".
func (s *Store) Load(classPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(classPath))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, classPath)
	}

	data, err := os.ReadFile(filepath.Join(s.root, clean+".md"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, classPath)
		}

		return "", fmt.Errorf("read documentation: %w", err)
	}

	return string(data), nil
}

// LoadIndex returns the documentation index.
func (s *Store) LoadIndex() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("read documentation index: %w", err)
	}

	return string(data), nil
}

// FindSimilar returns up to limit class paths whose final component
// resembles query, for "did you mean" suggestions after a failed lookup.
func (s *Store) FindSimilar(query string, limit int) ([]string, error) {
	available, err := s.List()
	if err != nil {
		return nil, err
	}

	queryName := strings.ToLower(lastComponent(query))

	var matches []string

	for _, cls := range available {
		clsName := strings.ToLower(lastComponent(cls))
		if strings.Contains(clsName, queryName) || strings.Contains(queryName, clsName) {
			matches = append(matches, cls)
			if len(matches) == limit {
				break
			}
		}
	}

	return matches, nil
}

func lastComponent(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}

	return path
}
