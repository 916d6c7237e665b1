package docs

import (
	"context"
	"sort"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/sync/errgroup"
)

// indexWorkers bounds concurrent file reads during index building.
const indexWorkers = 8

// Entry describes one documented class for listings.
type Entry struct {
	// Path is the class path, e.g. "Sketchup/Face".
	Path string

	// Title is the document's first heading, or the class name when the
	// document has none.
	Title string
}

// BuildIndex loads every document in the tree and extracts its title,
// reading files concurrently. Entries come back sorted by path.
func (s *Store) BuildIndex(ctx context.Context) ([]Entry, error) {
	classes, err := s.List()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		entries = make([]Entry, 0, len(classes))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(indexWorkers)

	for _, cls := range classes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := s.Load(cls)
			if err != nil {
				return err
			}

			title := extractTitle([]byte(content))
			if title == "" {
				title = lastComponent(cls)
			}

			mu.Lock()
			entries = append(entries, Entry{Path: cls, Title: title})
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return entries, nil
}

// extractTitle returns the text of the first heading in a markdown document.
func extractTitle(source []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var title string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if h, ok := n.(*ast.Heading); ok {
			title = string(h.Text(source))

			return ast.WalkStop, nil
		}

		return ast.WalkContinue, nil
	})

	return title
}
