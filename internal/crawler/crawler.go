package crawler

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Crawler scans a directory tree for Markdown documents.
type Crawler struct {
	ignored []string
	include glob.Glob
	exclude glob.Glob
}

// New creates a crawler. Empty patterns disable the corresponding filter.
// Patterns match the slash-separated path relative to the scan root.
func New(includePattern, excludePattern string) (*Crawler, error) {
	c := &Crawler{
		ignored: []string{".git", "vendor", "node_modules", "testdata"},
	}
	if includePattern != "" {
		g, err := glob.Compile(includePattern, '/')
		if err != nil {
			return nil, err
		}
		c.include = g
	}
	if excludePattern != "" {
		g, err := glob.Compile(excludePattern, '/')
		if err != nil {
			return nil, err
		}
		c.exclude = g
	}
	return c, nil
}

// ScanDocs walks the root directory and streams matching document paths to
// the callback, preventing large path buildup on big trees.
func (c *Crawler) ScanDocs(root string, onDoc func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !IsMarkdown(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if c.include != nil && !c.include.Match(rel) {
			return nil
		}
		if c.exclude != nil && c.exclude.Match(rel) {
			return nil
		}

		onDoc(path)
		return nil
	})
}

// IsMarkdown reports whether a file name looks like a Markdown document.
func IsMarkdown(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
