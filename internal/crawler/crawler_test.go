package crawler

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("# Doc\n"), 0644))
}

func collect(t *testing.T, c *Crawler, root string) []string {
	t.Helper()
	var rels []string
	err := c.ScanDocs(root, func(path string) {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	})
	require.NoError(t, err)
	sort.Strings(rels)
	return rels
}

func TestScanDocs_FindsMarkdownOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "AGENTS.md"))
	writeFile(t, filepath.Join(root, "docs", "guide.markdown"))
	writeFile(t, filepath.Join(root, "main.go"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	c, err := New("", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"AGENTS.md", "docs/guide.markdown"}, collect(t, c, root))
}

func TestScanDocs_SkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"))
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "README.md"))
	writeFile(t, filepath.Join(root, "vendor", "dep.md"))
	writeFile(t, filepath.Join(root, ".git", "notes.md"))

	c, err := New("", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md"}, collect(t, c, root))
}

func TestScanDocs_GlobFilters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "docs", "a.md"))
	writeFile(t, filepath.Join(root, "docs", "drafts", "b.md"))
	writeFile(t, filepath.Join(root, "top.md"))

	c, err := New("docs/**", "docs/drafts/**")
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/a.md"}, collect(t, c, root))
}

func TestNew_BadPattern(t *testing.T) {
	_, err := New("[", "")
	assert.Error(t, err)
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("AGENTS.md"))
	assert.True(t, IsMarkdown("GUIDE.MD"))
	assert.True(t, IsMarkdown("x.markdown"))
	assert.False(t, IsMarkdown("main.go"))
}
