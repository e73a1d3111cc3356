package render

import (
	"bytes"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// The goldmark instance is initialized once and reused: its configuration
// never changes and Convert creates per-call state.
var (
	mdInstance goldmark.Markdown
	mdOnce     sync.Once
)

func renderer() goldmark.Markdown {
	mdOnce.Do(func() {
		mdInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return mdInstance
}

// HTML converts a Markdown document to HTML.
func HTML(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderer().Convert(source, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
