package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	out, err := HTML([]byte("# Setup\n\nrun `make`\n"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<h1>Setup</h1>")
	assert.Contains(t, html, "<code>make</code>")
}

func TestHTML_GFMTable(t *testing.T) {
	out, err := HTML([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
}
