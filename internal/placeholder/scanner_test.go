package placeholder

import (
	"strings"
	"testing"

	"agentlint/internal/markdown"
	"agentlint/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) []report.Diagnostic {
	t.Helper()
	doc, err := markdown.Parse([]byte(src))
	require.NoError(t, err)
	return Scan(doc)
}

func TestScan_SampleKeyInBody(t *testing.T) {
	diags := scan(t, "## Setup\nexport API_KEY=sk-...\n")

	require.Len(t, diags, 1)
	assert.Equal(t, report.SeverityWarning, diags[0].Severity)
	assert.Equal(t, 2, diags[0].Line)
	assert.Contains(t, diags[0].Message, "sample API key")
	assert.Contains(t, diags[0].Message, "sk-...")
}

func TestScan_AngleBracketTokens(t *testing.T) {
	diags := scan(t, "## Setup\nclone <repo url> into <project dir>\n")

	require.Len(t, diags, 2)
	assert.Contains(t, diags[0].Message, "<repo url>")
	assert.Contains(t, diags[1].Message, "<project dir>")
}

func TestScan_TodoAndFixme(t *testing.T) {
	diags := scan(t, "intro\nTODO fill this in\nFIXME too\n")

	require.Len(t, diags, 2)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 3, diags[1].Line)
}

func TestScan_InsideFences(t *testing.T) {
	src := strings.Join([]string{
		"## Environment",
		"```bash",
		"export TOKEN=sk-abc123",
		"```",
	}, "\n")

	diags := scan(t, src)
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].Line)
}

func TestScan_ExampleDomain(t *testing.T) {
	diags := scan(t, "see https://api.example.com/docs and https://github.com/yourorg/app\n")
	require.Len(t, diags, 2)
}

func TestScan_CleanDocument(t *testing.T) {
	src := strings.Join([]string{
		"## Scope",
		"This tool lints onboarding documents.",
		"## Testing",
		"Run the standard suite before sending a change.",
	}, "\n")

	assert.Empty(t, scan(t, src))
}
