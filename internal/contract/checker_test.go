package contract

import (
	"strings"
	"testing"

	"agentlint/internal/markdown"
	"agentlint/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *markdown.Document {
	t.Helper()
	doc, err := markdown.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func TestCheck_MissingSection(t *testing.T) {
	doc := mustParse(t, "## Scope\nbody\n## Testing\nbody\n")
	c := &Contract{Requirements: []Requirement{
		{Section: "Scope", Rule: RuleNonEmpty},
		{Section: "Testing", Rule: RuleNonEmpty},
		{Section: "Deployment", Rule: RuleNonEmpty},
	}}

	diags := Check(doc, c)

	require.Len(t, diags, 1)
	assert.Equal(t, report.SeverityError, diags[0].Severity)
	assert.Equal(t, "missing section: Deployment", diags[0].Message)
	assert.Equal(t, doc.LastLine, diags[0].Line)
}

func TestCheck_AllSatisfiedYieldsNothing(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		"## Scope",
		"what this covers",
		"## Testing",
		"```bash",
		"go test ./...",
		"```",
	}, "\n"))
	c := &Contract{Requirements: []Requirement{
		{Section: "scope", Rule: RuleNonEmpty},
		{Section: "TESTING", Rule: RuleCodeFence},
	}}

	assert.Empty(t, Check(doc, c))
}

func TestCheck_PresentButEmpty(t *testing.T) {
	doc := mustParse(t, "## Deployment\n\n## Next\nbody\n")
	c := &Contract{Requirements: []Requirement{{Section: "Deployment", Rule: RuleNonEmpty}}}

	diags := Check(doc, c)

	require.Len(t, diags, 1)
	assert.Equal(t, report.SeverityWarning, diags[0].Severity)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, "section Deployment present but empty/underspecified", diags[0].Message)
}

func TestCheck_DuplicateTitles(t *testing.T) {
	doc := mustParse(t, strings.Join([]string{
		"## Notes for Contributors",
		"first body",
		"## Notes for Contributors",
		"second body",
	}, "\n"))
	c := &Contract{Requirements: []Requirement{{Section: "Notes for Contributors", Rule: RuleNonEmpty}}}

	diags := Check(doc, c)

	// First occurrence satisfies the rule; only the duplicate is flagged.
	require.Len(t, diags, 1)
	assert.Equal(t, report.SeverityWarning, diags[0].Severity)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, "duplicate section title: Notes for Contributors", diags[0].Message)
}

func TestCheck_MatchesAtAnyDepthAndOrder(t *testing.T) {
	doc := mustParse(t, "# Guide\n## Z Later\nbody\n### Testing\nbody\n## Scope\nbody\n")
	c := &Contract{Requirements: []Requirement{
		{Section: "Scope", Rule: RuleNonEmpty},
		{Section: "Testing", Rule: RuleNonEmpty},
	}}

	assert.Empty(t, Check(doc, c))
}

func TestCheck_MinLines(t *testing.T) {
	doc := mustParse(t, "## Setup\nonly one line\n")
	c := &Contract{Requirements: []Requirement{{Section: "Setup", Rule: RuleMinLines, MinLines: 3}}}

	diags := Check(doc, c)
	require.Len(t, diags, 1)
	assert.Equal(t, report.SeverityWarning, diags[0].Severity)
}

func TestCheck_EmptyDocumentMissesEverything(t *testing.T) {
	doc := mustParse(t, "")
	c := &Contract{Requirements: []Requirement{
		{Section: "Scope", Rule: RulePresent},
		{Section: "Testing", Rule: RulePresent},
	}}

	diags := Check(doc, c)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, report.SeverityError, d.Severity)
		assert.Equal(t, 1, d.Line)
	}
}

func TestContractValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Contract
		wantErr bool
	}{
		{"valid", Contract{Requirements: []Requirement{{Section: "Scope", Rule: RuleNonEmpty}}}, false},
		{"unknown rule", Contract{Requirements: []Requirement{{Section: "Scope", Rule: "shiny"}}}, true},
		{"missing rule", Contract{Requirements: []Requirement{{Section: "Scope"}}}, true},
		{"empty title", Contract{Requirements: []Requirement{{Section: "  ", Rule: RulePresent}}}, true},
		{"min-lines without count", Contract{Requirements: []Requirement{{Section: "Scope", Rule: RuleMinLines}}}, true},
		{"min-lines with count", Contract{Requirements: []Requirement{{Section: "Scope", Rule: RuleMinLines, MinLines: 2}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "code style", NormalizeTitle("  Code   Style "))
	assert.Equal(t, NormalizeTitle("Notes For Contributors"), NormalizeTitle("notes for contributors"))
}
