package contract

import (
	"fmt"

	"agentlint/internal/markdown"
	"agentlint/internal/report"
)

// Check validates a parsed document against a contract. Missing required
// sections are errors located at end of document; present-but-thin sections
// and duplicate titles are warnings. All findings are collected, never raised.
func Check(doc *markdown.Document, c *Contract) []report.Diagnostic {
	var diags []report.Diagnostic

	// First occurrence wins; later duplicates are flagged and ignored for
	// content checks.
	index := make(map[string]*markdown.Section)
	doc.Walk(func(s *markdown.Section) {
		if s.Level == 0 {
			return
		}
		key := NormalizeTitle(s.Title)
		if _, seen := index[key]; seen {
			diags = append(diags, report.Diagnostic{
				Severity: report.SeverityWarning,
				Line:     s.Line,
				Message:  fmt.Sprintf("duplicate section title: %s", s.Title),
			})
			return
		}
		index[key] = s
	})

	endOfDoc := doc.LastLine
	if endOfDoc < 1 {
		endOfDoc = 1
	}

	for _, req := range c.Requirements {
		sec, found := index[NormalizeTitle(req.Section)]
		if !found {
			diags = append(diags, report.Diagnostic{
				Severity: report.SeverityError,
				Line:     endOfDoc,
				Message:  fmt.Sprintf("missing section: %s", req.Section),
			})
			continue
		}
		if !satisfies(sec, req) {
			diags = append(diags, report.Diagnostic{
				Severity: report.SeverityWarning,
				Line:     sec.Line,
				Message:  fmt.Sprintf("section %s present but empty/underspecified", req.Section),
			})
		}
	}

	return diags
}

func satisfies(sec *markdown.Section, req Requirement) bool {
	switch req.Rule {
	case RulePresent:
		return true
	case RuleNonEmpty:
		return sec.NonEmptyBodyLines() > 0
	case RuleCodeFence:
		return len(sec.Fences) > 0
	case RuleMinLines:
		return sec.NonEmptyBodyLines() >= req.MinLines
	}
	return true
}
