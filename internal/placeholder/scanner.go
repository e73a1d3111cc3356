package placeholder

import (
	"fmt"
	"regexp"

	"agentlint/internal/markdown"
	"agentlint/internal/report"
)

// pattern is one placeholder token class. Matches are advisory: a template may
// legitimately keep some example values, so findings are always warnings.
type pattern struct {
	class string
	re    *regexp.Regexp
}

var patterns = []pattern{
	{"angle-bracket placeholder", regexp.MustCompile(`<[A-Za-z][A-Za-z0-9 _./-]*>`)},
	{"unresolved marker", regexp.MustCompile(`\b(?:TODO|FIXME)\b`)},
	{"sample API key", regexp.MustCompile(`\bsk-[A-Za-z0-9._-]+`)},
	{"example domain", regexp.MustCompile(`\bexample\.(?:com|org|net)\b`)},
	{"example repository", regexp.MustCompile(`\byour-?(?:org|name|repo|project|team)\b`)},
}

// Scan walks every body line of every section, fenced content included, and
// emits one warning per placeholder occurrence. It never fails.
func Scan(doc *markdown.Document) []report.Diagnostic {
	var diags []report.Diagnostic
	doc.Walk(func(s *markdown.Section) {
		for _, line := range s.Body {
			for _, p := range patterns {
				for _, match := range p.re.FindAllString(line.Text, -1) {
					diags = append(diags, report.Diagnostic{
						Severity: report.SeverityWarning,
						Line:     line.Number,
						Message:  fmt.Sprintf("unresolved placeholder (%s): %q", p.class, match),
					})
				}
			}
		}
	})
	return diags
}
