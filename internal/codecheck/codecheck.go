package codecheck

import (
	"context"
	"fmt"
	"strings"

	"agentlint/internal/markdown"
	"agentlint/internal/report"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/yaml"
)

// Checker parses fenced code blocks with the grammar their info string
// declares. Blocks in unsupported languages are skipped.
type Checker struct {
	languages map[string]*sitter.Language
}

func NewChecker() *Checker {
	return &Checker{
		languages: map[string]*sitter.Language{
			"go":         golang.GetLanguage(),
			"golang":     golang.GetLanguage(),
			"python":     python.GetLanguage(),
			"py":         python.GetLanguage(),
			"javascript": javascript.GetLanguage(),
			"js":         javascript.GetLanguage(),
			"bash":       bash.GetLanguage(),
			"sh":         bash.GetLanguage(),
			"shell":      bash.GetLanguage(),
			"yaml":       yaml.GetLanguage(),
			"yml":        yaml.GetLanguage(),
		},
	}
}

// Supported reports whether a fence language has a grammar registered.
func (c *Checker) Supported(language string) bool {
	_, ok := c.languages[language]
	return ok
}

// Check emits one warning per fenced block whose declared language does not
// parse cleanly. Findings are advisory: snippets in docs are often elided.
func (c *Checker) Check(ctx context.Context, doc *markdown.Document) []report.Diagnostic {
	var diags []report.Diagnostic
	doc.Walk(func(s *markdown.Section) {
		for _, f := range s.Fences {
			lang, ok := c.languages[f.Language]
			if !ok {
				continue
			}
			src := strings.TrimSpace(strings.Join(f.Content, "\n"))
			if src == "" {
				continue
			}
			broken, err := hasSyntaxErrors(ctx, lang, []byte(src))
			if err != nil {
				diags = append(diags, report.Diagnostic{
					Severity: report.SeverityWarning,
					Line:     f.Line,
					Message:  fmt.Sprintf("could not parse %s code fence: %v", f.Language, err),
				})
				continue
			}
			if broken {
				diags = append(diags, report.Diagnostic{
					Severity: report.SeverityWarning,
					Line:     f.Line,
					Message:  fmt.Sprintf("code fence declared as %s contains syntax errors", f.Language),
				})
			}
		}
	})
	return diags
}

func hasSyntaxErrors(ctx context.Context, lang *sitter.Language, src []byte) (bool, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return false, err
	}
	defer tree.Close()
	return tree.RootNode().HasError(), nil
}
