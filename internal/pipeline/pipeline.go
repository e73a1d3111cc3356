package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"agentlint/internal/codecheck"
	"agentlint/internal/contract"
	"agentlint/internal/crawler"
	"agentlint/internal/markdown"
	"agentlint/internal/placeholder"
	"agentlint/internal/report"
)

// Options configures a validation runner.
type Options struct {
	Contract        *contract.Contract
	CheckCodeFences bool
}

// Runner validates documents: parse, contract check, placeholder scan, and
// optionally code-fence syntax check, merged into one report per document.
// Each run is a pure function of (document text, contract).
type Runner struct {
	opts    Options
	checker *codecheck.Checker
}

// Summary aggregates a batch.
type Summary struct {
	Checked int
	Failed  int
}

func NewRunner(opts Options) *Runner {
	r := &Runner{opts: opts}
	if opts.CheckCodeFences {
		r.checker = codecheck.NewChecker()
	}
	return r
}

// CheckContent validates one document. A structural parse failure (an
// unterminated fence) yields a failing report with a single error diagnostic
// and no semantic findings: the parser result cannot be trusted past that
// point, but batch callers still get a report per document.
func (r *Runner) CheckContent(ctx context.Context, path string, content []byte) *report.Report {
	doc, err := markdown.Parse(content)
	if err != nil {
		var mf *markdown.MalformedFenceError
		if errors.As(err, &mf) {
			return report.Build(path, []report.Diagnostic{{
				Severity: report.SeverityError,
				Line:     mf.Line,
				Message:  err.Error(),
			}})
		}
		return report.Build(path, []report.Diagnostic{{
			Severity: report.SeverityError,
			Line:     1,
			Message:  err.Error(),
		}})
	}

	sets := [][]report.Diagnostic{
		contract.Check(doc, r.opts.Contract),
		placeholder.Scan(doc),
	}
	if r.checker != nil {
		sets = append(sets, r.checker.Check(ctx, doc))
	}
	return report.Build(path, sets...)
}

// CheckFile reads and validates one file.
func (r *Runner) CheckFile(ctx context.Context, path string) (*report.Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return r.CheckContent(ctx, path, content), nil
}

// CheckPaths validates files and directories. Directories are crawled for
// Markdown documents. Documents are independent; reports come back in
// discovery order.
func (r *Runner) CheckPaths(ctx context.Context, paths []string, cr *crawler.Crawler) ([]*report.Report, Summary, error) {
	var docs []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, Summary{}, err
		}
		if info.IsDir() {
			if err := cr.ScanDocs(path, func(p string) {
				docs = append(docs, p)
			}); err != nil {
				return nil, Summary{}, err
			}
			continue
		}
		docs = append(docs, path)
	}

	var reports []*report.Report
	var sum Summary
	for _, doc := range docs {
		rep, err := r.CheckFile(ctx, doc)
		if err != nil {
			return nil, Summary{}, err
		}
		reports = append(reports, rep)
		sum.Checked++
		if !rep.Pass {
			sum.Failed++
		}
	}
	return reports, sum, nil
}
