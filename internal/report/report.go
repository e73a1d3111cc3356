package report

import (
	"sort"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one finding against a document.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	Message  string   `json:"message"`
}

// Report is the merged, ordered result of one validation run over one
// document. Pass is true when no error-severity diagnostics are present.
type Report struct {
	Path        string       `json:"path"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Pass        bool         `json:"pass"`
}

// Build merges the given diagnostic sets into one report. Ordering is total
// (line, then error before warning, then message), so identical input always
// produces an identical report.
func Build(path string, sets ...[]Diagnostic) *Report {
	var all []Diagnostic
	for _, set := range sets {
		all = append(all, set...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Line != all[j].Line {
			return all[i].Line < all[j].Line
		}
		if all[i].Severity != all[j].Severity {
			return all[i].Severity == SeverityError
		}
		return all[i].Message < all[j].Message
	})

	pass := true
	for _, d := range all {
		if d.Severity == SeverityError {
			pass = false
			break
		}
	}

	if all == nil {
		all = []Diagnostic{}
	}
	return &Report{Path: path, Diagnostics: all, Pass: pass}
}

// Errors counts error-severity diagnostics.
func (r *Report) Errors() int {
	return r.count(SeverityError)
}

// Warnings counts warning-severity diagnostics.
func (r *Report) Warnings() int {
	return r.count(SeverityWarning)
}

func (r *Report) count(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
