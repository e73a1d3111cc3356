package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/table"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

var (
	errorTint   = color.New(color.FgRed, color.Bold).SprintFunc()
	warningTint = color.New(color.FgYellow).SprintFunc()
	passTint    = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// Write renders reports in the requested format.
func Write(w io.Writer, format string, reports []*Report) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, reports)
	case FormatTable:
		return writeTable(w, reports)
	case FormatText, "":
		return writeText(w, reports)
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}
}

func writeJSON(w io.Writer, reports []*Report) error {
	if reports == nil {
		reports = []*Report{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func writeText(w io.Writer, reports []*Report) error {
	for _, r := range reports {
		verdict := passTint("PASS")
		if !r.Pass {
			verdict = errorTint("FAIL")
		}
		fmt.Fprintf(w, "%s: %s\n", r.Path, verdict)
		for _, d := range r.Diagnostics {
			sev := warningTint(string(d.Severity))
			if d.Severity == SeverityError {
				sev = errorTint(string(d.Severity))
			}
			fmt.Fprintf(w, "  %s line %d: %s\n", sev, d.Line, d.Message)
		}
	}
	return nil
}

func writeTable(w io.Writer, reports []*Report) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"File", "Line", "Severity", "Message"})
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			t.AppendRow(table.Row{r.Path, d.Line, d.Severity, d.Message})
		}
	}
	t.SetStyle(table.StyleRounded)
	fmt.Fprintln(w, t.Render())
	return nil
}
