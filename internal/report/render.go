package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/envdelta/envdelta/internal/pipeline"
	"github.com/envdelta/envdelta/internal/redact"
	"github.com/envdelta/envdelta/internal/types"
)

var (
	highStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	medStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// PrintOptions control compare/validate rendering.
type PrintOptions struct {
	NoColor       bool
	NoRedact      bool // print raw values instead of masked ones
	ShowUnchanged bool
	Redact        redact.Options
}

// PrintCompare renders a comparison as a diff table followed by findings
// and warnings. Values are masked unless NoRedact is set.
func PrintCompare(w io.Writer, res *pipeline.CompareResult, opts PrintOptions) {
	d := res.Diff
	fmt.Fprintf(w, "Changed: %d  Added: %d  Removed: %d  Unchanged: %d\n",
		len(d.Changed), len(d.Added), len(d.Removed), len(d.Unchanged))

	if len(d.Changed)+len(d.Added)+len(d.Removed) > 0 || (opts.ShowUnchanged && len(d.Unchanged) > 0) {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Change", "Key", "From", "To"})
		for _, c := range d.Changed {
			table.Append([]string{"changed", c.Key, opts.display(c.From), opts.display(c.To)})
		}
		for _, a := range d.Added {
			table.Append([]string{"added", a.Key, "", opts.display(a.Value)})
		}
		for _, r := range d.Removed {
			table.Append([]string{"removed", r.Key, opts.display(r.Value), ""})
		}
		if opts.ShowUnchanged {
			for _, u := range d.Unchanged {
				table.Append([]string{"unchanged", u.Key, opts.display(u.Value), opts.display(u.Value)})
			}
		}
		_ = table.Render()
	}

	if len(res.Findings) > 0 {
		fmt.Fprintf(w, "\nFindings: %d\n", len(res.Findings))
		for _, f := range res.Findings {
			sev := string(f.Severity)
			if !opts.NoColor {
				sev = severityStyle(f.Severity).Render(sev)
			}
			note := ""
			if f.Note != "" {
				note = "  (" + f.Note + ")"
			}
			fmt.Fprintf(w, "%-6s %-20s %s — %s%s\n", sev, f.RuleID, f.Key, f.Message, note)
		}
	}

	printSideIssues(w, "left", res.Left.Issues, opts)
	printSideIssues(w, "right", res.Right.Issues, opts)
	printWarnings(w, res.Warnings, opts)
}

// PrintValidate renders per-side diagnostics plus aggregated totals.
func PrintValidate(w io.Writer, res *pipeline.ValidateResult, opts PrintOptions) {
	for i, s := range res.Sides {
		status := "ok"
		if !s.OK {
			status = "failed"
		}
		fmt.Fprintf(w, "Document %d: %s (%d lines)\n", i+1, status, s.Meta.LineCount)
		for _, is := range s.Issues {
			printIssue(w, is, opts)
		}
		for _, d := range s.Duplicates {
			fmt.Fprintf(w, "  duplicate  %s (%d occurrences)\n", d.Key, d.Occurrences)
		}
	}
	fmt.Fprintf(w, "\nTotals: %d errors, %d warnings, %d duplicate keys\n",
		res.Totals.Errors, res.Totals.Warnings, res.Totals.Duplicates)
}

func printSideIssues(w io.Writer, side string, issues []types.Issue, opts PrintOptions) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s side issues:\n", side)
	for _, is := range issues {
		printIssue(w, is, opts)
	}
}

func printIssue(w io.Writer, is types.Issue, opts PrintOptions) {
	loc := ""
	if is.Line > 0 {
		loc = fmt.Sprintf(" (line %d)", is.Line)
	}
	kind := string(is.Kind)
	if !opts.NoColor {
		if is.Kind == types.IssueError {
			kind = highStyle.Render(kind)
		} else {
			kind = medStyle.Render(kind)
		}
	}
	fmt.Fprintf(w, "  %-7s %s%s\n", kind, is.Message, loc)
}

func printWarnings(w io.Writer, warnings []string, opts PrintOptions) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, warn := range warnings {
		line := "warning: " + warn
		if !opts.NoColor {
			line = dimStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func (o PrintOptions) display(value string) string {
	if o.NoRedact {
		return value
	}
	return redact.Value(value, o.Redact).Redacted
}

func severityStyle(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevHigh:
		return highStyle
	case types.SevMed:
		return medStyle
	default:
		return lowStyle
	}
}
