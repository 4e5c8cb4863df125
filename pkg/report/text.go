package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"

	"github.com/nsxbet/sqlcheck/pkg/reviewer"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

const (
	separator   = "-------------------------------------------------"
	resultsRule = "==================== Results ==================="
	summaryRule = "==================== Summary ==================="
)

type styles struct {
	high    lipgloss.Style
	medium  lipgloss.Style
	hint    lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer, mode ColorMode) styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		high:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		medium:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		hint:    r.NewStyle().Foreground(lipgloss.Color("39")),
		heading: r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (s styles) severity(sev types.Severity) lipgloss.Style {
	switch sev {
	case types.SeverityError:
		return s.high
	case types.SeverityWarning:
		return s.medium
	default:
		return s.hint
	}
}

// RiskLabel names a severity the way the text report does.
func RiskLabel(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return "HIGH RISK"
	case types.SeverityWarning:
		return "MEDIUM RISK"
	case types.SeverityInfo:
		return "HINT"
	default:
		return "UNSPECIFIED"
	}
}

func riskBanner(min types.Severity) string {
	switch min {
	case types.SeverityError:
		return "ONLY HIGH RISK ANTI-PATTERNS"
	case types.SeverityWarning:
		return "MEDIUM AND HIGH RISK ANTI-PATTERNS"
	default:
		return "ALL ANTI-PATTERNS"
	}
}

func writeText(w io.Writer, sources []Source, opts Options) error {
	st := newStyles(w, opts.Color)
	var b strings.Builder

	for _, src := range sources {
		fmt.Fprintln(&b, separator)
		fmt.Fprintf(&b, "> RISK LEVEL    :: %s\n", riskBanner(opts.MinimumSeverity))
		fmt.Fprintf(&b, "> SQL FILE NAME :: %s\n", src.Name)
		fmt.Fprintln(&b, separator)
		fmt.Fprintln(&b, st.heading.Render(resultsRule))

		if src.Result == nil || src.Result.Summary.Total == 0 {
			fmt.Fprintln(&b)
			fmt.Fprintln(&b, "No issues found.")
			fmt.Fprintln(&b)
			continue
		}
		writeEntries(&b, st, src.Name, src.Result.Entries, opts.Verbose)
	}

	writeSummary(&b, st, Total(sources))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "failed to write text report")
	}
	return nil
}

func writeEntries(b *strings.Builder, st styles, name string, entries []reviewer.Entry, verbose bool) {
	for _, entry := range entries {
		switch entry.Kind {
		case reviewer.EntryStatement:
			fmt.Fprintln(b)
			fmt.Fprintln(b, separator)
			raw := strings.TrimSuffix(strings.TrimSpace(entry.Statement.Raw()), ";")
			if pos := entry.Statement.Position(); pos != nil {
				fmt.Fprintf(b, "SQL Statement (line %d): %s;\n", pos.Line, raw)
			} else {
				fmt.Fprintf(b, "SQL Statement: %s;\n", raw)
			}
		case reviewer.EntryFinding:
			f := entry.Finding
			label := st.severity(f.Rule.Severity).Render("(" + RiskLabel(f.Rule.Severity) + ")")
			fmt.Fprintf(b, "[%s]: %s (%s) %s\n", name, label, f.Rule.Category.Label(), f.Rule.Title)
			if verbose && f.Rule.Message != "" {
				fmt.Fprintln(b, f.Rule.Message)
			}
			if f.Match != "" {
				fmt.Fprintln(b, st.muted.Render("[Matching Expression: "+f.Match+"]"))
			}
			fmt.Fprintln(b)
		}
	}
}

func writeSummary(b *strings.Builder, st styles, total reviewer.Summary) {
	fmt.Fprintln(b, st.heading.Render(summaryRule))
	fmt.Fprintf(b, "Statements Reviewed          :: %d\n", total.Statements)
	fmt.Fprintf(b, "All Anti-Patterns and Hints  :: %d\n", total.Total)
	fmt.Fprintf(b, ">  %s   :: %d\n", st.high.Render("High Risk"), total.Errors)
	fmt.Fprintf(b, ">  %s :: %d\n", st.medium.Render("Medium Risk"), total.Warnings)
	fmt.Fprintf(b, ">  %s       :: %d\n", st.hint.Render("Hints"), total.Infos)
}
