package reviewer

import (
	"fmt"

	"github.com/nsxbet/sqlcheck/pkg/advisor"
	"github.com/nsxbet/sqlcheck/pkg/statement"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

// EntryKind distinguishes statement headers from findings.
type EntryKind int

const (
	// EntryStatement introduces the findings of one statement.
	EntryStatement EntryKind = iota
	// EntryFinding is one rule that fired.
	EntryFinding
)

func (k EntryKind) String() string {
	switch k {
	case EntryStatement:
		return "statement"
	case EntryFinding:
		return "finding"
	default:
		return "unknown"
	}
}

// Entry is one line of review output.
type Entry struct {
	Kind      EntryKind
	Statement *statement.Statement
	// Finding is nil for statement entries.
	Finding *advisor.Finding
}

// Severity returns the finding's severity, or SeverityUnspecified for a
// statement entry.
func (e Entry) Severity() types.Severity {
	if e.Finding == nil {
		return types.SeverityUnspecified
	}
	return e.Finding.Rule.Severity
}

// Category returns the finding's category.
func (e Entry) Category() types.Category {
	if e.Finding == nil {
		return types.CategoryUnspecified
	}
	return e.Finding.Rule.Category
}

// Title returns the finding's rule title.
func (e Entry) Title() string {
	if e.Finding == nil {
		return ""
	}
	return e.Finding.Rule.Title
}

// Message returns the finding's long form advice.
func (e Entry) Message() string {
	if e.Finding == nil {
		return ""
	}
	return e.Finding.Rule.Message
}

// ReviewResult contains the results of a review.
type ReviewResult struct {
	// Entries holds statement headers and findings in output order.
	// Empty if no issues were found.
	Entries []Entry

	// Summary provides aggregate statistics about the findings.
	Summary Summary
}

// Summary provides aggregate statistics about review findings.
type Summary struct {
	// Statements is the number of statements reviewed.
	Statements int `json:"statements" yaml:"statements"`

	// Total number of findings (errors + warnings + infos)
	Total int `json:"total" yaml:"total"`

	// Errors is the count of ERROR-level findings.
	Errors int `json:"errors" yaml:"errors"`

	// Warnings is the count of WARN-level findings.
	Warnings int `json:"warnings" yaml:"warnings"`

	// Infos is the count of INFO-level findings.
	Infos int `json:"infos" yaml:"infos"`
}

func newReviewResult(statements int, entries []Entry) *ReviewResult {
	return &ReviewResult{
		Entries: entries,
		Summary: calculateSummary(statements, entries),
	}
}

// calculateSummary computes aggregate statistics from entries
func calculateSummary(statements int, entries []Entry) Summary {
	summary := Summary{Statements: statements}
	for _, entry := range entries {
		if entry.Kind != EntryFinding {
			continue
		}
		summary.Total++
		switch entry.Severity() {
		case types.SeverityError:
			summary.Errors++
		case types.SeverityWarning:
			summary.Warnings++
		case types.SeverityInfo:
			summary.Infos++
		}
	}
	return summary
}

// Add merges other into s.
func (s *Summary) Add(other Summary) {
	s.Statements += other.Statements
	s.Total += other.Total
	s.Errors += other.Errors
	s.Warnings += other.Warnings
	s.Infos += other.Infos
}

// HasErrors returns true if the review found any ERROR-level findings.
//
// This is useful for CI/CD pipelines that should fail on errors:
//
//	if result.HasErrors() {
//	    os.Exit(1)
//	}
func (r *ReviewResult) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if the review found any WARN-level findings.
func (r *ReviewResult) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// IsClean returns true if the review found no errors or warnings.
func (r *ReviewResult) IsClean() bool {
	return r.Summary.Errors == 0 && r.Summary.Warnings == 0
}

// String returns a human-readable summary of the review results.
//
// Example output:
//
//	Review Results: 3 statements, 5 findings (2 errors, 1 warnings, 2 infos)
func (r *ReviewResult) String() string {
	return fmt.Sprintf(
		"Review Results: %d statements, %d findings (%d errors, %d warnings, %d infos)",
		r.Summary.Statements,
		r.Summary.Total,
		r.Summary.Errors,
		r.Summary.Warnings,
		r.Summary.Infos,
	)
}

// Findings returns every finding in output order.
func (r *ReviewResult) Findings() []*advisor.Finding {
	return r.filter(func(*advisor.Finding) bool { return true })
}

// FilterBySeverity returns the findings with the specified severity.
func (r *ReviewResult) FilterBySeverity(severity types.Severity) []*advisor.Finding {
	return r.filter(func(f *advisor.Finding) bool { return f.Rule.Severity == severity })
}

// FilterByCategory returns the findings of the specified category.
func (r *ReviewResult) FilterByCategory(category types.Category) []*advisor.Finding {
	return r.filter(func(f *advisor.Finding) bool { return f.Rule.Category == category })
}

// FilterByRule returns the findings of the rule with the specified ID.
//
//	stars := result.FilterByRule("SelectStar")
func (r *ReviewResult) FilterByRule(id string) []*advisor.Finding {
	return r.filter(func(f *advisor.Finding) bool { return f.Rule.ID == id })
}

// FilterByCode returns the findings of the rule with the specified code.
func (r *ReviewResult) FilterByCode(code advisor.Code) []*advisor.Finding {
	return r.filter(func(f *advisor.Finding) bool { return f.Rule.Code == code })
}

func (r *ReviewResult) filter(keep func(*advisor.Finding) bool) []*advisor.Finding {
	filtered := make([]*advisor.Finding, 0)
	for _, entry := range r.Entries {
		if entry.Finding != nil && keep(entry.Finding) {
			filtered = append(filtered, entry.Finding)
		}
	}
	return filtered
}
