package report

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sqlcheck/pkg/reviewer"
	"github.com/nsxbet/sqlcheck/pkg/types"
)

// Document is the JSON and YAML shape of a report.
type Document struct {
	Files   []File           `json:"files"   yaml:"files"`
	Summary reviewer.Summary `json:"summary" yaml:"summary"`
}

// File holds the findings of one input.
type File struct {
	Name     string           `json:"name"     yaml:"name"`
	Findings []Finding        `json:"findings" yaml:"findings"`
	Summary  reviewer.Summary `json:"summary"  yaml:"summary"`
}

// Finding is one rule that fired on one statement.
type Finding struct {
	Rule      string          `json:"rule"               yaml:"rule"`
	Code      int32           `json:"code"               yaml:"code"`
	Title     string          `json:"title"              yaml:"title"`
	Severity  types.Severity  `json:"severity"           yaml:"severity"`
	Category  types.Category  `json:"category"           yaml:"category"`
	Statement string          `json:"statement"          yaml:"statement"`
	Position  *types.Position `json:"position,omitempty" yaml:"position,omitempty"`
	Match     string          `json:"match,omitempty"    yaml:"match,omitempty"`
	Count     int             `json:"count"              yaml:"count"`
	Message   string          `json:"message,omitempty"  yaml:"message,omitempty"`
}

// NewDocument converts sources into a Document. Messages are kept only when
// verbose is set.
func NewDocument(sources []Source, verbose bool) Document {
	doc := Document{
		Files:   make([]File, 0, len(sources)),
		Summary: Total(sources),
	}
	for _, src := range sources {
		file := File{Name: src.Name, Findings: make([]Finding, 0)}
		if src.Result != nil {
			file.Summary = src.Result.Summary
			for _, f := range src.Result.Findings() {
				record := Finding{
					Rule:      f.Rule.ID,
					Code:      f.Rule.Code.Int32(),
					Title:     f.Rule.Title,
					Severity:  f.Rule.Severity,
					Category:  f.Rule.Category,
					Statement: f.Statement.Raw(),
					Position:  f.Statement.Position(),
					Match:     f.Match,
					Count:     f.Count,
				}
				if verbose {
					record.Message = f.Rule.Message
				}
				file.Findings = append(file.Findings, record)
			}
		}
		doc.Files = append(doc.Files, file)
	}
	return doc
}

func writeJSON(w io.Writer, sources []Source, opts Options) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewDocument(sources, opts.Verbose)); err != nil {
		return errors.Wrap(err, "failed to encode JSON report")
	}
	return nil
}

func writeYAML(w io.Writer, sources []Source, opts Options) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewDocument(sources, opts.Verbose)); err != nil {
		return errors.Wrap(err, "failed to encode YAML report")
	}
	return errors.Wrap(encoder.Close(), "failed to flush YAML report")
}
