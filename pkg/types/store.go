package types

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// Severity represents the severity level of a rule
type Severity int32

const (
	SeverityUnspecified Severity = 0
	SeverityInfo        Severity = 1
	SeverityWarning     Severity = 2
	SeverityError       Severity = 3
)

// AllSeverities lists the reportable severities from lowest to highest.
var AllSeverities = []Severity{SeverityInfo, SeverityWarning, SeverityError}

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "UNSPECIFIED"
	}
}

// ParseSeverity converts a severity name into a Severity.
// Names are case-insensitive; "warning" is accepted as an alias of "warn".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO", "HINT":
		return SeverityInfo, nil
	case "WARN", "WARNING":
		return SeverityWarning, nil
	case "ERROR":
		return SeverityError, nil
	default:
		return SeverityUnspecified, errors.Errorf("unknown severity %q (want info, warn or error)", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for Severity
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	v, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Severity
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseSeverity(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalYAML implements yaml.Marshaler for Severity
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// MarshalJSON implements json.Marshaler for Severity
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Category groups rules by the kind of anti-pattern they detect
type Category int32

const (
	CategoryUnspecified Category = 0
	CategoryLogical     Category = 1
	CategoryPhysical    Category = 2
	CategoryQuery       Category = 3
	CategoryApplication Category = 4
)

// AllCategories lists every category in catalog order.
var AllCategories = []Category{CategoryLogical, CategoryPhysical, CategoryQuery, CategoryApplication}

func (c Category) String() string {
	switch c {
	case CategoryLogical:
		return "logical"
	case CategoryPhysical:
		return "physical"
	case CategoryQuery:
		return "query"
	case CategoryApplication:
		return "application"
	default:
		return "unspecified"
	}
}

// Label returns the heading used by the text report.
func (c Category) Label() string {
	switch c {
	case CategoryLogical:
		return "LOGICAL DATABASE DESIGN ANTI-PATTERN"
	case CategoryPhysical:
		return "PHYSICAL DATABASE DESIGN ANTI-PATTERN"
	case CategoryQuery:
		return "QUERY ANTI-PATTERN"
	case CategoryApplication:
		return "APPLICATION ANTI-PATTERN"
	default:
		return "UNSPECIFIED"
	}
}

// ParseCategory converts a category name into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "logical", "logical-design", "logical_database_design":
		return CategoryLogical, nil
	case "physical", "physical-design", "physical_database_design":
		return CategoryPhysical, nil
	case "query":
		return CategoryQuery, nil
	case "application", "app":
		return CategoryApplication, nil
	default:
		return CategoryUnspecified, errors.Errorf("unknown category %q (want logical, physical, query or application)", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for Category
func (c *Category) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	v, err := ParseCategory(str)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Category
func (c *Category) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseCategory(str)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalYAML implements yaml.Marshaler for Category
func (c Category) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// MarshalJSON implements json.Marshaler for Category
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Position represents a position in the source code
type Position struct {
	Line   int32 `json:"line"   yaml:"line"`
	Column int32 `json:"column" yaml:"column"`
}
