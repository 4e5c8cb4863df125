// Package statement holds the normalized form of a single SQL statement and
// the lexical facts the rule catalog is guarded on.
//
// Classification is substring based, not token based: "create table" inside
// an identifier or a string literal counts. Rules depend on that exact
// behavior, so it is kept. Lengths are likewise measured in bytes of the
// normalized text, not characters: a multi-byte UTF-8 statement reaches the
// spaghetti threshold with fewer than that many characters.
package statement

import (
	"strings"
	"unicode"

	"github.com/nsxbet/sqlcheck/pkg/types"
)

const (
	createTableKeyword = "create table"
	alterTableKeyword  = "alter table"
)

// Statement is one normalized SQL statement. It is immutable once built.
type Statement struct {
	raw      string
	text     string
	position *types.Position

	isDDL         bool
	isCreateTable bool
	tableName     string
	hasTableName  bool
}

// New normalizes raw and computes the classifier facts once.
func New(raw string) *Statement {
	return NewAt(raw, nil)
}

// NewAt is New with the statement's source position attached.
func NewAt(raw string, position *types.Position) *Statement {
	text := Normalize(raw)
	name, ok := ExtractTableName(text)
	return &Statement{
		raw:           raw,
		text:          text,
		position:      position,
		isDDL:         IsDDL(text),
		isCreateTable: IsCreateTable(text),
		tableName:     name,
		hasTableName:  ok,
	}
}

// Raw returns the statement as it was read.
func (s *Statement) Raw() string { return s.raw }

// Text returns the normalized statement text.
func (s *Statement) Text() string { return s.text }

// Len returns the length of the normalized text in bytes.
func (s *Statement) Len() int { return len(s.text) }

// Position returns the source position, or nil if unknown.
func (s *Statement) Position() *types.Position { return s.position }

// IsDDL reports whether the statement creates or alters a table.
func (s *Statement) IsDDL() bool { return s.isDDL }

// IsCreateTable reports whether the statement creates a table.
func (s *Statement) IsCreateTable() bool { return s.isCreateTable }

// TableName returns the table created by the statement, if any.
func (s *Statement) TableName() (string, bool) { return s.tableName, s.hasTableName }

// Normalize lowercases raw and collapses every run of whitespace into a
// single space, trimming both ends.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	space := false
	for _, r := range raw {
		if unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// IsDDL reports whether text contains "create table" or "alter table".
func IsDDL(text string) bool {
	return strings.Contains(text, createTableKeyword) || strings.Contains(text, alterTableKeyword)
}

// IsCreateTable reports whether text contains "create table".
func IsCreateTable(text string) bool {
	return strings.Contains(text, createTableKeyword)
}

// ExtractTableName returns the token following "create table", up to the
// next whitespace or opening parenthesis. Case is preserved.
func ExtractTableName(text string) (string, bool) {
	idx := strings.Index(text, createTableKeyword)
	if idx < 0 {
		return "", false
	}

	rest := strings.TrimLeftFunc(text[idx+len(createTableKeyword):], unicode.IsSpace)
	end := strings.IndexFunc(rest, func(r rune) bool {
		return unicode.IsSpace(r) || r == '('
	})
	if end >= 0 {
		rest = rest[:end]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}
