// Package splitter cuts a SQL script into single statements.
//
// The mysql and postgres dialects use the ANTLR lexers of their grammars to
// find statement boundaries, so delimiters inside strings, comments, and
// stored program bodies are left alone. The generic dialect splits on a
// plain delimiter and only knows about quotes. Statements are never parsed.
package splitter

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/nsxbet/sqlcheck/pkg/types"
)

// DefaultDelimiter terminates statements unless configured otherwise.
const DefaultDelimiter = ";"

// Dialect selects the statement boundary rules.
type Dialect string

const (
	DialectGeneric  Dialect = "generic"
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// AllDialects lists the supported dialects.
var AllDialects = []Dialect{DialectGeneric, DialectMySQL, DialectPostgres}

// ParseDialect converts a dialect name into a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "generic", "ansi", "sql":
		return DialectGeneric, nil
	case "mysql", "mariadb", "tidb":
		return DialectMySQL, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	default:
		return "", errors.Errorf("unsupported dialect %q (want generic, mysql or postgres)", s)
	}
}

// SingleSQL is one statement cut from a script.
type SingleSQL struct {
	// Text is the statement, trimmed of surrounding whitespace.
	Text string
	// Start is the position of the first significant token. Lines are
	// one based, columns zero based.
	Start *types.Position
	// End is the position of the last token.
	End *types.Position
	// Empty is true when the statement holds only comments and delimiters.
	Empty bool
}

// Split cuts statement using dialect. A dialect lexer that fails falls back
// to the generic splitter. Empty statements are dropped.
func Split(statement string, dialect Dialect, delimiter string) []SingleSQL {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	var (
		list []SingleSQL
		err  error
	)
	switch dialect {
	case DialectMySQL:
		list, err = SplitMySQL(statement, delimiter)
	case DialectPostgres:
		list, err = SplitPostgreSQL(statement, delimiter)
	default:
		list = SplitGeneric(statement, delimiter)
	}
	if err != nil {
		slog.Warn("failed to split statements with dialect lexer, falling back to generic",
			"dialect", string(dialect),
			"error", err)
		list = SplitGeneric(statement, delimiter)
	}

	result := list[:0]
	for _, sql := range list {
		if sql.Empty || strings.TrimSpace(sql.Text) == "" {
			continue
		}
		result = append(result, sql)
	}
	return result
}

var (
	delimiterRegex        = regexp.MustCompile(`(?i)^\s*DELIMITER\s+`)
	extractDelimiterRegex = regexp.MustCompile(`(?i)^\s*DELIMITER\s+(?P<DELIMITER>[^\s\\]+)\s*`)
)

// IsDelimiter returns true if the statement is a delimiter statement.
func IsDelimiter(stmt string) bool {
	return delimiterRegex.MatchString(stmt)
}

// ExtractDelimiter extracts the delimiter from the delimiter statement.
func ExtractDelimiter(stmt string) (string, error) {
	matchList := extractDelimiterRegex.FindStringSubmatch(stmt)
	index := extractDelimiterRegex.SubexpIndex("DELIMITER")
	if index >= 0 && index < len(matchList) {
		return matchList[index], nil
	}
	return "", errors.Errorf("cannot extract delimiter from %q", stmt)
}
