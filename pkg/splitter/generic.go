package splitter

import (
	"strings"

	"github.com/nsxbet/sqlcheck/pkg/types"
)

const (
	noComment = iota
	lineComment
	blockComment
)

// SplitGeneric splits statement on delimiter. Delimiters inside single,
// double, or backtick quotes and inside -- or /* */ comments are ignored, and
// a line of the form "DELIMITER xx" at a statement boundary switches the
// delimiter. It never fails.
func SplitGeneric(statement, delimiter string) []SingleSQL {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	var (
		result  []SingleSQL
		quote   byte
		comment = noComment
		code    = false
		start   = 0
		line    = int32(1)
		column  = int32(0)
		i       = 0
	)

	flush := func(end int) {
		text := statement[start:end]
		trimmed := strings.TrimSpace(text)
		if trimmed != "" {
			startLine, startColumn := positionOf(statement, start+strings.Index(text, trimmed[:1]))
			result = append(result, SingleSQL{
				Text:  trimmed,
				Start: &types.Position{Line: startLine, Column: startColumn},
				End:   &types.Position{Line: line, Column: column},
				Empty: !code,
			})
		}
		code = false
	}

	advance := func(n int) {
		for _, c := range []byte(statement[i : i+n]) {
			if c == '\n' {
				line++
				column = 0
			} else {
				column++
			}
		}
		i += n
	}

	for i < len(statement) {
		c := statement[i]
		rest := statement[i:]

		if quote == 0 && comment == noComment && !code && IsDelimiter(rest) {
			eol := strings.IndexByte(rest, '\n')
			if eol < 0 {
				eol = len(rest)
			}
			if d, err := ExtractDelimiter(rest[:eol]); err == nil {
				delimiter = d
				advance(eol)
				start = i
				continue
			}
		}

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case comment == lineComment:
			if c == '\n' {
				comment = noComment
			}
		case comment == blockComment:
			if strings.HasPrefix(rest, "*/") {
				comment = noComment
				advance(2)
				continue
			}
		case strings.HasPrefix(rest, "--"):
			comment = lineComment
		case strings.HasPrefix(rest, "/*"):
			comment = blockComment
			advance(2)
			continue
		case c == '\'' || c == '"' || c == '`':
			quote = c
			code = true
		case strings.HasPrefix(rest, delimiter):
			flush(i)
			advance(len(delimiter))
			start = i
			continue
		default:
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
				code = true
			}
		}
		advance(1)
	}
	flush(len(statement))

	return result
}

func positionOf(s string, offset int) (int32, int32) {
	if offset < 0 {
		offset = 0
	}
	prefix := s[:offset]
	line := int32(strings.Count(prefix, "\n") + 1)
	column := int32(offset)
	if nl := strings.LastIndexByte(prefix, '\n'); nl >= 0 {
		column = int32(offset - nl - 1)
	}
	return line, column
}
