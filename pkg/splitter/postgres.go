package splitter

import (
	"github.com/antlr4-go/antlr/v4"
	parser "github.com/bytebase/parser/postgresql"
	"github.com/pkg/errors"
)

// SplitPostgreSQL splits statement on top level semicolons found by the
// PostgreSQL lexer. Semicolons inside strings, dollar quoted bodies, and
// comments never end a statement. A delimiter other than ";" is not
// supported by the lexer and is reported as an error.
func SplitPostgreSQL(statement, delimiter string) ([]SingleSQL, error) {
	if delimiter != "" && delimiter != DefaultDelimiter {
		return nil, errors.Errorf("postgres dialect does not support delimiter %q", delimiter)
	}

	lexer := parser.NewPostgreSQLLexer(antlr.NewInputStream(statement))
	listener := newLexErrorListener(statement)
	lexer.RemoveErrorListeners()
	lexer.AddErrorListener(listener)

	stream := antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel)
	stream.Fill()
	if listener.err != nil {
		return nil, errors.Wrap(listener.err, "failed to tokenize PostgreSQL statement")
	}

	var result []SingleSQL
	tokens := stream.GetAllTokens()
	start := 0
	for i, token := range tokens {
		if token.GetChannel() != antlr.TokenDefaultChannel || token.GetTokenType() != parser.PostgreSQLLexerSEMI {
			continue
		}
		result = append(result, newSingleSQL(stream, tokens, start, i, parser.PostgreSQLLexerSEMI))
		start = i + 1
	}
	eofPos := len(tokens) - 1
	if start < eofPos {
		result = append(result, newSingleSQL(stream, tokens, start, eofPos-1, parser.PostgreSQLLexerSEMI))
	}
	return result, nil
}
