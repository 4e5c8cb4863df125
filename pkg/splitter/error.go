package splitter

import (
	"fmt"
	"strings"

	"github.com/antlr4-go/antlr/v4"

	"github.com/nsxbet/sqlcheck/pkg/types"
)

// LexError reports input a dialect lexer could not tokenize.
type LexError struct {
	Position *types.Position
	Message  string
	// Near is the offending source line.
	Near string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("syntax error at line %d:%d %s near %q", e.Position.Line, e.Position.Column, e.Message, e.Near)
}

// lexErrorListener keeps the first error an ANTLR lexer reports.
type lexErrorListener struct {
	*antlr.DefaultErrorListener
	statement string
	err       *LexError
}

func newLexErrorListener(statement string) *lexErrorListener {
	return &lexErrorListener{
		DefaultErrorListener: antlr.NewDefaultErrorListener(),
		statement:            statement,
	}
}

func (l *lexErrorListener) SyntaxError(_ antlr.Recognizer, _ any, line, column int, msg string, _ antlr.RecognitionException) {
	if l.err != nil {
		return
	}
	l.err = &LexError{
		Position: &types.Position{Line: int32(line), Column: int32(column)},
		Message:  msg,
		Near:     sourceLine(l.statement, line),
	}
}

func sourceLine(s string, n int) string {
	lines := strings.Split(s, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[n-1])
}
