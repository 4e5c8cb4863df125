package splitter

import (
	"github.com/antlr4-go/antlr/v4"
	parser "github.com/gedhean/mysql-parser"
	"github.com/pkg/errors"
)

var errUnbalancedBlock = errors.New("invalid statement: failed to split multiple statements")

// SplitMySQL splits statement with the MySQL lexer. DELIMITER statements and
// stored program bodies (BEGIN ... END, IF, LOOP, WHILE, REPEAT, CASE) are
// honored.
func SplitMySQL(statement, delimiter string) ([]SingleSQL, error) {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}

	lexer := parser.NewMySQLLexer(antlr.NewInputStream(statement))
	listener := newLexErrorListener(statement)
	lexer.RemoveErrorListeners()
	lexer.AddErrorListener(listener)

	stream := antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel)
	stream.Fill()
	if listener.err != nil {
		return nil, errors.Wrap(listener.err, "failed to tokenize MySQL statement")
	}

	if delimiter != DefaultDelimiter || hasDelimiterStatement(stream) {
		return splitDelimiterModeSQL(stream, delimiter)
	}
	return splitMySQLStatement(stream)
}

func splitDelimiterModeSQL(stream *antlr.CommonTokenStream, delimiter string) ([]SingleSQL, error) {
	var result []SingleSQL
	tokens := stream.GetAllTokens()
	start := 0

	i := 0
	for i < len(tokens) {
		token := tokens[i]
		if token.GetChannel() == antlr.TokenDefaultChannel && token.GetTokenType() == parser.MySQLLexerDELIMITER_SYMBOL {
			newStart, delimiterStatement := extractDelimiterStatement(stream, i)
			var err error
			delimiter, err = ExtractDelimiter(delimiterStatement)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to extract delimiter from statement: %s", delimiterStatement)
			}
			start = newStart
			i = newStart
			continue
		}

		if delimiter == DefaultDelimiter && token.GetTokenType() == parser.MySQLLexerSEMICOLON_SYMBOL {
			result = append(result, newSingleSQL(stream, tokens, start, i, parser.MySQLLexerSEMICOLON_SYMBOL))
			i++
			start = i
			continue
		}

		if token.GetChannel() != antlr.TokenDefaultChannel {
			i++
			continue
		}

		if newStart, ok := tryMatchDelimiter(stream, i, delimiter); ok {
			if i > start {
				result = append(result, newSingleSQL(stream, tokens, start, i-1, parser.MySQLLexerSEMICOLON_SYMBOL))
			}
			i = newStart
			start = newStart
			continue
		}

		i++
	}

	endPos := len(tokens) - 1
	if start < endPos {
		result = append(result, newSingleSQL(stream, tokens, start, endPos-1, parser.MySQLLexerSEMICOLON_SYMBOL))
	}

	return result, nil
}

func tryMatchDelimiter(stream *antlr.CommonTokenStream, pos int, delimiter string) (int, bool) {
	matchPos := 0
	length := len(stream.GetAllTokens())
	for i := pos; i < length; i++ {
		text := stream.GetTextFromInterval(antlr.Interval{Start: i, Stop: i})
		for j := 0; j < len(text); j++ {
			if j+matchPos >= len(delimiter) || text[j] != delimiter[j+matchPos] {
				return 0, false
			}
		}
		matchPos += len(text)
		if matchPos == len(delimiter) {
			return i + 1, true
		}
	}

	return 0, false
}

func extractDelimiterStatement(stream *antlr.CommonTokenStream, pos int) (int, string) {
	length := len(stream.GetAllTokens())
	for i := pos; i < length; i++ {
		if (stream.Get(i).GetTokenType() == parser.MySQLLexerWHITESPACE && stream.Get(i).GetText() == "\n") ||
			(stream.Get(i).GetTokenType() == antlr.TokenEOF) {
			return i + 1, stream.GetTextFromTokens(stream.Get(pos), stream.Get(i-1))
		}
	}

	return length, stream.GetTextFromTokens(stream.Get(pos), stream.Get(length-1))
}

func hasDelimiterStatement(stream *antlr.CommonTokenStream) bool {
	for _, token := range stream.GetAllTokens() {
		if token.GetChannel() == antlr.TokenDefaultChannel && token.GetTokenType() == parser.MySQLLexerDELIMITER_SYMBOL {
			return true
		}
	}
	return false
}

// splitMySQLStatement splits on top level semicolons. Semicolons inside a
// stored program block belong to the statement that opened the block.
func splitMySQLStatement(stream *antlr.CommonTokenStream) ([]SingleSQL, error) {
	tokens := stream.GetAllTokens()
	// Open block positions by opening keyword. CASE shares the BEGIN stack
	// since both close with a bare END.
	open := make(map[int][]int)
	var semicolons []int

	for i, token := range tokens {
		if token.GetChannel() != antlr.TokenDefaultChannel {
			continue
		}
		prev := getDefaultChannelTokenType(tokens, i, -1)
		next := getDefaultChannelTokenType(tokens, i, 1)

		switch kind := token.GetTokenType(); kind {
		case parser.MySQLParserBEGIN_SYMBOL:
			if next == parser.MySQLParserWORK_SYMBOL || next == parser.MySQLParserSEMICOLON_SYMBOL ||
				next == antlr.TokenEOF || prev == parser.MySQLParserXA_SYMBOL {
				continue
			}
			open[parser.MySQLParserBEGIN_SYMBOL] = append(open[parser.MySQLParserBEGIN_SYMBOL], i)
		case parser.MySQLParserCASE_SYMBOL:
			if prev != parser.MySQLParserEND_SYMBOL {
				open[parser.MySQLParserBEGIN_SYMBOL] = append(open[parser.MySQLParserBEGIN_SYMBOL], i)
			}
		case parser.MySQLParserIF_SYMBOL:
			if prev != parser.MySQLParserEND_SYMBOL && next != parser.MySQLParserEXISTS_SYMBOL {
				open[kind] = append(open[kind], i)
			}
		case parser.MySQLParserLOOP_SYMBOL, parser.MySQLParserWHILE_SYMBOL, parser.MySQLParserREPEAT_SYMBOL:
			if prev != parser.MySQLParserEND_SYMBOL {
				open[kind] = append(open[kind], i)
			}
		case parser.MySQLParserEND_SYMBOL:
			if prev == parser.MySQLParserXA_SYMBOL {
				continue
			}
			block := parser.MySQLParserBEGIN_SYMBOL
			switch next {
			case parser.MySQLParserIF_SYMBOL, parser.MySQLParserLOOP_SYMBOL,
				parser.MySQLParserWHILE_SYMBOL, parser.MySQLParserREPEAT_SYMBOL:
				block = next
			}
			stack := open[block]
			if len(stack) == 0 {
				return nil, errUnbalancedBlock
			}
			opener := stack[len(stack)-1]
			// IF(a, b, c) and REPEAT(s, n) are also functions that open no
			// block, so those stacks are matched from the bottom.
			if block == parser.MySQLParserIF_SYMBOL || block == parser.MySQLParserREPEAT_SYMBOL {
				opener = stack[0]
			}
			semicolons = semicolonsBefore(semicolons, opener)
			open[block] = stack[:len(stack)-1]
		case parser.MySQLParserSEMICOLON_SYMBOL:
			semicolons = append(semicolons, i)
		}
	}

	var result []SingleSQL
	start := 0
	for _, pos := range semicolons {
		result = append(result, newSingleSQL(stream, tokens, start, pos, parser.MySQLLexerSEMICOLON_SYMBOL))
		start = pos + 1
	}
	// The last statement may end at EOF instead of a semicolon.
	if eof := len(tokens) - 1; start < eof {
		result = append(result, newSingleSQL(stream, tokens, start, eof-1, parser.MySQLLexerSEMICOLON_SYMBOL))
	}
	return result, nil
}

// semicolonsBefore drops the semicolons at or after pos.
func semicolonsBefore(semicolons []int, pos int) []int {
	for i := len(semicolons) - 1; i >= 0; i-- {
		if semicolons[i] < pos {
			return semicolons[:i+1]
		}
	}
	return semicolons[:0]
}
