package splitter

import (
	"strings"

	"github.com/antlr4-go/antlr/v4"

	"github.com/nsxbet/sqlcheck/pkg/types"
)

// newSingleSQL builds the statement spanning tokens[start:stop+1]. A
// terminating semicolon is not part of Text.
func newSingleSQL(stream *antlr.CommonTokenStream, tokens []antlr.Token, start, stop, semicolonType int) SingleSQL {
	last := stop
	if tokens[last].GetTokenType() == semicolonType {
		last--
	}
	var text string
	if last >= start {
		text = strings.TrimSpace(stream.GetTextFromTokens(tokens[start], tokens[last]))
	}
	return SingleSQL{
		Text:  text,
		Start: firstDefaultChannelTokenPosition(tokens[start : stop+1]),
		End: &types.Position{
			Line:   int32(tokens[stop].GetLine()),
			Column: int32(tokens[stop].GetColumn()),
		},
		Empty: isEmpty(tokens[start:stop+1], semicolonType),
	}
}

func firstDefaultChannelTokenPosition(tokens []antlr.Token) *types.Position {
	for _, token := range tokens {
		if token.GetChannel() == antlr.TokenDefaultChannel {
			return &types.Position{
				Line:   int32(token.GetLine()),
				Column: int32(token.GetColumn()),
			}
		}
	}
	return &types.Position{Line: 1, Column: 0}
}

func getDefaultChannelTokenType(tokens []antlr.Token, base int, offset int) int {
	current := base
	step := 1
	remaining := offset
	if offset < 0 {
		step = -1
		remaining = -offset
	}
	for remaining != 0 {
		current += step
		if current < 0 || current >= len(tokens) {
			return antlr.TokenEOF
		}

		if tokens[current].GetChannel() == antlr.TokenDefaultChannel {
			remaining--
		}
	}

	return tokens[current].GetTokenType()
}

func isEmpty(tokens []antlr.Token, semicolonType int) bool {
	for _, token := range tokens {
		if token.GetChannel() == antlr.TokenDefaultChannel &&
			token.GetTokenType() != semicolonType &&
			token.GetTokenType() != antlr.TokenEOF {
			return false
		}
	}
	return true
}
