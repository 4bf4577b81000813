package lspserver

import "github.com/faridmehrhesam/kusto-language/lexer"

// semanticTokenTypeNames is the legend advertised in ServerCapabilities;
// indices here are the tokenType values encodeSemanticTokens emits.
var semanticTokenTypeNames = []string{
	"keyword",    // 0
	"operator",   // 1
	"number",     // 2
	"string",     // 3
	"variable",   // 4
	"comment",    // 5 (unused: the lexer folds comments into trivia)
}

const (
	semKeyword = iota
	semOperator
	semNumber
	semString
	semVariable
)

func semanticTypeFor(tok lexer.Token) (int, bool) {
	switch tok.Kind {
	case lexer.Keyword:
		return semKeyword, true
	case lexer.Punctuation:
		return semOperator, true
	case lexer.Identifier:
		return semVariable, true
	case lexer.Literal:
		switch tok.LitKind {
		case lexer.String:
			return semString, true
		default:
			return semNumber, true
		}
	default:
		return 0, false
	}
}

// encodeSemanticTokens re-lexes source and emits the LSP
// semanticTokens/full relative-encoded uint32 array: each token contributes
// (deltaLine, deltaStartChar, length, tokenType, tokenModifiers).
func encodeSemanticTokens(source []byte) []uint32 {
	ts := lexer.Lex(source, lexer.DefaultConfig())
	lines := lineStarts(source)

	data := make([]uint32, 0, len(ts.Tokens)*5)
	prevLine, prevChar := 0, 0

	for _, tok := range ts.Tokens {
		typ, ok := semanticTypeFor(tok)
		if !ok {
			continue
		}
		line, char := position(lines, tok.Text.Start)
		length := tok.Text.Len()

		deltaLine := line - prevLine
		deltaChar := char
		if deltaLine == 0 {
			deltaChar = char - prevChar
		}

		data = append(data, uint32(deltaLine), uint32(deltaChar), uint32(length), uint32(typ), 0)
		prevLine, prevChar = line, char
	}

	return data
}

// lineStarts returns the byte offset of the first byte of each line.
func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// position converts a byte offset into a zero-based (line, char) pair
// given the precomputed line-start table. char is a byte offset within the
// line, not a UTF-16 code unit count; the lexer's no-Unicode-identifiers
// non-goal means source is effectively ASCII outside of string bodies, so
// this is the same unit the LSP client expects in the common case.
func position(lines []int, offset int) (int, int) {
	line := 0
	for i, start := range lines {
		if start > offset {
			break
		}
		line = i
	}
	return line, offset - lines[line]
}
