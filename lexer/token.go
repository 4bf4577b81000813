// Package lexer tokenizes Kusto/KQL-style query source into a linear token
// stream. Tokens carry kind tags and byte spans into the original source;
// no token ever copies or owns source bytes.
package lexer

// TokenKind is the outermost classification of a Token. The grouped-category
// model (Punctuation/Keyword/Literal/Identifier plus the three distinguished
// kinds) is authoritative; sub-kind payloads live alongside it on Token.
type TokenKind uint8

const (
	Punctuation TokenKind = iota
	Keyword
	Literal
	Identifier
	Directive
	Bad
	EndOfFile
)

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

var tokenKindNames = [...]string{
	Punctuation: "Punctuation",
	Keyword:     "Keyword",
	Literal:     "Literal",
	Identifier:  "Identifier",
	Directive:   "Directive",
	Bad:         "Bad",
	EndOfFile:   "EndOfFile",
}

// PunctKind enumerates punctuation spellings recognized by the punctuation
// scanner (spec §4.3).
type PunctKind uint8

const (
	OpenParen PunctKind = iota
	CloseParen
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace
	Bar
	LessThanBar
	Dot
	DotDot
	Plus
	Minus
	Star
	Slash
	Percent
	LessThan
	LessThanOrEqual
	LessThanGreaterThan
	GreaterThan
	GreaterThanOrEqual
	Equal
	EqualEqual
	FatArrow
	EqualTilde
	BangEqual
	BangTilde
	Colon
	Semicolon
	Comma
	At
	Question
)

var punctNames = [...]string{
	OpenParen: "(", CloseParen: ")", OpenBracket: "[", CloseBracket: "]",
	OpenBrace: "{", CloseBrace: "}", Bar: "|", LessThanBar: "<|",
	Dot: ".", DotDot: "..", Plus: "+", Minus: "-", Star: "*", Slash: "/",
	Percent: "%", LessThan: "<", LessThanOrEqual: "<=",
	LessThanGreaterThan: "<>", GreaterThan: ">", GreaterThanOrEqual: ">=",
	Equal: "=", EqualEqual: "==", FatArrow: "=>", EqualTilde: "=~",
	BangEqual: "!=", BangTilde: "!~", Colon: ":", Semicolon: ";",
	Comma: ",", At: "@", Question: "?",
}

func (p PunctKind) String() string {
	if int(p) < len(punctNames) {
		return punctNames[p]
	}
	return "?"
}

// LiteralKind is the sub-kind of a Literal token (spec §3).
type LiteralKind uint8

const (
	Boolean LiteralKind = iota
	Long
	Int
	Real
	Decimal
	String
	DateTime
	Timespan
	Guid
	RawGuid
)

var literalKindNames = [...]string{
	Boolean: "Boolean", Long: "Long", Int: "Int", Real: "Real",
	Decimal: "Decimal", String: "String", DateTime: "DateTime",
	Timespan: "Timespan", Guid: "Guid", RawGuid: "RawGuid",
}

func (k LiteralKind) String() string {
	if int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return "Unknown"
}

// Span is a half-open byte range into a Source. Spans never split a UTF-8
// code point (invariant P3).
type Span struct {
	Start int
	End   int
}

// Len returns the width of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Text slices src by the span. Callers must pass the same source the span
// was produced against.
func (s Span) Text(src []byte) string { return string(src[s.Start:s.End]) }

// Token is a single element of a TokenStream. At most one of Punct, Keyword,
// or LitKind is meaningful, selected by Kind; Identifier, Directive, Bad and
// EndOfFile tokens use none of them.
type Token struct {
	Kind    TokenKind
	Punct   PunctKind
	Keyword KeywordKind
	LitKind LiteralKind

	// Trivia is the whitespace/comment run immediately preceding Text.
	// It may be empty but is never nil-like (Start==End is valid).
	Trivia Span

	// Text is the token's own source bytes. Non-empty except for EndOfFile
	// (invariant I3).
	Text Span
}

// TokenStream is the tokenizer's output: an ordered token sequence plus the
// source it was produced from (spec §6).
type TokenStream struct {
	Tokens []Token
	Source []byte
}
