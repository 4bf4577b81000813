package lexer

// Config controls a handful of lexing behaviors the grammar itself leaves
// open (spec §6). Setters return an updated Config by value, matching the
// original implementation's builder methods.
type Config struct {
	// AlwaysProduceEndTokens, when true, appends a trailing EndOfFile token
	// even when the source is empty or ends exactly on a token boundary.
	AlwaysProduceEndTokens bool

	// AllowLiteralsWithLineBreaks, when true, lets a single- or double-quoted
	// string literal's body span a line break instead of stopping the literal
	// at end of line. Verbatim (@-prefixed) and fenced strings span line
	// breaks whatever this is set to.
	AllowLiteralsWithLineBreaks bool
}

// DefaultConfig returns the default lexing configuration: end tokens are
// always produced, and non-verbatim quoted string literals stop at a line
// break.
func DefaultConfig() Config {
	return Config{
		AlwaysProduceEndTokens:      true,
		AllowLiteralsWithLineBreaks: false,
	}
}

// WithAlwaysProduceEndTokens returns a copy of c with AlwaysProduceEndTokens set.
func (c Config) WithAlwaysProduceEndTokens(v bool) Config {
	c.AlwaysProduceEndTokens = v
	return c
}

// WithAllowLiteralsWithLineBreaks returns a copy of c with AllowLiteralsWithLineBreaks set.
func (c Config) WithAllowLiteralsWithLineBreaks(v bool) Config {
	c.AllowLiteralsWithLineBreaks = v
	return c
}

// Lex tokenizes source under cfg into a TokenStream (spec §4.9, §6). It never
// returns an error: malformed input becomes Bad tokens or best-effort
// literal spans, never an abort (spec §7).
func Lex(source []byte, cfg Config) TokenStream {
	// A rough average-bytes-per-token estimate sizes the slice once instead
	// of growing it token by token on typical query text.
	tokens := make([]Token, 0, len(source)/4+4)

	pos := 0
	for {
		triviaStart := pos
		pos = scanTrivia(source, pos)
		trivia := Span{triviaStart, pos}

		if pos >= len(source) {
			if cfg.AlwaysProduceEndTokens || !trivia.Empty() {
				tokens = append(tokens, Token{
					Kind:   EndOfFile,
					Trivia: trivia,
					Text:   Span{pos, pos},
				})
			}
			break
		}

		start := pos
		tok, end := scanOne(source, pos, cfg)
		tok.Trivia = trivia
		tok.Text = Span{start, end}
		tokens = append(tokens, tok)
		pos = end
	}

	return TokenStream{Tokens: tokens, Source: source}
}

// scanOne dispatches on the byte at pos and scans exactly one token,
// following the fixed priority order from spec §4.9: string-literal start
// (including the hidden/verbatim/fenced prefix forms), '@' verbatim prefix,
// '#' directive, identifier-start path (hidden-string special case, longest
// keyword + goo lookahead, raw GUID, identifier), digit path (raw GUID,
// real, timespan, long, digit-led identifier), then punctuation, and
// finally a single-code-point Bad token.
func scanOne(src []byte, pos int, cfg Config) (Token, int) {
	b := src[pos]

	switch {
	case matchesMultiLineFenceStart(src, pos):
		return scanFencedStringFrom(src, pos)

	case b == '"' || b == '\'':
		end := scanStringLiteralContent(src, pos+1, b, cfg.AllowLiteralsWithLineBreaks)
		return Token{Kind: Literal, LitKind: String}, end

	case b == '@':
		if pos+1 < len(src) && isStringLiteralStartQuote(src[pos+1]) {
			return scanVerbatimFrom(src, pos+1)
		}
		return Token{Kind: Punctuation, Punct: At}, pos + 1

	case b == '#':
		return Token{Kind: Directive}, lineEnd(src, pos)

	case b == 'h' || b == 'H':
		if pos+1 < len(src) && (src[pos+1] == '@' || isStringLiteralStartQuote(src[pos+1]) || matchesMultiLineFenceStart(src, pos+1)) {
			tok, end := scanOne(src, pos+1, cfg)
			return tok, end
		}
		return scanIdentifierStartPath(src, pos)

	case isIdentifierStart(b):
		return scanIdentifierStartPath(src, pos)

	case isDigit(b):
		return scanDigitPath(src, pos)

	default:
		if tok, end, ok := scanPunctuation(src, pos); ok {
			return tok, end
		}
		// Bang-prefixed keywords (!in, !has, ...) start with a byte that is
		// neither an identifier start nor punctuation on its own.
		if kw, l, ok := longestKeyword(src, pos); ok {
			if next := pos + l; next >= len(src) || !isIdentifierChar(src[next]) {
				return Token{Kind: Keyword, Keyword: kw}, next
			}
		}
		return Token{Kind: Bad}, scanBad(src, pos)
	}
}

func matchesMultiLineFenceStart(src []byte, pos int) bool {
	for _, fence := range multiLineFences {
		if matchesSequence(src, pos, fence) {
			return true
		}
	}
	return false
}

func scanFencedStringFrom(src []byte, pos int) (Token, int) {
	for _, fence := range multiLineFences {
		if matchesSequence(src, pos, fence) {
			return Token{Kind: Literal, LitKind: String}, scanMultiLineStringLiteral(src, pos, fence)
		}
	}
	return Token{Kind: Bad}, scanBad(src, pos)
}

func scanVerbatimFrom(src []byte, pos int) (Token, int) {
	if matchesMultiLineFenceStart(src, pos) {
		return scanFencedStringFrom(src, pos)
	}
	quote := src[pos]
	return Token{Kind: Literal, LitKind: String}, scanVerbatimStringLiteral(src, pos+1, quote)
}

// scanIdentifierStartPath implements the identifier-start branch of the
// priority order: boolean literal spellings first (they win over the
// keyword table entirely), then longest keyword match (with goo-literal
// lookahead), then raw GUID (hex letters are identifier-start characters
// too), then a plain identifier.
func scanIdentifierStartPath(src []byte, pos int) (Token, int) {
	if _, l, ok := boolLiteralValue(src, pos); ok {
		return Token{Kind: Literal, LitKind: Boolean}, pos + l
	}

	if kw, l, ok := longestKeyword(src, pos); ok {
		next := pos + l
		if next >= len(src) || !isIdentifierChar(src[next]) {
			if litKind, gooOK := GooLiteralKind(kw); gooOK && next < len(src) && src[next] == '(' {
				end := scanGooBody(src, next)
				return Token{Kind: Literal, LitKind: litKind}, end
			}
			return Token{Kind: Keyword, Keyword: kw}, next
		}
	}

	if end, ok := scanRawGuidLiteral(src, pos); ok {
		return Token{Kind: Literal, LitKind: RawGuid}, end
	}

	return Token{Kind: Identifier}, scanIdentifier(src, pos)
}

// scanGooBody consumes a goo constructor call's parenthesized body given pos
// at the opening '(', tracking nesting depth so an inner ')' does not close
// the literal early.
func scanGooBody(src []byte, pos int) int {
	depth := 0
	for pos < len(src) {
		switch src[pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return pos + 1
			}
		}
		pos++
	}
	return pos
}

func scanDigitPath(src []byte, pos int) (Token, int) {
	r := scanNumericOrTemporal(src, pos)
	if r.isIdentifier {
		return Token{Kind: Identifier}, r.end
	}
	return Token{Kind: Literal, LitKind: r.kind}, r.end
}

// scanPunctuation matches the longest recognized punctuation spelling at
// pos (spec §4.3). Multi-byte spellings are tried before any of their
// single-byte prefixes.
func scanPunctuation(src []byte, pos int) (Token, int, bool) {
	multi := []struct {
		spelling string
		kind     PunctKind
	}{
		{"<|", LessThanBar},
		{"<=", LessThanOrEqual},
		{"<>", LessThanGreaterThan},
		{">=", GreaterThanOrEqual},
		{"==", EqualEqual},
		{"=>", FatArrow},
		{"=~", EqualTilde},
		{"!=", BangEqual},
		{"!~", BangTilde},
		{"..", DotDot},
	}
	for _, m := range multi {
		if matchesSequence(src, pos, m.spelling) {
			return Token{Kind: Punctuation, Punct: m.kind}, pos + len(m.spelling), true
		}
	}

	single := map[byte]PunctKind{
		'(': OpenParen, ')': CloseParen, '[': OpenBracket, ']': CloseBracket,
		'{': OpenBrace, '}': CloseBrace, '|': Bar, '.': Dot, '+': Plus,
		'-': Minus, '*': Star, '/': Slash, '%': Percent, '<': LessThan,
		'>': GreaterThan, '=': Equal, ':': Colon, ';': Semicolon,
		',': Comma, '?': Question,
	}
	if kind, ok := single[src[pos]]; ok {
		return Token{Kind: Punctuation, Punct: kind}, pos + 1, true
	}
	return Token{}, pos, false
}
