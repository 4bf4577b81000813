package lexer

import "testing"

func lexAll(t *testing.T, src string) TokenStream {
	t.Helper()
	return Lex([]byte(src), DefaultConfig())
}

func TestLexEmptySourceProducesEndOfFile(t *testing.T) {
	ts := lexAll(t, "")
	if len(ts.Tokens) != 1 || ts.Tokens[0].Kind != EndOfFile {
		t.Fatalf("expected a single EndOfFile token, got %+v", ts.Tokens)
	}
}

func TestLexEndOfFileSuppressedWhenConfigured(t *testing.T) {
	cfg := DefaultConfig().WithAlwaysProduceEndTokens(false)
	ts := Lex([]byte(""), cfg)
	if len(ts.Tokens) != 0 {
		t.Fatalf("expected no tokens, got %+v", ts.Tokens)
	}
}

func TestLexKeywordVsIdentifier(t *testing.T) {
	ts := lexAll(t, "where wherex")
	if len(ts.Tokens) < 2 {
		t.Fatalf("expected at least 2 tokens, got %d", len(ts.Tokens))
	}
	if ts.Tokens[0].Kind != Keyword || ts.Tokens[0].Keyword != Where {
		t.Fatalf("expected Where keyword, got %+v", ts.Tokens[0])
	}
	if ts.Tokens[1].Kind != Identifier {
		t.Fatalf("expected identifier for 'wherex', got %+v", ts.Tokens[1])
	}
	if got := ts.Tokens[1].Text.Text(ts.Source); got != "wherex" {
		t.Fatalf("expected text 'wherex', got %q", got)
	}
}

func TestLexLongestKeywordMatch(t *testing.T) {
	ts := lexAll(t, "contains_cs")
	if ts.Tokens[0].Kind != Keyword || ts.Tokens[0].Keyword != ContainsCs {
		t.Fatalf("expected ContainsCs keyword, got %+v", ts.Tokens[0])
	}
}

func TestLexPunctuationLongestMatchFirst(t *testing.T) {
	cases := []struct {
		src  string
		kind PunctKind
	}{
		{"<|", LessThanBar},
		{"<=", LessThanOrEqual},
		{"<>", LessThanGreaterThan},
		{"<", LessThan},
		{"==", EqualEqual},
		{"=", Equal},
		{"!=", BangEqual},
		{"..", DotDot},
	}
	for _, c := range cases {
		ts := lexAll(t, c.src)
		if ts.Tokens[0].Kind != Punctuation || ts.Tokens[0].Punct != c.kind {
			t.Fatalf("%q: expected punct %v, got %+v", c.src, c.kind, ts.Tokens[0])
		}
	}
}

func TestLexTrivia(t *testing.T) {
	ts := lexAll(t, "  // comment\n  where")
	tok := ts.Tokens[0]
	if tok.Kind != Keyword || tok.Keyword != Where {
		t.Fatalf("expected Where keyword, got %+v", tok)
	}
	if tok.Trivia.Empty() {
		t.Fatalf("expected non-empty trivia span")
	}
}

func TestLexStringLiteralForms(t *testing.T) {
	cases := []string{
		`"hello"`,
		`'hello'`,
		`@"C:\path"`,
		"```multi\nline```",
		"~~~multi~~~",
		`h"secret"`,
		`h@"secret"`,
	}
	for _, src := range cases {
		ts := lexAll(t, src)
		if ts.Tokens[0].Kind != Literal || ts.Tokens[0].LitKind != String {
			t.Fatalf("%q: expected String literal, got %+v", src, ts.Tokens[0])
		}
		if ts.Tokens[0].Text.Len() != len(src) {
			t.Fatalf("%q: expected text span to cover whole literal, got %v", src, ts.Tokens[0].Text)
		}
	}
}

func TestLexRawGuidBeforeReal(t *testing.T) {
	ts := lexAll(t, "01234567-89ab-cdef-0123-456789abcdef")
	if ts.Tokens[0].Kind != Literal || ts.Tokens[0].LitKind != RawGuid {
		t.Fatalf("expected RawGuid literal, got %+v", ts.Tokens[0])
	}
}

func TestLexRealVsLongVsTimespan(t *testing.T) {
	cases := []struct {
		src  string
		kind LiteralKind
	}{
		{"123", Long},
		{"1.5", Real},
		{"1.5e10", Real},
		{"10s", Timespan},
		{"5minutes", Timespan},
		{"5min", Timespan},
		{"5sec", Timespan},
		{"5hr", Timespan},
		{"5tick", Timespan},
		{"5microsec", Timespan},
		{"1.5seconds", Timespan},
		{"0x1A", Long},
		{"0X1a", Long},
	}
	for _, c := range cases {
		ts := lexAll(t, c.src)
		if ts.Tokens[0].Kind != Literal || ts.Tokens[0].LitKind != c.kind {
			t.Fatalf("%q: expected %v, got %+v", c.src, c.kind, ts.Tokens[0])
		}
		if len(ts.Tokens) != 2 || ts.Tokens[1].Kind != EndOfFile {
			t.Fatalf("%q: expected the whole source to lex as one literal, got %+v", c.src, ts.Tokens)
		}
	}
}

func TestLexRejectsOutOfSetTimespanSuffixes(t *testing.T) {
	// "us", "ns", and "days" are not in the closed timespan suffix set
	// (spec §4.5); they should fall through to a digit-prefixed identifier.
	for _, src := range []string{"5us", "5ns", "5days"} {
		ts := lexAll(t, src)
		if ts.Tokens[0].Kind != Identifier {
			t.Fatalf("%q: expected digit-prefixed identifier, got %+v", src, ts.Tokens[0])
		}
	}
}

func TestLexBooleanLiteral(t *testing.T) {
	for _, src := range []string{"true", "false", "True", "False", "TRUE", "FALSE"} {
		ts := lexAll(t, src)
		if ts.Tokens[0].Kind != Literal || ts.Tokens[0].LitKind != Boolean {
			t.Fatalf("%q: expected Boolean literal, got %+v", src, ts.Tokens[0])
		}
	}
}

func TestLexGreaterThanOrEqual(t *testing.T) {
	ts := lexAll(t, "a >= b")
	if ts.Tokens[1].Kind != Punctuation || ts.Tokens[1].Punct != GreaterThanOrEqual {
		t.Fatalf("expected a single >= punctuation token, got %+v", ts.Tokens[1])
	}
}

func TestLexDigitPrefixedIdentifier(t *testing.T) {
	ts := lexAll(t, "1foo")
	if ts.Tokens[0].Kind != Identifier {
		t.Fatalf("expected identifier for digit-prefixed name, got %+v", ts.Tokens[0])
	}
}

func TestLexGooLiteral(t *testing.T) {
	ts := lexAll(t, `datetime(2020-01-01)`)
	if ts.Tokens[0].Kind != Literal || ts.Tokens[0].LitKind != DateTime {
		t.Fatalf("expected DateTime goo literal, got %+v", ts.Tokens[0])
	}
	if ts.Tokens[0].Text.Len() != len(`datetime(2020-01-01)`) {
		t.Fatalf("expected goo literal span to cover the whole constructor call, got %v", ts.Tokens[0].Text)
	}
}

func TestLexDirective(t *testing.T) {
	ts := lexAll(t, "#pragma strict\nwhere")
	if ts.Tokens[0].Kind != Directive {
		t.Fatalf("expected Directive, got %+v", ts.Tokens[0])
	}
	if ts.Tokens[1].Kind != Keyword || ts.Tokens[1].Keyword != Where {
		t.Fatalf("expected Where keyword after directive, got %+v", ts.Tokens[1])
	}
}

func TestLexBadTokenIsOneCodePoint(t *testing.T) {
	ts := lexAll(t, "x \u20ac y")
	var bad *Token
	for i := range ts.Tokens {
		if ts.Tokens[i].Kind == Bad {
			bad = &ts.Tokens[i]
			break
		}
	}
	if bad == nil {
		t.Fatalf("expected a Bad token, got %+v", ts.Tokens)
	}
	if got := bad.Text.Text(ts.Source); got != "\u20ac" {
		t.Fatalf("expected Bad token text to be exactly one code point, got %q", got)
	}
}

func TestLexCoverageIsContiguous(t *testing.T) {
	src := `where x == 1 and y != "s" | project a, b`
	ts := lexAll(t, src)
	pos := 0
	for _, tok := range ts.Tokens {
		if tok.Trivia.Start != pos {
			t.Fatalf("gap before trivia at %d, expected %d", tok.Trivia.Start, pos)
		}
		if tok.Trivia.End != tok.Text.Start {
			t.Fatalf("gap between trivia (%v) and text (%v)", tok.Trivia, tok.Text)
		}
		pos = tok.Text.End
	}
	if pos != len(src) {
		t.Fatalf("tokens did not cover full source: stopped at %d of %d", pos, len(src))
	}
}
