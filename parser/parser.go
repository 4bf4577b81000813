// Package parser implements a precedence-climbing expression parser over a
// lexer.TokenStream.
package parser

import (
	"strconv"

	"github.com/faridmehrhesam/kusto-language/ast"
	"github.com/faridmehrhesam/kusto-language/lexer"
)

// ParseError is a non-fatal parsing diagnostic (spec §6, §2.2 of SPEC_FULL).
// The parser never aborts on one of these; it records it and keeps going.
type ParseError struct {
	Code       string
	Message    string
	TokenIndex int
}

func (e ParseError) Error() string { return e.Code + ": " + e.Message }

const (
	codeExpectToken  = "EXPECT001"
	codeLiteralValue = "LIT001"
)

// Parse consumes ts and returns the expression tree it describes along with
// any diagnostics encountered. A non-empty error list does not mean tree is
// nil: the parser recovers from bad tokens by substituting a zero-value
// node and continuing (spec §7).
func Parse(ts lexer.TokenStream) (ast.Expr, []ParseError) {
	p := &parser{toks: ts.Tokens, src: ts.Source}
	expr := p.parseTop()
	if !p.atEnd() && p.current().Kind != lexer.EndOfFile {
		p.errorf(codeExpectToken, "unexpected trailing input")
	}
	return expr, p.errors
}

type parser struct {
	toks   []lexer.Token
	src    []byte
	pos    int
	errors []ParseError
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.toks) || p.toks[p.pos].Kind == lexer.EndOfFile
}

func (p *parser) current() lexer.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return lexer.Token{Kind: lexer.EndOfFile}
}

func (p *parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *parser) text(tok lexer.Token) string {
	return tok.Text.Text(p.src)
}

func (p *parser) errorf(code, msg string) {
	p.errors = append(p.errors, ParseError{Code: code, Message: msg, TokenIndex: p.pos})
}

func (p *parser) isPunct(k lexer.PunctKind) bool {
	c := p.current()
	return c.Kind == lexer.Punctuation && c.Punct == k
}

// parseTop implements `query`: either a name declaration assigned an
// expression (SimpleNamed) or a bare expression (spec §5.6).
func (p *parser) parseTop() ast.Expr {
	if p.looksLikeNameDecl() {
		start := p.pos
		name := p.parseNameDecl()
		if p.isPunct(lexer.Equal) {
			p.advance()
			val := p.parseLogicalOr()
			return &ast.SimpleNamed{Name: name, Expr: val}
		}
		p.pos = start
	}
	return p.parseLogicalOr()
}

func (p *parser) looksLikeNameDecl() bool {
	c := p.current()
	switch c.Kind {
	case lexer.Identifier:
		return true
	case lexer.Keyword:
		_, ok := lexer.ExtendedIdentifierSpelling(c.Keyword)
		return ok
	case lexer.Punctuation:
		return c.Punct == lexer.OpenBracket
	}
	return false
}

// parseNameDecl implements `name_declaration`: a plain identifier, a
// bracketed string literal, or one of the closed set of keywords that may
// stand in for a name (spec §4.10, §5.6).
func (p *parser) parseNameDecl() *ast.NameDecl {
	idx := p.pos
	c := p.current()
	switch c.Kind {
	case lexer.Identifier:
		p.advance()
		return &ast.NameDecl{Name: p.text(c), TokenIndex: idx}
	case lexer.Keyword:
		if spelling, ok := lexer.ExtendedIdentifierSpelling(c.Keyword); ok {
			p.advance()
			return &ast.NameDecl{Name: spelling, TokenIndex: idx}
		}
		p.errorf(codeExpectToken, "expected a name")
		p.advance()
		return &ast.NameDecl{TokenIndex: idx}
	case lexer.Punctuation:
		if c.Punct == lexer.OpenBracket {
			p.advance()
			name := ""
			if p.current().Kind == lexer.Literal && p.current().LitKind == lexer.String {
				name = decodeStringLiteral(p.text(p.current()))
				p.advance()
			} else {
				p.errorf(codeExpectToken, "expected string literal in bracketed name")
			}
			if p.isPunct(lexer.CloseBracket) {
				p.advance()
			} else {
				p.errorf(codeExpectToken, "expected ']'")
			}
			return &ast.NameDecl{Name: name, TokenIndex: idx}
		}
	}
	p.errorf(codeExpectToken, "expected a name")
	p.advance()
	return &ast.NameDecl{TokenIndex: idx}
}

// The precedence cascade (spec §5): logical_or > logical_and > equality >
// relational > additive > multiplicative > lit_expr, each left-associative.

func (p *parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.current().Kind == lexer.Keyword && p.current().Keyword == lexer.Or {
		idx := p.pos
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.BinOp{Left: left, Op: ast.Or, Right: right, TokenIndex: idx}
	}
	return left
}

func (p *parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.current().Kind == lexer.Keyword && p.current().Keyword == lexer.And {
		idx := p.pos
		p.advance()
		right := p.parseEquality()
		left = &ast.BinOp{Left: left, Op: ast.And, Right: right, TokenIndex: idx}
	}
	return left
}

func (p *parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for {
		c := p.current()
		var op ast.Op
		switch {
		case c.Kind == lexer.Punctuation && c.Punct == lexer.EqualEqual:
			op = ast.Equal
		case c.Kind == lexer.Punctuation && (c.Punct == lexer.BangEqual || c.Punct == lexer.LessThanGreaterThan):
			op = ast.NotEqual
		default:
			return left
		}
		idx := p.pos
		p.advance()
		right := p.parseRelational()
		left = &ast.BinOp{Left: left, Op: op, Right: right, TokenIndex: idx}
	}
}

func (p *parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for {
		c := p.current()
		var op ast.Op
		switch {
		case c.Kind == lexer.Punctuation && c.Punct == lexer.LessThan:
			op = ast.LessThan
		case c.Kind == lexer.Punctuation && c.Punct == lexer.LessThanOrEqual:
			op = ast.LessThanOrEqual
		case c.Kind == lexer.Punctuation && c.Punct == lexer.GreaterThan:
			op = ast.GreaterThan
		case c.Kind == lexer.Punctuation && c.Punct == lexer.GreaterThanOrEqual:
			op = ast.GreaterThanOrEqual
		default:
			return left
		}
		idx := p.pos
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinOp{Left: left, Op: op, Right: right, TokenIndex: idx}
	}
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		c := p.current()
		var op ast.Op
		switch {
		case c.Kind == lexer.Punctuation && c.Punct == lexer.Plus:
			op = ast.Add
		case c.Kind == lexer.Punctuation && c.Punct == lexer.Minus:
			op = ast.Subtract
		default:
			return left
		}
		idx := p.pos
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinOp{Left: left, Op: op, Right: right, TokenIndex: idx}
	}
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseLit()
	for {
		c := p.current()
		var op ast.Op
		switch {
		case c.Kind == lexer.Punctuation && c.Punct == lexer.Star:
			op = ast.Multiply
		case c.Kind == lexer.Punctuation && c.Punct == lexer.Slash:
			op = ast.Divide
		case c.Kind == lexer.Punctuation && c.Punct == lexer.Percent:
			op = ast.Modulo
		default:
			return left
		}
		idx := p.pos
		p.advance()
		right := p.parseLit()
		left = &ast.BinOp{Left: left, Op: op, Right: right, TokenIndex: idx}
	}
}

// parseLit implements `lit_expr`: boolean | long | real | string, with a
// compound string literal folding consecutive string tokens into one node
// (spec §5.1). Decode failures are recorded as diagnostics, never aborts;
// the node keeps the family's zero value (spec §5.5).
func (p *parser) parseLit() ast.Expr {
	idx := p.pos
	c := p.current()

	if c.Kind != lexer.Literal {
		p.errorf(codeExpectToken, "expected a literal")
		p.advance()
		return &ast.Literal{TokenIndex: idx}
	}

	switch c.LitKind {
	case lexer.Boolean:
		p.advance()
		v, err := strconv.ParseBool(p.text(c))
		if err != nil {
			p.errorAt(codeLiteralValue, "invalid boolean literal", idx)
			v = false
		}
		return &ast.Literal{ValueKind: ast.BoolValue, Bool: v, TokenIndex: idx}

	case lexer.Long, lexer.Int:
		p.advance()
		v, err := strconv.ParseInt(p.text(c), 0, 64)
		if err != nil {
			p.errorAt(codeLiteralValue, "invalid integer literal", idx)
			v = 0
		}
		return &ast.Literal{ValueKind: ast.LongValue, Long: v, TokenIndex: idx}

	case lexer.Real, lexer.Decimal:
		p.advance()
		v, err := strconv.ParseFloat(p.text(c), 64)
		if err != nil {
			p.errorAt(codeLiteralValue, "invalid real literal", idx)
			v = 0
		}
		return &ast.Literal{ValueKind: ast.RealValue, Real: v, TokenIndex: idx}

	case lexer.String:
		var sb []byte
		sb = append(sb, decodeStringLiteral(p.text(c))...)
		p.advance()
		for p.current().Kind == lexer.Literal && p.current().LitKind == lexer.String {
			sb = append(sb, decodeStringLiteral(p.text(p.current()))...)
			p.advance()
		}
		return &ast.Literal{ValueKind: ast.StringValue, Str: string(sb), TokenIndex: idx}

	default:
		p.errorAt(codeLiteralValue, "literal kind not valid in an expression", idx)
		p.advance()
		return &ast.Literal{TokenIndex: idx}
	}
}

func (p *parser) errorAt(code, msg string, idx int) {
	p.errors = append(p.errors, ParseError{Code: code, Message: msg, TokenIndex: idx})
}

// decodeStringLiteral strips a literal's delimiters. It does not attempt to
// unescape content beyond that: escape-sequence decoding is not part of the
// classification the lexer already performed and nothing downstream of this
// parser needs the decoded bytes rather than the source text.
func decodeStringLiteral(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	// Strip a leading "h"/"H" hidden-string marker and an "@" verbatim marker.
	start := 0
	for start < len(raw) && (raw[start] == 'h' || raw[start] == 'H' || raw[start] == '@') {
		start++
		if start >= len(raw) {
			return ""
		}
	}
	body := raw[start:]
	if len(body) >= 2 {
		first, last := body[0], body[len(body)-1]
		if (first == '"' || first == '\'') && last == first {
			return body[1 : len(body)-1]
		}
		if len(body) >= 6 && (body[:3] == "```" || body[:3] == "~~~") {
			return body[3 : len(body)-3]
		}
	}
	return body
}
