package httpapi

import (
	"github.com/faridmehrhesam/kusto-language/ast"
	"github.com/faridmehrhesam/kusto-language/lexer"
	"github.com/faridmehrhesam/kusto-language/parser"
)

type tokenJSON struct {
	Kind        string `json:"kind"`
	Punct       string `json:"punct,omitempty"`
	Keyword     string `json:"keyword,omitempty"`
	LiteralKind string `json:"literal_kind,omitempty"`
	TriviaStart int    `json:"trivia_start"`
	TriviaEnd   int    `json:"trivia_end"`
	TextStart   int    `json:"text_start"`
	TextEnd     int    `json:"text_end"`
	Text        string `json:"text"`
}

// tokenStreamJSON is also what parsecache.Store persists for a memoized
// /v1/lex response.
type tokenStreamJSON struct {
	Tokens []tokenJSON `json:"tokens"`
}

func encodeTokenStream(ts lexer.TokenStream) tokenStreamJSON {
	out := tokenStreamJSON{Tokens: make([]tokenJSON, len(ts.Tokens))}
	for i, tok := range ts.Tokens {
		tj := tokenJSON{
			Kind:        tok.Kind.String(),
			TriviaStart: tok.Trivia.Start,
			TriviaEnd:   tok.Trivia.End,
			TextStart:   tok.Text.Start,
			TextEnd:     tok.Text.End,
			Text:        tok.Text.Text(ts.Source),
		}
		switch tok.Kind {
		case lexer.Punctuation:
			tj.Punct = tok.Punct.String()
		case lexer.Keyword:
			tj.Keyword = keywordName(tok.Keyword)
		case lexer.Literal:
			tj.LiteralKind = tok.LitKind.String()
		}
		out.Tokens[i] = tj
	}
	return out
}

// keywordName returns the name-declaration spelling for keywords that have
// one (where, by, on, ...) and the generic label "keyword" for every other
// keyword, so it does not tell most keywords apart; the exact spelling is in
// the token's Text.
func keywordName(kw lexer.KeywordKind) string {
	if spelling, ok := lexer.ExtendedIdentifierSpelling(kw); ok {
		return spelling
	}
	return "keyword"
}

type parseResponse struct {
	Tree   exprJSON         `json:"tree,omitempty"`
	Errors []parseErrorJSON `json:"errors"`
}

type exprJSON struct {
	Type       string    `json:"type"`
	Op         string    `json:"op,omitempty"`
	Left       *exprJSON `json:"left,omitempty"`
	Right      *exprJSON `json:"right,omitempty"`
	Name       string    `json:"name,omitempty"`
	NameExpr   *exprJSON `json:"name_expr,omitempty"`
	Expr       *exprJSON `json:"expr,omitempty"`
	ValueKind  string    `json:"value_kind,omitempty"`
	Bool       bool      `json:"bool,omitempty"`
	Long       int64     `json:"long,omitempty"`
	Real       float64   `json:"real,omitempty"`
	Str        string    `json:"str,omitempty"`
	TokenIndex int       `json:"token_index"`
}

func encodeExpr(e ast.Expr) exprJSON {
	switch n := e.(type) {
	case *ast.Literal:
		ej := exprJSON{Type: "literal", TokenIndex: n.TokenIndex}
		switch n.ValueKind {
		case ast.BoolValue:
			ej.ValueKind, ej.Bool = "bool", n.Bool
		case ast.LongValue:
			ej.ValueKind, ej.Long = "long", n.Long
		case ast.RealValue:
			ej.ValueKind, ej.Real = "real", n.Real
		case ast.StringValue:
			ej.ValueKind, ej.Str = "string", n.Str
		}
		return ej
	case *ast.BinOp:
		left := encodeExpr(n.Left)
		right := encodeExpr(n.Right)
		return exprJSON{Type: "binop", Op: n.Op.String(), Left: &left, Right: &right, TokenIndex: n.TokenIndex}
	case *ast.NameDecl:
		return exprJSON{Type: "name", Name: n.Name, TokenIndex: n.TokenIndex}
	case *ast.SimpleNamed:
		name := encodeExpr(n.Name)
		val := encodeExpr(n.Expr)
		return exprJSON{Type: "named", NameExpr: &name, Expr: &val}
	default:
		return exprJSON{Type: "unknown"}
	}
}

type parseErrorJSON struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	TokenIndex int    `json:"token_index"`
}

func encodeParseErrors(errs []parser.ParseError) []parseErrorJSON {
	out := make([]parseErrorJSON, len(errs))
	for i, e := range errs {
		out[i] = parseErrorJSON{Code: e.Code, Message: e.Message, TokenIndex: e.TokenIndex}
	}
	return out
}
