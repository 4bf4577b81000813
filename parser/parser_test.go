package parser

import (
	"testing"

	"github.com/faridmehrhesam/kusto-language/ast"
	"github.com/faridmehrhesam/kusto-language/lexer"
)

func parseSource(t *testing.T, src string) (ast.Expr, []ParseError) {
	t.Helper()
	ts := lexer.Lex([]byte(src), lexer.DefaultConfig())
	return Parse(ts)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	expr, errs := parseSource(t, "1 + 2 * 3")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	bin, ok := expr.(*ast.BinOp)
	if !ok || bin.Op != ast.Add {
		t.Fatalf("expected top-level Add, got %+v", expr)
	}
	left, ok := bin.Left.(*ast.Literal)
	if !ok || left.Long != 1 {
		t.Fatalf("expected left literal 1, got %+v", bin.Left)
	}
	right, ok := bin.Right.(*ast.BinOp)
	if !ok || right.Op != ast.Multiply {
		t.Fatalf("expected right Multiply, got %+v", bin.Right)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	expr, errs := parseSource(t, "10 - 3 - 2")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	outer, ok := expr.(*ast.BinOp)
	if !ok || outer.Op != ast.Subtract {
		t.Fatalf("expected outer Subtract, got %+v", expr)
	}
	inner, ok := outer.Left.(*ast.BinOp)
	if !ok || inner.Op != ast.Subtract {
		t.Fatalf("expected left-associative nesting, got %+v", outer.Left)
	}
	rightLit, ok := outer.Right.(*ast.Literal)
	if !ok || rightLit.Long != 2 {
		t.Fatalf("expected rightmost literal 2, got %+v", outer.Right)
	}
}

func TestParseNotEqualSynonyms(t *testing.T) {
	for _, src := range []string{`1 != 2`, `1 <> 2`} {
		expr, errs := parseSource(t, src)
		if len(errs) != 0 {
			t.Fatalf("%q: unexpected errors: %+v", src, errs)
		}
		bin, ok := expr.(*ast.BinOp)
		if !ok || bin.Op != ast.NotEqual {
			t.Fatalf("%q: expected NotEqual, got %+v", src, expr)
		}
	}
}

func TestParseGreaterThanOrEqual(t *testing.T) {
	expr, errs := parseSource(t, "5 >= 3")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	bin, ok := expr.(*ast.BinOp)
	if !ok || bin.Op != ast.GreaterThanOrEqual {
		t.Fatalf("expected GreaterThanOrEqual, got %+v", expr)
	}
}

func TestParseCompoundStringLiteralConcatenates(t *testing.T) {
	expr, errs := parseSource(t, `"foo" "bar"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.ValueKind != ast.StringValue || lit.Str != "foobar" {
		t.Fatalf("expected concatenated string literal 'foobar', got %+v", expr)
	}
}

func TestParseSimpleNamed(t *testing.T) {
	expr, errs := parseSource(t, "x = 1 + 2")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	named, ok := expr.(*ast.SimpleNamed)
	if !ok {
		t.Fatalf("expected SimpleNamed, got %+v", expr)
	}
	if named.Name.Name != "x" {
		t.Fatalf("expected name 'x', got %q", named.Name.Name)
	}
	if _, ok := named.Expr.(*ast.BinOp); !ok {
		t.Fatalf("expected BinOp value, got %+v", named.Expr)
	}
}

func TestParseBracketedName(t *testing.T) {
	expr, errs := parseSource(t, `["my col"] = 1`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	named, ok := expr.(*ast.SimpleNamed)
	if !ok || named.Name.Name != "my col" {
		t.Fatalf("expected bracketed name 'my col', got %+v", expr)
	}
}

func TestParseExtendedKeywordAsName(t *testing.T) {
	expr, errs := parseSource(t, "where = true")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	named, ok := expr.(*ast.SimpleNamed)
	if !ok || named.Name.Name != "where" {
		t.Fatalf("expected name 'where', got %+v", expr)
	}
}

func TestParseMalformedLiteralRecovers(t *testing.T) {
	// A Bad token has no literal kind at all; the parser must still
	// produce a node rather than aborting (spec §7).
	ts := lexer.Lex([]byte("€"), lexer.DefaultConfig())
	_, errs := Parse(ts)
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for a non-literal token")
	}
}

func TestParseLogicalOperators(t *testing.T) {
	expr, errs := parseSource(t, "true and false or true")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	bin, ok := expr.(*ast.BinOp)
	if !ok || bin.Op != ast.Or {
		t.Fatalf("expected top-level Or (lowest precedence), got %+v", expr)
	}
	if _, ok := bin.Left.(*ast.BinOp); !ok {
		t.Fatalf("expected left side to be the And group, got %+v", bin.Left)
	}
}
