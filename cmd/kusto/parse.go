package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/faridmehrhesam/kusto-language/ast"
	"github.com/faridmehrhesam/kusto-language/lexer"
	"github.com/faridmehrhesam/kusto-language/parser"
)

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Print the expression tree for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := lexer.Lex([]byte(args[0]), lexer.DefaultConfig())
			expr, errs := parser.Parse(ts)

			if expr != nil {
				printExpr(expr, 0)
			}
			if len(errs) > 0 {
				errColor := color.New(color.FgRed, color.Bold)
				for _, e := range errs {
					errColor.Fprintf(os.Stderr, "%s: %s (token %d)\n", e.Code, e.Message, e.TokenIndex)
				}
			}
			return nil
		},
	}
	return cmd
}

func printExpr(e ast.Expr, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	switch n := e.(type) {
	case *ast.Literal:
		fmt.Printf("%sLiteral(%s)\n", indent, literalText(n))
	case *ast.BinOp:
		fmt.Printf("%sBinOp(%s)\n", indent, n.Op.String())
		printExpr(n.Left, depth+1)
		printExpr(n.Right, depth+1)
	case *ast.NameDecl:
		fmt.Printf("%sName(%s)\n", indent, n.Name)
	case *ast.SimpleNamed:
		fmt.Printf("%sNamed(%s)\n", indent, n.Name.Name)
		printExpr(n.Expr, depth+1)
	default:
		fmt.Printf("%s<unknown>\n", indent)
	}
}

func literalText(n *ast.Literal) string {
	switch n.ValueKind {
	case ast.BoolValue:
		return fmt.Sprintf("%v", n.Bool)
	case ast.LongValue:
		return fmt.Sprintf("%d", n.Long)
	case ast.RealValue:
		return fmt.Sprintf("%v", n.Real)
	case ast.StringValue:
		return fmt.Sprintf("%q", n.Str)
	default:
		return "?"
	}
}
