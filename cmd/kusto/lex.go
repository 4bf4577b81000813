package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/faridmehrhesam/kusto-language/lexer"
)

func newLexCommand() *cobra.Command {
	var allowLineBreaks bool

	cmd := &cobra.Command{
		Use:   "lex [query]",
		Short: "Print the token stream for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := lexer.DefaultConfig().WithAllowLiteralsWithLineBreaks(allowLineBreaks)
			ts := lexer.Lex([]byte(args[0]), cfg)
			printTokenStream(ts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowLineBreaks, "allow-line-breaks", false,
		"allow quoted string literals to span line breaks")
	return cmd
}

func printTokenStream(ts lexer.TokenStream) {
	kindColor := color.New(color.FgYellow)
	textColor := color.New(color.FgGreen)

	for i, tok := range ts.Tokens {
		kindColor.Fprintf(os.Stdout, "%4d  %-12s", i, tok.Kind.String())
		textColor.Fprintf(os.Stdout, "%q", tok.Text.Text(ts.Source))
		fmt.Printf("  [%d:%d)\n", tok.Text.Start, tok.Text.End)
	}
}
