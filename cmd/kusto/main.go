// Command kusto is a thin driver over the lexer and parser packages: it
// prints token streams and expression trees, runs an interactive prompt,
// and starts the HTTP/LSP services.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "kusto",
		Short: "Tokenizer and expression parser for Kusto-style query text",
		Long: color.CyanString(`kusto - a tokenizer and precedence-climbing expression parser

Subcommands:
  lex    print the token stream for a query
  parse  print the expression tree for a query
  repl   interactive prompt over lex/parse
  serve  start the HTTP API, or the LSP server with --lsp`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newVersionCommand())
	root.AddCommand(newLexCommand())
	root.AddCommand(newParseCommand())
	root.AddCommand(newReplCommand())
	root.AddCommand(newServeCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			titleColor.Print("kusto version: ")
			fmt.Println(Version, "("+GitCommit+")")
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
