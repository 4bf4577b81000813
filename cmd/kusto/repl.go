package main

import (
	"errors"
	"fmt"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/faridmehrhesam/kusto-language/lexer"
	"github.com/faridmehrhesam/kusto-language/parser"
)

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive lex/parse prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	promptColor := color.New(color.FgCyan)
	promptColor.Println("kusto repl - enter a query, or an empty line to exit")

	for {
		var line string
		prompt := &survey.Input{Message: ">"}
		if err := survey.AskOne(prompt, &line); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return nil
			}
			return err
		}
		if line == "" {
			return nil
		}

		ts := lexer.Lex([]byte(line), lexer.DefaultConfig())
		printTokenStream(ts)

		expr, errs := parser.Parse(ts)
		if expr != nil {
			printExpr(expr, 0)
		}
		for _, e := range errs {
			color.New(color.FgRed).Printf("%s: %s\n", e.Code, e.Message)
		}
		fmt.Println()
	}
}
