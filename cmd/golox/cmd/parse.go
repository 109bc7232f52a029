package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/errors"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file and dump the syntax tree",
	Long: `Parse a Lox program and print a textual rendering of its syntax
tree. The output format is a debugging aid and carries no stability
guarantee.

Examples:
  # Parse a script file
  golox parse script.lox

  # Parse inline code
  golox parse -e "print 1 + 2 * 3;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, err := lexer.New(input).ScanTokens()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return &exitCodeError{code: 65}
	}

	p := parser.New(tokens)
	program := p.ParseProgram()
	if program == nil {
		fmt.Fprintln(os.Stderr, errors.Aggregate(p.Errors()))
		return &exitCodeError{code: 65}
	}

	for _, stmt := range program.Statements {
		fmt.Println(stmt.String())
	}

	return nil
}
