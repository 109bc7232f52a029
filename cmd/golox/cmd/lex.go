package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/spf13/cobra"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file and print the token stream",
	Long: `Tokenize a Lox program and print one token per line.

Examples:
  # Tokenize a script file
  golox lex script.lox

  # Tokenize inline code
  golox lex -e "print 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func runLex(_ *cobra.Command, args []string) error {
	input, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, err := lexer.New(input).ScanTokens()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return &exitCodeError{code: 65}
	}

	for _, tok := range tokens {
		fmt.Println(tok)
	}

	return nil
}

// readInput returns inline code when the -e flag is set, or the contents of
// the file argument.
func readInput(evalExpr string, args []string) (string, error) {
	if evalExpr != "" {
		return evalExpr, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
