package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/pkg/lox"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "golox [script]",
	Short: "Lox interpreter",
	Long: `golox is a Go implementation of the Lox scripting language.

Lox is a small, dynamically-typed, class-based scripting language with:
  - First-class functions and closures
  - Classes, inheritance, and bound methods
  - Lexical scoping resolved ahead of execution

With a script argument the file is executed; without one an interactive
prompt reads statements until end-of-input.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := err.(*exitCodeError); ok {
			return code.code
		}
		// Usage errors (e.g. too many arguments).
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		return 1
	}
	return 0
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

// exitCodeError carries a specific process exit code out of a RunE. The
// message has already been reported when it is raised.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func runRoot(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runPrompt()
	}
	return runFile(args[0])
}

// runFile executes a script file. A missing file exits 65; scan, parse and
// resolve diagnostics go to stderr and exit 65; runtime errors have been
// written to stdout by the evaluator and exit 70.
func runFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read file %s: %v\n", filename, err)
		return &exitCodeError{code: 65}
	}

	script, err := lox.Compile(string(content))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return &exitCodeError{code: 65}
	}

	if err := script.Run(os.Stdout); err != nil {
		return &exitCodeError{code: 70}
	}

	return nil
}

// runPrompt reads and evaluates lines until end-of-input. The session keeps
// its globals, so definitions from earlier lines stay visible.
func runPrompt() error {
	session := lox.NewSession(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			if err := session.Eval(line); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		fmt.Print("> ")
	}
	fmt.Println()

	return scanner.Err()
}
