// Command golox runs Lox programs: a script file when given one argument,
// an interactive prompt when given none.
package main

import (
	"os"

	"github.com/cwbudde/go-lox/cmd/golox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
