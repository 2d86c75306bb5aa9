// Package main implements the minic front-end entry point.
package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/you-not-fish/minic/internal/driver"
)

// Version information
const Version = "0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

// run executes the command line in args and returns the exit code.
func run(args []string, fs afero.Fs, stdout, stderr io.Writer) int {
	a := &app{fs: fs}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

// reportError prints syntax diagnostics one per line and anything else as
// a single error line.
func reportError(w io.Writer, err error) {
	if msgs, ok := driver.Diagnostics(err); ok {
		io.WriteString(w, strings.Join(msgs, "\n")+"\n")
		return
	}
	io.WriteString(w, "error: "+err.Error()+"\n")
}
