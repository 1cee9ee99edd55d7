package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// User-facing output functions with status glyph prefixes.
// These write to stdout/stderr directly for CLI output,
// separate from the structured debug logging.

var (
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr

	infoPrefix    = color.New(color.FgCyan).Sprint("ℹ")
	successPrefix = color.New(color.FgGreen).Sprint("✓")
	warningPrefix = color.New(color.FgYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgRed, color.Bold).Sprint("✗")
)

// SetUserOutput redirects user-facing output. Nil restores the default.
func SetUserOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	userOut = out
	userErr = errOut
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(userOut, infoPrefix+" "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(userOut, successPrefix+" "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(userErr, warningPrefix+" "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(userErr, errorPrefix+" "+format+"\n", args...)
}
