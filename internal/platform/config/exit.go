package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Process exit statuses for CLI entry points.
const (
	// ExitFailure reports a command that ran and failed.
	ExitFailure = 1
	// ExitUsage reports invalid flags, arguments, or configuration.
	ExitUsage = 2
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf writes a formatted message to stderr and exits with ExitFailure.
func Exitf(format string, args ...any) {
	ExitWith(ExitFailure, format, args...)
}

// Usagef writes a formatted message to stderr and exits with ExitUsage.
func Usagef(format string, args ...any) {
	ExitWith(ExitUsage, format, args...)
}

// ExitWith writes a formatted message to stderr, terminated by exactly one
// newline, and exits with status.
func ExitWith(status int, format string, args ...any) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(stderr, message)
	exit(status)
}
