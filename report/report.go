// Package report prints user-facing messages from the command line.
package report

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/selfremember/internal/osutil"
)

// Warn reports a problem that does not stop the program.
func Warn(format string, a ...any) {
	pterm.Warning.Printfln(format, a...)
}

func Success(format string, a ...any) {
	pterm.Success.Printfln(format, a...)
}

// Quit reports err and exits with a failure status.
func Quit(err error) {
	pterm.Error.Println(err)
	osutil.Exit(osutil.ExitError)
}
