// Package osutil holds platform constants and helpers for launching other
// programs.
package osutil

import (
	"os"
	"os/exec"
	"runtime"
)

const (
	Windows = "windows"
	Darwin  = "darwin"
)

type exitCode int

const ExitError exitCode = 1

const (
	DirPermission = 0o755
	// FilePermission is used for files that may hold credentials.
	FilePermission = 0o600
)

// Exit terminates the process with code.
func Exit(code exitCode) {
	os.Exit(int(code))
}

// Open opens target with the platform's default handler without waiting
// for it to exit.
func Open(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case Windows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case Darwin:
		cmd = exec.Command("open", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}

	return cmd.Start()
}

// Editor returns the user's preferred editor.
func Editor() string {
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}

	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}

	if runtime.GOOS == Windows {
		return "notepad"
	}

	return "nano"
}
