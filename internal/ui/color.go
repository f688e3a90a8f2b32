// Package ui holds the colours and styles shared by the command output and
// the session screen.
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variants of each colour.
var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}
