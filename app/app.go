package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/selfremember/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the selfremember app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "selfremember",
		Authors: []*cli.Author{
			{
				Name:  "Ayooluwa Isaiah",
				Email: "ayo@freshman.tech",
			},
		},
		Usage: `
		selfremember is a focus timer for the command-line that keeps a
		remembrance prompt in view, pauses itself when you walk away and
		records each session in Google Calendar.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "auth",
				Usage:  "Connect selfremember to Google Calendar",
				Action: authAction,
			},
			{
				Name:   "logout",
				Usage:  "Forget the saved Google Calendar credential",
				Action: logoutAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running session",
				Action: statusAction,
			},
			{
				Name:   "quote",
				Usage:  "Print a remembrance prompt",
				Flags:  []cli.Flag{allFlag},
				Action: quoteAction,
			},
			{
				Name:   "sounds",
				Usage:  "List the sounds that can be used for the session cues",
				Action: soundsAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			aimFlag,
			durationFlag,
			idleTimeoutFlag,
			sessionCmdFlag,
			noCalendarFlag,
			disableNotificationFlag,
			noSoundFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
