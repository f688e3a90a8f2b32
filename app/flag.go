package app

import "github.com/urfave/cli/v2"

var (
	aimFlag = &cli.StringFlag{
		Name:    "aim",
		Aliases: []string{"a"},
		Usage:   "What you intend to do in this session. Starts the session immediately",
	}

	durationFlag = &cli.StringFlag{
		Name:    "duration",
		Aliases: []string{"d"},
		Usage:   "Session length: '5 min', '15 min', '25 min', '30 min', '45 min' or '1 hour'",
	}

	idleTimeoutFlag = &cli.StringFlag{
		Name:  "idle-timeout",
		Usage: "Pause the session after this much inactivity (e.g. '5m', or a number of minutes)",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each completed session",
	}

	noCalendarFlag = &cli.BoolFlag{
		Name:  "no-calendar",
		Usage: "Do not record sessions in Google Calendar",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:  "disable-notification",
		Usage: "Disable the system notifications shown when a session ends or is paused",
	}

	noSoundFlag = &cli.BoolFlag{
		Name:  "no-sound",
		Usage: "Silence every session sound",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	allFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "Print every quote instead of a random one",
	}
)
