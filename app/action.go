package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/selfremember/internal/config"
	"github.com/ayoisaiah/selfremember/internal/logging"
	"github.com/ayoisaiah/selfremember/internal/osutil"
	"github.com/ayoisaiah/selfremember/internal/pathutil"
	"github.com/ayoisaiah/selfremember/internal/static"
	"github.com/ayoisaiah/selfremember/internal/ui"
	"github.com/ayoisaiah/selfremember/timer"
)

const (
	envUpdateNotifier = "SELFREMEMBER_UPDATE_NOTIFIER"
	envNoColor        = "NO_COLOR"
	envAppNoColor     = "SELFREMEMBER_NO_COLOR"
)

// logFile is closed by afterAction.
var logFile io.Closer

// checkForUpdates alerts the user if there is an updated version of
// selfremember from the one currently installed.
func checkForUpdates(app *cli.App) {
	spinner, _ := pterm.DefaultSpinner.Start("Checking for updates...")
	c := http.Client{Timeout: 10 * time.Second}

	resp, err := c.Get("https://github.com/ayoisaiah/selfremember/releases/latest")
	if err != nil {
		pterm.Error.Println("HTTP Error: Failed to check for update")
		return
	}

	defer resp.Body.Close()

	var version string

	_, err = fmt.Sscanf(
		resp.Request.URL.String(),
		"https://github.com/ayoisaiah/selfremember/releases/tag/%s",
		&version,
	)
	if err != nil {
		pterm.Error.Println("Failed to get latest version")
		return
	}

	if version == app.Version {
		text := pterm.Sprintf(
			"Congratulations, you are using the latest version of %s",
			app.Name,
		)
		spinner.Success(text)
	} else {
		pterm.Warning.Prefix = pterm.Prefix{
			Text:  "UPDATE AVAILABLE",
			Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
		}
		pterm.Warning.Printfln(
			"A new release of selfremember is available: %s at %s",
			version,
			resp.Request.URL.String(),
		)
	}
}

// loadConfig reads the config file and applies the command-line flags. With
// prompt set, a missing config file is created from the first-run prompt.
func loadConfig(ctx *cli.Context, prompt bool) (*config.Config, error) {
	path := pathutil.ConfigFilePath()

	var opts []config.Option

	if prompt {
		opts = append(opts, config.WithPromptConfig(path))
	}

	opts = append(opts, config.WithViperConfig(path), config.WithCLIConfig(ctx))

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	w, err := logging.Setup(pathutil.LogFilePath(), cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	logFile = w

	slog.Debug("config loaded", slog.String("config", cfg.String()))

	return cfg, nil
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	cmd := exec.Command(osutil.Editor(), pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// statusAction handles the status command and prints the status of the
// running session.
func statusAction(_ *cli.Context) error {
	return timer.ReportStatus(
		config.Stdout,
		pathutil.DBFilePath(),
		pathutil.StatusFilePath(),
	)
}

// soundsAction lists the sounds found in the sounds directory.
func soundsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	opts := config.SoundOpts()
	if len(opts) == 0 {
		pterm.Info.Printfln(
			"No sounds found. Add mp3, ogg, flac or wav files to %s",
			pathutil.SoundsDir(),
		)

		return nil
	}

	data := [][]string{{"Sound", "Used for"}}

	for _, name := range opts {
		data = append(data, []string{name, usedFor(cfg.Sound, name)})
	}

	return ui.PrintTable(data, config.Stdout)
}

// usedFor names the cues configured to play sound.
func usedFor(s config.SoundConfig, sound string) string {
	var cues string

	for _, c := range []struct {
		name, value string
	}{
		{"start", s.Start},
		{"end", s.End},
		{"resume", s.Resume},
		{"stop", s.Stop},
	} {
		if c.value == "" || pathutil.StripExtension(filepath.Base(c.value)) != sound {
			continue
		}

		if cues != "" {
			cues += ", "
		}

		cues += c.name
	}

	return cues
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/selfremember/releases/%s\n",
			c.App.Version,
		)

		if _, found := os.LookupEnv(envUpdateNotifier); found {
			checkForUpdates(c.App)
		}
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if SELFREMEMBER_NO_COLOR is set
	if _, exists := os.LookupEnv(envAppNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	return static.CopyToDataDir(pathutil.DataDir())
}

func afterAction(_ *cli.Context) error {
	if logFile == nil {
		return nil
	}

	slog.Info("exiting selfremember")

	return logFile.Close()
}
