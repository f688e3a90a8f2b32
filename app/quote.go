package app

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/selfremember/internal/config"
	"github.com/ayoisaiah/selfremember/internal/pathutil"
	"github.com/ayoisaiah/selfremember/internal/quote"
	"github.com/ayoisaiah/selfremember/internal/static"
	"github.com/ayoisaiah/selfremember/report"
)

// loadQuotes reads the user's quotes file, falling back to the bundled
// quotes when it is missing or invalid.
func loadQuotes(logger *slog.Logger) *quote.Store {
	s, err := quote.LoadFile(pathutil.QuotesFilePath())
	if err == nil && s.Len() > 0 {
		return s
	}

	if err != nil {
		logger.Warn(
			"loading quotes failed, using the bundled quotes",
			slog.String("path", pathutil.QuotesFilePath()),
			slog.Any("error", err),
		)
	}

	s, err = quote.Load(static.Files, static.QuotesFile)
	if err != nil {
		logger.Error("loading bundled quotes failed", slog.Any("error", err))

		return quote.New(nil)
	}

	return s
}

// quoteAction prints a random remembrance prompt, or all of them.
func quoteAction(ctx *cli.Context) error {
	if _, err := loadConfig(ctx, false); err != nil {
		return err
	}

	s := loadQuotes(slog.Default())

	if s.Len() == 0 {
		report.Warn("No quotes found in %s", pathutil.QuotesFilePath())
		return nil
	}

	if !ctx.Bool("all") {
		_, err := fmt.Fprintln(config.Stdout, s.Random())
		return err
	}

	for _, q := range s.All() {
		if _, err := fmt.Fprintln(config.Stdout, q); err != nil {
			return err
		}
	}

	return nil
}
