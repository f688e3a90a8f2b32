package main

import (
	"os"

	"github.com/ayoisaiah/selfremember/app"
	"github.com/ayoisaiah/selfremember/report"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	if err := run(os.Args); err != nil {
		report.Quit(err)
	}
}
