package main

import (
	"os"

	"github.com/lonng/onyou/internal/command"
	"github.com/lonng/onyou/pkg/errutil"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()

	// base application info
	app.Name = "onyou"
	app.Author = "onyou team"
	app.Version = "0.1.0"
	app.Usage = "club client: browse clubs, manage members, post to the feed"

	// flags
	app.Flags = command.Flags()
	app.Before = command.Before
	app.Commands = command.Commands()

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(errutil.ExitCode(err))
	}
}
