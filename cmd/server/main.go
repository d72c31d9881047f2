package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:        "cogtrain",
		Usage:       "cognitive-training mini-game backend",
		Description: "Runs the mini-game sessions over HTTP and reports finished sessions to the result store.",
		Commands: []*cli.Command{
			serveCommand(),
			simulateCommand(),
			validateTuningCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
