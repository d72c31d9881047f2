package main

import (
	"github.com/urfave/cli/v2"

	"github.com/xtding233/cogtrain-backend/internal/appentry"
	"github.com/xtding233/cogtrain-backend/internal/config"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the HTTP and gRPC servers",
		Action: func(c *cli.Context) error {
			conf, err := config.Parse()
			if err != nil {
				return err
			}
			app := appentry.New(conf)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}
