package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/xtding233/cogtrain-backend/internal/config"
	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/pkg/logger"
	"github.com/xtding233/cogtrain-backend/internal/sim"
)

func tuningFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "tuning-dir",
			Usage:   "directory holding games/default.yaml",
			Value:   "config",
			EnvVars: []string{"COGTRAIN_TUNING_DIR"},
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "tuning profile layered over the defaults",
			EnvVars: []string{"COGTRAIN_TUNING_PROFILE"},
		},
	}
}

// quiet configures the console logger for one-shot commands.
func quiet() {
	logger.Configure(&config.Config{DevMode: true})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func loadTuning(c *cli.Context) (game.Config, error) {
	return game.NewLoader(c.String("tuning-dir"), c.String("profile")).Reload()
}

func validateTuningCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate-tuning",
		Usage: "load and validate the tuning files",
		Flags: tuningFlags(),
		Action: func(c *cli.Context) error {
			quiet()
			cfg, err := loadTuning(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			version := cfg.Version
			if version == "" {
				version = "(unversioned)"
			}
			fmt.Fprintf(c.App.Writer, "tuning %s is valid\n", version)
			return nil
		},
	}
}

func simulateCommand() *cli.Command {
	flags := append(tuningFlags(),
		&cli.StringFlag{Name: "game", Usage: "game to simulate", Required: true},
		&cli.Float64Flag{Name: "accuracy", Usage: "probability the player answers correctly", Value: 0.8},
		&cli.IntFlag{Name: "trials", Usage: "sessions to play", Value: 1000},
		&cli.Uint64Flag{Name: "seed", Usage: "seed of the first trial", Value: 1},
		&cli.DurationFlag{Name: "think", Usage: "time the player takes per response"},
	)
	return &cli.Command{
		Name:  "simulate",
		Usage: "play sessions with a scripted player and summarize them",
		Flags: flags,
		Action: func(c *cli.Context) error {
			quiet()
			cfg, err := loadTuning(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			k, err := game.ParseKind(c.String("game"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			rep, err := sim.Run(cfg, sim.Params{
				Game:     k,
				Accuracy: c.Float64("accuracy"),
				Trials:   c.Int("trials"),
				Seed:     c.Uint64("seed"),
				Think:    c.Duration("think"),
			})
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}
}
