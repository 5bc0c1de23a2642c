// serve.go
//
// The serve command: loads the word list, opens the settings database,
// starts the idle-session sweeper and runs the HTTP server until the
// process is signalled.

package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/robalobadob/wordlet/internal/config"
	"github.com/robalobadob/wordlet/internal/httpserver"
	"github.com/robalobadob/wordlet/internal/settings"
	"github.com/robalobadob/wordlet/internal/store"
	"github.com/robalobadob/wordlet/internal/words"
)

const sweepEvery = time.Minute

func serveCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API (default)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port"},
			&cli.StringFlag{Name: "db", Usage: `SQLite file for player settings (":memory:" keeps nothing)`},
			&cli.StringFlag{Name: "words", Usage: "word list file replacing the embedded one"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, cmd, *cfg)
		},
	}
}

func runServe(ctx context.Context, cmd *cli.Command, cfg config.Config) error {
	if cmd.IsSet("port") {
		cfg.Port = cmd.String("port")
	}
	if cmd.IsSet("db") {
		cfg.DBPath = cmd.String("db")
	}
	if cmd.IsSet("words") {
		cfg.WordsFile = cmd.String("words")
	}
	if cfg.InsecureSecret() {
		log.Warn().Msg("JWT_SECRET not set, player cookies use the development secret")
	}

	list, err := words.Load(cfg.WordsFile, cfg.Game)
	if err != nil {
		return err
	}
	prefs, closeDB, err := openDatabase(ctx, cfg.DBPath, settings.Defaults(cfg.Game))
	if err != nil {
		return err
	}
	defer closeDB()

	sessions := store.NewMemoryStore()
	go store.RunSweeper(ctx, sessions, sweepEvery, cfg.SessionIdle)

	srv := httpserver.New(cfg, sessions, prefs, list,
		httpserver.WithLogger(log.Logger.With().Str("component", "http").Logger()))
	log.Info().Str("port", cfg.Port).Int("words", list.Len()).Str("base", cfg.PublicBaseURL).Msg("starting wordlet")
	return srv.Start(ctx, ":"+cfg.Port)
}
