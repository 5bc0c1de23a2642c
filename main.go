// main.go
//
// Entry point for the Wordlet server and its command line tools.
//   - serve (default) runs the HTTP API (serve.go)
//   - link, decode, batch, daily work offline on links and tokens (tools.go)
//
// Configuration comes from .env and the environment (internal/config);
// flags override single fields.

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/robalobadob/wordlet/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout, config.Load).Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("wordlet")
	}
}

// newApp builds the command tree. load is called once, before any command
// runs, and its result is shared by all of them.
func newApp(in io.Reader, out io.Writer, load func() (config.Config, error)) *cli.Command {
	var cfg config.Config
	return &cli.Command{
		Name:   "wordlet",
		Usage:  "Spanish word guessing game: HTTP server and link tools",
		Reader: in,
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: `"console" for human output, JSON otherwise`},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			c, err := load()
			if err != nil {
				return ctx, err
			}
			if cmd.IsSet("log-level") {
				c.LogLevel = cmd.String("log-level")
			}
			if cmd.IsSet("log-format") {
				c.LogFormat = cmd.String("log-format")
			}
			setupLogging(c.LogLevel, c.LogFormat)
			cfg = c
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, cmd, cfg)
		},
		Commands: []*cli.Command{
			serveCommand(&cfg),
			linkCommand(&cfg),
			decodeCommand(),
			batchCommand(&cfg),
			dailyCommand(&cfg),
		},
	}
}

func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
