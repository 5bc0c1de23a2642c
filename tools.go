// tools.go
//
// Offline commands. They never touch the HTTP server or the database:
//   - link WORD            game link (and optional QR PNG) for one word
//   - decode TOKEN|URL     print a shared result
//   - batch [FILE]         links for a word list, one per line
//   - daily                today's (or --date's) word-of-the-day link

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/robalobadob/wordlet/internal/batch"
	"github.com/robalobadob/wordlet/internal/config"
	"github.com/robalobadob/wordlet/internal/daily"
	"github.com/robalobadob/wordlet/internal/qr"
	"github.com/robalobadob/wordlet/internal/share"
	"github.com/robalobadob/wordlet/internal/words"
)

var errMissingArg = errors.New("missing argument")

func linkCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "link",
		Usage:     "print the game link for a word",
		ArgsUsage: "WORD",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "attempts", Usage: "attempts allowed (0 uses DEFAULT_ATTEMPTS)"},
			&cli.BoolFlag{Name: "hard", Usage: "hard mode"},
			&cli.StringFlag{Name: "qr", Usage: "also write a QR code PNG to this file"},
			&cli.IntFlag{Name: "qr-size", Value: qr.DefaultSize, Usage: "QR code size in pixels"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			word := cmd.Args().First()
			if word == "" {
				return fmt.Errorf("link: %w WORD", errMissingArg)
			}
			p, err := share.NewGameParams(word, cmd.Int("attempts"), cmd.Bool("hard"), cfg.Game)
			if err != nil {
				return err
			}
			link, err := share.GameURL(cfg.GameBase(), p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, link)

			if path := cmd.String("qr"); path != "" {
				png, err := qr.Render(ctx, link, cmd.Int("qr-size"))
				if err != nil {
					return err
				}
				return os.WriteFile(path, png, 0o644)
			}
			return nil
		},
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "print a shared result",
		ArgsUsage: "TOKEN|RESULT_URL",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			arg := cmd.Args().First()
			if arg == "" {
				return fmt.Errorf("decode: %w TOKEN", errMissingArg)
			}
			sum, err := share.Decode(tokenFrom(arg))
			if err != nil {
				return err
			}
			w := cmd.Root().Writer
			fmt.Fprintf(w, "%s %s (%d/%d)\n", sum.Word, sum.State, sum.Attempts, sum.MaxAttempts)
			fmt.Fprintln(w, sum.Transcript())
			return nil
		},
	}
}

// tokenFrom accepts a bare token or a result URL carrying one.
func tokenFrom(arg string) string {
	if u, err := url.Parse(arg); err == nil && u.Scheme != "" {
		if t := u.Query().Get(share.ParamData); t != "" {
			return t
		}
	}
	return arg
}

func batchCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "print game links for a list of words (newline or comma separated)",
		ArgsUsage: "[FILE|-]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "auto", Usage: "attempts = word length + 1, between 4 and 8"},
			&cli.IntFlag{Name: "attempts", Usage: "attempts for every word when not --auto"},
			&cli.BoolFlag{Name: "hard", Usage: "hard mode"},
			&cli.StringFlag{Name: "qr-dir", Usage: "write one QR code PNG per word into this directory"},
			&cli.IntFlag{Name: "qr-size", Value: qr.DefaultSize, Usage: "QR code size in pixels"},
			&cli.IntFlag{Name: "workers", Usage: "concurrent QR renders"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			text, err := readInput(cmd.Root().Reader, cmd.Args().First())
			if err != nil {
				return err
			}
			dir := cmd.String("qr-dir")
			opts := batch.Options{
				BaseURL:  cfg.GameBase(),
				Auto:     cmd.Bool("auto"),
				Attempts: cmd.Int("attempts"),
				HardMode: cmd.Bool("hard"),
				Workers:  cmd.Int("workers"),
			}
			if dir != "" {
				opts.QRSize = qr.ClampSize(cmd.Int("qr-size"))
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}

			res, err := batch.Generate(ctx, cfg.Game, batch.ParseWords(text), opts)
			if err != nil {
				return err
			}
			for _, raw := range res.Invalid {
				log.Warn().Str("word", raw).Msg("skipped invalid word")
			}
			if len(res.Items) == 0 {
				return errors.New("batch: no valid words")
			}

			w := cmd.Root().Writer
			for _, it := range res.Items {
				fmt.Fprintf(w, "%s\t%d\t%s\n", it.Word, it.Attempts, it.URL)
				if dir != "" {
					path := filepath.Join(dir, strings.ToLower(it.Word)+".png")
					if err := os.WriteFile(path, it.QR, 0o644); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path != "" && path != "-" {
		b, err := os.ReadFile(path)
		return string(b), err
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	b, err := io.ReadAll(stdin)
	return string(b), err
}

func dailyCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "daily",
		Usage: "print the word-of-the-day link",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "YYYY-MM-DD (UTC today when empty)"},
			&cli.BoolFlag{Name: "reveal", Usage: "print the word as well"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			date := time.Now()
			if s := cmd.String("date"); s != "" {
				d, err := time.Parse("2006-01-02", s)
				if err != nil {
					return fmt.Errorf("daily: bad --date: %w", err)
				}
				date = d
			}
			list, err := words.Load(cfg.WordsFile, cfg.Game)
			if err != nil {
				return err
			}
			word := list.Daily(date, cfg.DailySalt)
			link, err := share.GameURL(cfg.GameBase(), share.GameParams{Word: word, Attempts: cfg.Game.DefaultAttempts})
			if err != nil {
				return err
			}
			w := cmd.Root().Writer
			if cmd.Bool("reveal") {
				fmt.Fprintf(w, "%s\t%s\t%s\n", daily.DateKey(date), word, link)
				return nil
			}
			fmt.Fprintf(w, "%s\t%s\n", daily.DateKey(date), link)
			return nil
		},
	}
}
