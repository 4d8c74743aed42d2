package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mailru/easyjson"
	"github.com/sirupsen/logrus"

	"github.com/suremarc/go-almanac/packages/remap/almanac"
	"github.com/suremarc/go-almanac/packages/remap/report"
	"github.com/suremarc/go-almanac/packages/remap/solver"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		logrus.WithError(err).Fatal("parse args")
	}
	cfg.applyLogLevel()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("run")
	}
}

func run(ctx context.Context, cfg config, stdin io.Reader, stdout io.Writer) error {
	logger := logrus.WithFields(logrus.Fields{
		"input": cfg.input,
		"mode":  cfg.mode,
	})

	input, err := readInput(ctx, cfg, stdin)
	if err != nil {
		return fmt.Errorf("couldn't read input: %w", err)
	}

	seedsText, _ := cfg.seeds.MarshalText()
	digest := report.Digest(append(input, seedsText...), cfg.mode, cfg.gaps)

	var store *SQLStore
	if cfg.dbPath != "" {
		store, err = NewSQLStore(cfg.dbPath)
		if err != nil {
			return fmt.Errorf("couldn't open store: %w", err)
		}
		defer store.Close()

		cached, err := store.Query(ctx, digest)
		if err == nil {
			logger.WithField("run_id", cached.RunID).Info("using stored result")
			return printReport(stdout, cfg, cached)
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("couldn't query store: %w", err)
		}
	}

	a, err := almanac.Parse(bytes.NewReader(input))
	if err != nil {
		return err
	}
	p, err := a.Pipeline()
	if err != nil {
		return err
	}

	opts := []solver.Option{solver.WithLogger(logger)}
	if cfg.gaps {
		opts = append(opts, solver.WithGapSplitting())
	}
	s := solver.New(p, opts...)

	rep := report.New(digest, cfg.mode, cfg.gaps)
	t0 := time.Now()

	var minimum uint64
	switch cfg.mode {
	case report.ModePoint:
		minimum, err = s.MinPoint(a.Seeds)
	default:
		rngs := cfg.seeds
		if len(rngs) == 0 {
			if rngs, err = a.SeedRanges(); err != nil {
				return err
			}
		}
		logger.WithFields(logrus.Fields{
			"ranges": len(rngs),
			"seeds":  rngs.Len(),
		}).Info("solving seed ranges")
		minimum, err = s.MinRangeParallel(ctx, rngs, cfg.concurrency)
	}
	if err != nil {
		return err
	}
	rep.Complete(minimum, s.Stats(), time.Since(t0))
	logger.WithField("report", rep).Debug("solved")

	if store != nil {
		if err := store.Log(ctx, rep); err != nil {
			logger.WithError(err).Error("couldn't log report")
		}
	}

	return printReport(stdout, cfg, rep)
}

func readInput(ctx context.Context, cfg config, stdin io.Reader) ([]byte, error) {
	switch {
	case cfg.input == "-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(cfg.input, "http://"), strings.HasPrefix(cfg.input, "https://"):
		client := resty.New().
			SetTimeout(30 * time.Second).
			SetRetryCount(3).
			SetRetryWaitTime(time.Second)
		return almanac.NewFetcher(client, cfg.session).Fetch(ctx, cfg.input)
	default:
		return os.ReadFile(cfg.input)
	}
}

func printReport(w io.Writer, cfg config, rep report.Report) error {
	if !cfg.json {
		_, err := fmt.Fprintln(w, rep.Minimum)
		return err
	}

	buf, err := easyjson.Marshal(rep)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(buf))
	return err
}
