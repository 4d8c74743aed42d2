package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/suremarc/go-almanac/packages/remap/ranges"
	"github.com/suremarc/go-almanac/packages/remap/report"
)

type config struct {
	mode        string
	seeds       ranges.Ranges
	concurrency int
	gaps        bool
	dbPath      string
	json        bool
	input       string

	session  string
	logLevel string
}

var errUsage = errors.New("usage: almanac [flags] <input file | URL | ->")

func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("almanac", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.mode, "mode", report.ModeRange, "point: seeds are values; range: seeds are start/length pairs")
	fs.TextVar(&cfg.seeds, "seeds", ranges.Ranges(nil), "override the input's seed ranges, e.g. 79-92,55-67 (range mode only)")
	fs.IntVar(&cfg.concurrency, "concurrency", 1, "number of seed ranges solved in parallel")
	fs.BoolVar(&cfg.gaps, "gaps", false, "also split sub-ranges whose start is not covered by a stage")
	fs.StringVar(&cfg.dbPath, "db", "", "sqlite database caching results by input")
	fs.BoolVar(&cfg.json, "json", false, "print the full report as JSON")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if fs.NArg() != 1 {
		return config{}, errUsage
	}
	cfg.input = fs.Arg(0)

	switch cfg.mode {
	case report.ModePoint:
		if len(cfg.seeds) > 0 {
			return config{}, fmt.Errorf("-seeds only applies to %s mode", report.ModeRange)
		}
	case report.ModeRange:
	default:
		return config{}, fmt.Errorf("unknown mode %q", cfg.mode)
	}

	cfg.session = getenv("ALMANAC_SESSION")
	cfg.logLevel = getenv("LOG_LEVEL")

	return cfg, nil
}

func (cfg config) applyLogLevel() {
	if cfg.logLevel == "" {
		return
	}

	l, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		logrus.WithField("LOG_LEVEL", cfg.logLevel).Warn("invalid log level")
		return
	}
	logrus.SetLevel(l)
}
