package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophcatalog/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-t", "-r", "-l"}

// parseFlags populates Config fields from the process arguments. Only the
// flags listed in knownFlags are considered (see flagx.FilterArgs), so the
// config file flags can live on the same command line. It panics on
// malformed values.
func parseFlags(cfg *Config) {
	if err := parseFlagArgs(cfg, os.Args[1:]); err != nil {
		panic(err)
	}
}

func parseFlagArgs(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the catalog API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local storage file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RateLimit, "r", cfg.RateLimit, "request rate limit (per second)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
