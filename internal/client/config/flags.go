package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/medmate/internal/flagx"
)

// parseFlags applies the command-line overrides:
//
//	-a string   backend base URL
//	-d string   local database path ("" keeps credentials in memory)
//	-l string   log level: debug, info, warn, error
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l"})

	fs := flag.NewFlagSet("medmate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
