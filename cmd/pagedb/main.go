// Package main implements the CLI interface for pagedb.
//
// EDUCATIONAL NOTES:
// ------------------
// This is the entry point for our database CLI. It:
// 1. Parses command-line flags
// 2. Loads the optional config file and sets up logging
// 3. Creates an empty in-memory table
// 4. Hands stdin/stdout to the REPL until .exit or end of input
//
// Nothing is saved: the table is dropped when the process exits.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cabewaldrop/pagedb/internal/config"
	"github.com/cabewaldrop/pagedb/internal/logger"
	"github.com/cabewaldrop/pagedb/internal/repl"
	"github.com/cabewaldrop/pagedb/internal/table"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to a .ini or .toml config file")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pagedb version %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	closer, err := logger.Init(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	tbl := table.New()
	r := repl.New(tbl, os.Stdin, os.Stdout, cfg.REPL.Prompt, logrus.WithField("component", "repl"))

	logrus.WithField("version", version).Debug("starting")
	if err := r.Run(context.Background()); err != nil {
		logrus.WithError(err).Error("repl stopped")
		closer.Close()
		os.Exit(1)
	}
	logrus.WithField("rows", tbl.NumRows()).Debug("exiting")
}
