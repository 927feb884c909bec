package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"platform2d/internal/config"
	"platform2d/internal/game"

	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "platform2d.json", "config file, defaults are used if it does not exist")
	level := flag.String("level", "", "level file, overrides the config")
	term := flag.Bool("term", false, "play in the terminal instead of a window")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level", "level", *logLevel)
	}
	if *term {
		// the terminal owns the screen while it runs
		logger.SetLevel(log.ErrorLevel)
	}
	log.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}
	if *level != "" {
		cfg.Level = *level
	}

	g := game.New(cfg, logger)
	defer g.Close()
	if err := g.Load(); err != nil {
		logger.Error("load level", "err", err)
		os.Exit(1)
	}

	if *term {
		if err := g.RunTerminal(); err != nil {
			logger.Error("terminal", "err", err)
			os.Exit(1)
		}
		return
	}
	g.Run()
}
