// main.go — scenariomcp server entry point. Wires config, logging,
// storage, the page driver and the tool surface together, then serves
// MCP over stdio for the lifetime of the process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/applog"
	"github.com/scenariomcp/scenariomcp/internal/config"
	"github.com/scenariomcp/scenariomcp/internal/executor"
	"github.com/scenariomcp/scenariomcp/internal/mcptool"
	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/state"
	"github.com/scenariomcp/scenariomcp/internal/store"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	headless := flag.Bool("headless", false, "run the browser headless")
	remoteChrome := flag.String("remote-chrome", "", "connect to an existing Chrome DevTools WebSocket URL instead of launching one")
	maxRetries := flag.Int("max-retries", 0, "override the configured max action retries")
	searchIndex := flag.Bool("search-index", false, "mirror the scenario index into a SQLite search index")
	flag.Parse()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scenariomcp: cannot determine working directory: %v\n", err)
		return 1
	}

	flags := &config.FlagOverrides{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			flags.LogLevel = logLevel
		case "headless":
			flags.Headless = headless
		case "remote-chrome":
			flags.RemoteChrome = remoteChrome
		case "max-retries":
			flags.MaxRetries = maxRetries
		case "search-index":
			flags.SearchIndex = searchIndex
		}
	})

	cfg, err := config.Load(cwd, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scenariomcp: configuration: %v\n", err)
		return 2
	}

	logFile, err := state.DefaultLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scenariomcp: %v\n", err)
		return 1
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "scenariomcp: create log directory: %v\n", err)
		return 1
	}
	logWriter, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scenariomcp: open log file: %v\n", err)
		return 1
	}
	defer logWriter.Close()
	logger := applog.New(cfg.LogLevel, logWriter)

	scenariosDir, err := state.ScenariosDir()
	if err != nil {
		logger.Error().Err(err).Msg("resolve scenarios directory")
		return 1
	}
	secretsDir, err := state.SecretsDir()
	if err != nil {
		logger.Error().Err(err).Msg("resolve secrets directory")
		return 1
	}
	indexFile, err := state.IndexFile()
	if err != nil {
		logger.Error().Err(err).Msg("resolve index file")
		return 1
	}

	st := store.NewStore(scenariosDir, secretsDir, indexFile)
	if err := st.Initialise(); err != nil {
		logger.Error().Err(err).Msg("initialise store")
		return 1
	}
	if cfg.SearchIndex {
		searchFile, err := state.SearchIndexFile()
		if err != nil {
			logger.Error().Err(err).Msg("resolve search index file")
			return 1
		}
		if err := st.EnableSearchIndex(searchFile); err != nil {
			logger.Error().Err(err).Msg("enable search index")
			return 1
		}
	}

	driver, err := pagedriver.NewRodDriver(pagedriver.RodConfig{
		RemoteURL: cfg.RemoteChrome,
		Headless:  cfg.Headless,
	})
	if err != nil {
		logger.Error().Err(err).Msg("start page driver")
		return 1
	}
	defer driver.Close()

	ex := executor.New(driver, st, executor.Config{MaxRetries: cfg.MaxRetries})

	redactConfig, err := state.RedactionConfigFile()
	if err != nil {
		logger.Error().Err(err).Msg("resolve redaction config path")
		return 1
	}
	deps := mcptool.NewDeps(st, ex, driver, redactConfig)

	srv := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "scenariomcp", Version: version}, nil)
	mcptool.Register(srv, deps)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info().Str("log_level", cfg.LogLevel).Bool("headless", cfg.Headless).Msg("scenariomcp starting")

	transport := &sdkmcp.IOTransport{Reader: os.Stdin, Writer: os.Stdout}
	if err := srv.Run(ctx, transport); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("server exited")
		return 1
	}
	return 0
}
