// Package main is the Kurabe CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hyperjump/kurabe/internal/cli"
	"github.com/hyperjump/kurabe/internal/client"
	"github.com/hyperjump/kurabe/internal/config"
	"github.com/hyperjump/kurabe/internal/server"
	"github.com/hyperjump/kurabe/internal/session"
	"github.com/hyperjump/kurabe/internal/tui"
	"github.com/hyperjump/kurabe/internal/watcher"
	"github.com/hyperjump/kurabe/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kurabe/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. A missing default file falls back to built-in defaults.
// Returns the config and the path that was actually loaded (empty when
// defaults were used).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "tui":
		runTUI()
	case "compare":
		runCompare()
	case "serve":
		runServe()
	case "version", "--version", "-v":
		fmt.Printf("kurabe version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// newSession wires the API client and a fresh comparison session from cfg.
func newSession(cfg *config.Config, logger *zap.Logger) *session.Session {
	api := client.New(cfg.API.BaseURL,
		client.WithTimeout(cfg.API.Timeout()),
		client.WithLogger(logger),
	)
	return session.New(api, session.Config{
		DefaultQuery: cfg.Search.DefaultQuery,
		PageSize:     cfg.Search.PageSize,
		Params: session.Params{
			K1:          cfg.Search.K1,
			B:           cfg.Search.B,
			TFIDFWeight: cfg.Search.TFIDFWeight,
		},
	}, logger)
}

func runTUI() {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logging to the terminal would fight the TUI for the screen.
	sess := newSession(cfg, zap.NewNop())
	program := tea.NewProgram(tui.NewModel(sess), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Printf("TUI failed: %v\n", err)
		os.Exit(1)
	}
}

func runCompare() {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	query := fs.String("query", "", "search query (default: the configured bootstrap query)")
	k1 := fs.Float64("k1", 0, "BM25 k1 parameter (overrides config)")
	b := fs.Float64("b", -1, "BM25 b parameter (overrides config)")
	weight := fs.String("weight", "", "TF-IDF weighting: log, raw, or binary (overrides config)")
	page := fs.Int("page", 1, "page of paired results to print")
	format := fs.String("format", "text", "output format: text or json")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *k1 != 0 {
		cfg.Search.K1 = *k1
	}
	if *b >= 0 {
		cfg.Search.B = *b
	}
	if *weight != "" {
		cfg.Search.TFIDFWeight = *weight
	}

	logger := zap.NewNop()
	if *debug {
		if logger, err = utils.NewLogger(true); err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	sess := newSession(cfg, logger)
	var token session.Token
	var ok bool
	if *query != "" {
		token, ok = sess.Start(*query)
	} else {
		token, ok = sess.Bootstrap()
	}
	if !ok {
		fmt.Println("Nothing to search: query is empty")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout())
	defer cancel()
	if err := sess.Run(ctx, token); err != nil {
		fmt.Printf("Search failed: %v\n", err)
		os.Exit(1)
	}
	sess.SetPage(*page)

	snap := sess.Snapshot()
	report := &cli.Report{
		Query:   snap.ExecutedQuery,
		Metrics: snap.Metrics,
		View:    sess.PageView(),
		Charts:  sess.Charts(),
	}
	if err := cli.WriteReport(os.Stdout, report, cli.OutputFormat(*format)); err != nil {
		fmt.Printf("Failed to write report: %v\n", err)
		os.Exit(1)
	}
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Bool("debug", debugMode),
	)

	sess := newSession(cfg, logger)
	srv := server.NewServer(sess, &cfg.Server, logger)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if resolvedConfigPath != "" {
		opts := []watcher.Option{}
		if debugMode {
			opts = append(opts, watcher.WithLogger(logger))
		}
		w := watcher.New(resolvedConfigPath, func() {
			reloaded, loadErr := config.Load(resolvedConfigPath)
			if loadErr != nil {
				logger.Warn("config reload failed", zap.Error(loadErr))
				return
			}
			sess.SetParams(session.Params{
				K1:          reloaded.Search.K1,
				B:           reloaded.Search.B,
				TFIDFWeight: reloaded.Search.TFIDFWeight,
			})
			logger.Info("search defaults reloaded",
				zap.Float64("k1", reloaded.Search.K1),
				zap.Float64("b", reloaded.Search.B),
				zap.String("tf_idf_weight", reloaded.Search.TFIDFWeight),
			)
		}, opts...)
		if err := w.Start(watchCtx); err != nil {
			logger.Warn("config watch disabled", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func printUsage() {
	fmt.Println(`kurabe - side-by-side TF-IDF vs BM25 search comparison

Usage:
  kurabe tui [flags]       Interactive comparison terminal
  kurabe compare [flags]   One-shot comparison report (text or JSON)
  kurabe serve [flags]     Serve comparison views as a JSON API
  kurabe version           Show version
  kurabe help              Show this help

Flags:
  -config <path>   Config file (default ` + defaultConfigPath + `,
                   or ./config.yaml when present)
  See "kurabe <command> -h" for command flags.`)
}
