// Package main provides the server entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/osa030/playtime/internal/api/rest"
	"github.com/osa030/playtime/internal/app/analyzer"
	"github.com/osa030/playtime/internal/infra/config"
	"github.com/osa030/playtime/internal/infra/logger"
)

var (
	app        = kingpin.New("playtime", "YouTube playlist duration reports")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// report command
	reportCmd    = app.Command("report", "Print the report of a single playlist and exit")
	reportTarget = reportCmd.Arg("playlist", "Playlist id or URL").Required().String()
	reportLocale = reportCmd.Flag("locale", "Report language").Short('l').String()
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	loggerConfig.File = *logfile
	closer, err := logger.Init(loggerConfig)
	if err != nil {
		app.Fatalf("failed to initialize logger: %v", err)
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load config")
	}

	if command == reportCmd.FullCommand() {
		err = runReport(cfg, *reportTarget, *reportLocale)
	} else {
		err = run(cfg)
	}
	os.Exit(exitCode(err, closer))
}

// exitCode logs err, releases the log output and returns the process exit code.
func exitCode(err error, logOutput io.Closer) int {
	code := 0
	if err != nil {
		zlog.Error().Err(err).Msg("Exiting with error")
		code = 1
	}
	if cerr := logOutput.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "failed to close log output: %v\n", cerr)
	}
	return code
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	c, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(rest.NewServer(c.service, c.validator, cfg.Server.RequestTimeout).Router(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return zlog.Logger.WithContext(ctx)
		},
	}

	serverErrCh := make(chan error, 1)
	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Give the listener a moment before running startup hooks
	select {
	case err := <-serverErrCh:
		return errors.Wrap(err, "server error")
	case <-time.After(100 * time.Millisecond):
	}
	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return errors.Wrap(err, "server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("Failed to shutdown server")
	}

	zlog.Info().Msg("Server stopped")

	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return nil
}

// runReport prints the report for target, a playlist id or URL, as JSON.
func runReport(cfg *config.Config, target, lang string) error {
	ctx := zlog.Logger.WithContext(context.Background())

	c, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	req, err := c.validator.Validate(reportParams(target, lang))
	if err != nil {
		return err
	}

	rep, err := c.service.Analyze(ctx, req)
	if err != nil {
		var batchErr *analyzer.BatchError
		if errors.As(err, &batchErr) {
			for _, f := range batchErr.Failures {
				zlog.Error().Int("status", f.Status).Msg(f.Message)
			}
		}
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// reportParams maps a command line argument to the query parameters the
// HTTP endpoint would receive.
func reportParams(target, lang string) url.Values {
	params := url.Values{}
	if strings.Contains(target, "://") {
		params.Set(analyzer.ParamURL, target)
	} else {
		params.Set(analyzer.ParamID, target)
	}
	if lang != "" {
		params.Set(analyzer.ParamLocale, lang)
	}
	return params
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		// Use sh -c to allow shell features like redirection or pipes
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
