// deckgen - AI slide deck generation service entry point.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deckgenhq/deckgen/internal/infra/config"
	"github.com/deckgenhq/deckgen/internal/infra/sqlite"
	"github.com/deckgenhq/deckgen/internal/server"
	"github.com/deckgenhq/deckgen/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("deckgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	if fs.NArg() > 0 && fs.Arg(0) == "serve" {
		return serve(fs.Args()[1:], out)
	}

	// Default: print version
	fmt.Fprintln(out, version.String()) //nolint:errcheck
	return 0
}

// serve starts the HTTP server and blocks until SIGINT/SIGTERM.
func serve(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("deckgen serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	host := fs.String("host", "0.0.0.0", "Listen host")
	port := fs.Int("port", 8080, "Listen port")
	configPath := fs.String("config", "", "Path to YAML config file (optional)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()
	if *configPath != "" {
		fileCfg, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(out, "load config: %v\n", err)
			return 1
		}
		cfg = fileCfg
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(out, "open database: %v\n", err)
		return 1
	}
	if err := sqlite.MigrateUp(db); err != nil {
		fmt.Fprintf(out, "run migrations: %v\n", err)
		db.Close() //nolint:errcheck
		return 1
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host = *host
	srvCfg.Port = *port
	srv := server.NewServer(db, cfg, srvCfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(context.Background())
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(out, "server error: %v\n", err)
			return 1
		}
	case sig := <-sigCh:
		fmt.Fprintf(out, "received %s, shutting down\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(out, "shutdown error: %v\n", err)
			return 1
		}
	}
	return 0
}

func printHelp(out io.Writer) {
	helpText := `deckgen - AI slide deck generation service

Usage:
  deckgen [options]
  deckgen serve [options]

Options:
  --version    Show version information
  --help       Show this help message

Serve options:
  --host       Listen host (default 0.0.0.0)
  --port       Listen port (default 8080)
  --config     Path to YAML config file

Examples:
  deckgen --version
  deckgen serve --port 8080
  deckgen serve --config ./config.yaml`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
