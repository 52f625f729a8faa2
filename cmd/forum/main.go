package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/reddit-lite/internal/commands"
	"github.com/emilythestrangee/reddit-lite/internal/config"
	"github.com/emilythestrangee/reddit-lite/internal/database"
	"github.com/emilythestrangee/reddit-lite/internal/server"
	"github.com/emilythestrangee/reddit-lite/internal/session"
	"github.com/emilythestrangee/reddit-lite/internal/shell"
	"github.com/emilythestrangee/reddit-lite/internal/store"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// stdin is a variable so tests can feed the shell.
var stdin io.Reader = os.Stdin

// Run is the entrypoint for testing
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := "shell"
	if len(args) >= 2 {
		cmd = args[1]
	}
	var rest []string
	if len(args) > 2 {
		rest = args[2:]
	}

	switch cmd {
	case "shell":
		return runShell(rest, stdout, stderr)
	case "serve", "server":
		return runServe(rest, stdout, stderr)
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		printUsage(stderr)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: forum <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell [--strict] [--prompt P]   interactive forum on stdin (default)")
	fmt.Fprintln(w, "  serve                           HTTP API on $PORT")
	fmt.Fprintln(w, "  help                            this message")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Technology, Gaming and Movies exist at startup; set SEED_COMMUNITIES to")
	fmt.Fprintln(w, "another comma-separated list, or to an empty value for none.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Shell commands:")
	fmt.Fprint(w, shell.Describe())
}

// setup loads configuration, installs the slog handler and opens a seeded
// database.
func setup(ctx context.Context, stderr io.Writer) (*config.Config, database.Service, *slog.Logger, error) {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	db, err := database.New(cfg.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.New(db.GetDB()).Seed(ctx, cfg.Seeds...); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("seed communities: %w", err)
	}
	return cfg, db, logger, nil
}

func runShell(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", false, "stop at the first failure and exit with its code")
	prompt := fs.String("prompt", "> ", "prompt printed before each line")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	_, db, logger, err := setup(ctx, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "forum: %v\n", err)
		return 1
	}
	defer db.Close()

	st := store.New(db.GetDB())
	opts := []shell.Option{shell.Prompt(*prompt), shell.WithLogger(logger)}
	if *strict {
		opts = append(opts, shell.Strict())
	}
	sh := shell.New(commands.New(st, session.New(st), logger), stdout, opts...)
	return sh.Run(ctx, stdin)
}

func runServe(args []string, _, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, db, logger, err := setup(ctx, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "forum: %v\n", err)
		return 1
	}
	defer db.Close()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	srv := server.New(cfg, db, logger).HTTPServer()
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return 1
	}
	return 0
}
