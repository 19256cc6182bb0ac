// Package cmd implements the nova command line.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/nova"
	"github.com/etnz/nova/advisor"
	"github.com/etnz/nova/config"
	"github.com/etnz/nova/log"
	"github.com/etnz/nova/renderer"
	"github.com/etnz/nova/storage"
	"github.com/google/subcommands"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", "", "Data directory, overrides NOVA_DATA_DIR.")
var backend = flag.String("backend", "", "Storage backend (file, sqlite or memory), overrides NOVA_BACKEND.")

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// app is what a subcommand needs: the configuration and the opened book.
type app struct {
	cfg    *config.Config
	log    *log.Logger
	book   *nova.Book
	lang   nova.Lang
	r      *renderer.Renderer
	closer io.Closer
}

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.SetDataDir(*dataDir)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *log.Logger {
	level, _ := log.ParseLevel(cfg.LogLevel) // already validated
	l := log.New(log.Config{Level: level, Component: log.ComponentCLI, Output: stderr})
	log.SetDefault(l)
	return l
}

// openStore opens the configured backend. The closer is nil when there is
// nothing to release.
func openStore(cfg *config.Config) (nova.KV, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.BackendMemory:
		return storage.NewMemory(), nil, nil
	default:
		dir, err := storage.OpenDir(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return dir, nil, nil
	}
}

// openApp loads the configuration and opens the book.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	lang, err := nova.ParseLang(cfg.Lang)
	if err != nil {
		return nil, err
	}
	l := newLogger(cfg)
	kv, closer, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s store: %w", cfg.Backend, err)
	}
	book, err := nova.OpenBook(ctx, kv, nova.WithLogger(l))
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	return &app{
		cfg:    cfg,
		log:    l,
		book:   book,
		lang:   lang,
		r:      renderer.New(lang, cfg.Currency),
		closer: closer,
	}, nil
}

// Close releases the store.
func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// advisor returns an advisor configured like the app.
func (a *app) advisor(ctx context.Context) (*advisor.Advisor, error) {
	return advisor.New(ctx, a.cfg, advisor.WithLogger(a.log))
}

// print renders markdown in the book theme.
func (a *app) print(md string) { printMarkdown(a.book.Theme(), md) }

// withApp opens the app, runs f and closes the app.
func withApp(ctx context.Context, f func(*app) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	return f(a)
}

// confirm reads a yes/no answer on stdin, no by default.
func confirm() bool {
	fmt.Fprint(stdout, "[y/N] ")
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}
