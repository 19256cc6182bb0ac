package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/etnz/nova/api"
	"github.com/etnz/nova/log"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the JSON API" }
func (*serveCmd) Usage() string {
	return `nova serve [-addr <host:port>]

  Serves the transactions, reports, budgets and the advisor as a JSON API
  under /api. See 'nova topic api'. Stops on Ctrl+C.

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, overrides NOVA_ADDR.")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withApp(ctx, func(a *app) subcommands.ExitStatus {
		addr := c.addr
		if addr == "" {
			addr = a.cfg.Addr
		}
		adv, err := a.advisor(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		l := a.log.WithComponent(log.ComponentAPI)
		srv := &http.Server{
			Addr:              addr,
			Handler:           api.New(a.book, adv, api.WithLogger(l), api.WithLang(a.lang)).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() { errc <- srv.ListenAndServe() }()
		fmt.Fprintf(stderr, "Serving the nova API on %s\n", addr)
		l.Info("listening", log.FieldOperation, log.OpStartup, "addr", addr, log.FieldBackend, a.cfg.Backend)

		select {
		case err := <-errc:
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		case <-ctx.Done():
		}
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	})
}
