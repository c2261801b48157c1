package main

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/peoplebridge/internal/api"
	"github.com/matiasleandrokruk/peoplebridge/internal/infra/config"
	"github.com/matiasleandrokruk/peoplebridge/internal/mcpserver"
	"github.com/matiasleandrokruk/peoplebridge/internal/server"
	pkgauth "github.com/matiasleandrokruk/peoplebridge/pkg/auth"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"

	shutdownTimeout = 10 * time.Second
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var transport, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact tools over MCP stdio, or MCP + REST over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if transport != transportStdio && transport != transportHTTP {
				return usageError{err: fmt.Errorf("--transport must be %q or %q, got %q", transportStdio, transportHTTP, transport)}
			}

			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			a, err := newApp(cmd.Context(), cfg, log.Logger)
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			if transport == transportStdio {
				return serveStdio(cmd.Context(), a, log.Logger)
			}
			return serveHTTP(cmd.Context(), a, cfg, log.Logger)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", transportStdio, "MCP transport: stdio or http")
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides PEOPLEBRIDGE_HTTP_ADDR)")
	return cmd
}

func serveStdio(ctx context.Context, a *app, log zerolog.Logger) error {
	return mcpserver.Serve(ctx, mcpserver.New(a.contacts, log, mcpserver.StdioSubject), &mcp.StdioTransport{}, log)
}

func serveHTTP(ctx context.Context, a *app, cfg config.Config, log zerolog.Logger) error {
	if err := cfg.RequireJWT(); err != nil {
		return err
	}
	issuer, err := pkgauth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Contacts: a.contacts,
		Tools:    a.tools,
		Audit:    a.audit,
		MCP:      mcpserver.HTTPHandler(a.contacts, log),
		Auth:     issuer,
		Log:      log,
	})
	srv := server.New(router, server.DefaultConfig(cfg.HTTPAddr), log, a)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
