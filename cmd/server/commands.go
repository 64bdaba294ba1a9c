package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	appfx "github.com/amityadav/modsearch/internal/fx"
	"github.com/amityadav/modsearch/internal/gateway"
	"github.com/amityadav/modsearch/internal/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP gateway and the gRPC health server",
		Action: serve,
	}
}

// QueryCommand creates the query command
func QueryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Run a single search through the gateway and print the response",
		ArgsUsage: "<text>",
		Action: func(ctx context.Context, c *cli.Command) error {
			return runQuery(ctx, os.Stdout, strings.Join(c.Args().Slice(), " "))
		},
	}
}

func serve(ctx context.Context, c *cli.Command) error {
	// FX resolves dependencies, runs OnStart/OnStop hooks and handles
	// graceful shutdown on SIGINT/SIGTERM.
	app := fx.New(
		appfx.ConfigModule,  // Provides: config.Config
		appfx.SearchModule,  // Provides: *search.Registry, *scraper.Scraper, *ants.Pool
		appfx.GatewayModule, // Provides: gateway.Backend, *gateway.Dispatcher
		appfx.ServerModule,  // Starts HTTP + gRPC servers

		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ConsoleLogger{W: log.Writer()}
		}),
	)

	app.Run()
	return app.Err()
}

func runQuery(ctx context.Context, w io.Writer, query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query text is required")
	}

	var d *gateway.Dispatcher
	app := fx.New(
		appfx.ConfigModule,
		appfx.SearchModule,
		appfx.GatewayModule,
		fx.NopLogger,
		fx.Populate(&d),
	)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("starting gateway: %w", err)
	}
	defer app.Stop(context.Background())

	results, outcome, err := d.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("normalizing results: %w", err)
	}
	if outcome.IsFallback() {
		log.Printf("Fallback results used: %s", outcome.Reason())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(server.NewSearchResponse(query, results))
}
