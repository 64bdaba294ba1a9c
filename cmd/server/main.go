package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "modsearch",
		Usage: "Resilient search gateway with deterministic fallback results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Environment file loaded before reading configuration",
				Value: ".env",
			},
		},
		Before: loadEnv,
		Action: serve,
		Commands: []*cli.Command{
			ServeCommand(),
			QueryCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadEnv(ctx context.Context, c *cli.Command) (context.Context, error) {
	if err := godotenv.Load(c.String("env-file")); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return ctx, nil
}
