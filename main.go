package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/M8eight/socio-oprosnik/app"
	"github.com/M8eight/socio-oprosnik/config"
	"github.com/M8eight/socio-oprosnik/db/bundb"
)

func main() {
	cliApp := &cli.App{
		Name:  "socio-oprosnik",
		Usage: "backend for the visual-novel quiz game",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: runServe,
			},
			{
				Name:  "db",
				Usage: "database maintenance",
				Subcommands: []*cli.Command{
					{
						Name:   "init",
						Usage:  "create tables if they do not exist",
						Action: runDBInit,
					},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runServe(c *cli.Context) error {
	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("error closing database connection", slog.Any("error", err))
		}
	}()

	return application.Start(ctx)
}

func runDBInit(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	dbService, err := bundb.NewBunDBService(c.Context, cfg.Postgres)
	if err != nil {
		return err
	}
	defer dbService.GetDB().Close()

	if err := bundb.BootstrapSchema(c.Context, dbService.GetDB()); err != nil {
		return err
	}
	logger.Info("schema ready")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Logging.SlogLevel(),
	}))
}
