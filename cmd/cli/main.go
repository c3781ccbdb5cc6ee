package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/medmate/internal/buildinfo"
	"github.com/dmitrijs2005/medmate/internal/client/capability"
	"github.com/dmitrijs2005/medmate/internal/client/cli"
	"github.com/dmitrijs2005/medmate/internal/client/client"
	"github.com/dmitrijs2005/medmate/internal/client/config"
	"github.com/dmitrijs2005/medmate/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/medmate/internal/client/services"
	"github.com/dmitrijs2005/medmate/internal/client/session"
	"github.com/dmitrijs2005/medmate/internal/filex"
	"github.com/dmitrijs2005/medmate/internal/logging"
	"github.com/dmitrijs2005/medmate/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint, buildinfo.Version)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "telemetry shutdown failed", "error", err)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeStore()

	opts := []client.ExecutorOption{
		client.WithLogger(logger),
		client.WithDefaultTimeout(cfg.Timeouts.Default),
	}
	if cookies, ok := store.(client.CookieStore); ok {
		opts = append(opts, client.WithCookieStore(cookies))
	}
	exec, err := client.NewExecutor(cfg.BaseURL, opts...)
	if err != nil {
		log.Fatalf("%v", err)
	}
	gateway := client.NewGateway(exec, cfg.Timeouts)

	coord := session.NewCoordinator(gateway, store, logger)
	coord.Start(ctx)

	var locator capability.Locator = capability.UnsupportedLocator{}
	if cfg.Location != nil {
		locator = capability.StaticLocator{Position: capability.Position{
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
		}}
	}

	in := bufio.NewReader(os.Stdin)
	checkout := cli.NewTerminalCheckout(in, os.Stdout)

	app := cli.NewApp(cli.Deps{
		API:     gateway,
		Session: coord,
		Credits: services.NewCreditsService(gateway, checkout, coord, logger),
		Account: services.NewAccountService(gateway, coord, logger),
		Locator: locator,
		Speaker: capability.NewWriterSpeaker(os.Stdout),
		Logger:  logger,
		In:      in,
		Out:     os.Stdout,
	})

	app.Run(ctx)

}

// openStore opens the local database when a path is configured and keeps
// remembered credentials in memory otherwise. Only the database store keeps
// the session cookie across restarts.
func openStore(ctx context.Context, path string) (credentials.Store, func(), error) {
	if path == "" {
		return credentials.NewMemoryStore(), func() {}, nil
	}
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, nil, err
	}
	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return credentials.NewSQLiteStore(db), func() { _ = db.Close() }, nil
}
