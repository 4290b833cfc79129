package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/traffichub/internal/buildinfo"
	"github.com/dmitrijs2005/traffichub/internal/client/cli"
	"github.com/dmitrijs2005/traffichub/internal/client/config"
	"github.com/dmitrijs2005/traffichub/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "client start failed", "error", err)
		closer.Close()
		os.Exit(1)
	}

	app.Run(ctx)
}
