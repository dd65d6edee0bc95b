package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/spicy-golf/scorekeeper/app"
	"github.com/spicy-golf/scorekeeper/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		application.Logger().Error("Server error", "error", err)
	}

	if err := application.Close(); err != nil {
		application.Logger().Error("Shutdown error", "error", err)
	}
	application.Logger().Info("Application shut down gracefully")
}
