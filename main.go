package main

import (
	"context"
	"log"

	"covid-dashboard/config"
	"covid-dashboard/di"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[MAIN] Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("[MAIN] %v", err)
	}

	log.Println("[MAIN] Starting page lifetimes sweeper")
	container.PageLifetimesSweeperService.StartPeriodicJob(ctx, cfg.SweepInterval)

	container.DashboardHttpServer.Start()
}
