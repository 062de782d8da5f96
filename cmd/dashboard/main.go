package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	appdashboard "github.com/Apurer/go-gin-order-dashboard/internal/app/dashboard"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := appdashboard.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := appdashboard.Run(ctx, cfg); err != nil {
		log.Fatalf("dashboard exited: %v", err)
	}
}
