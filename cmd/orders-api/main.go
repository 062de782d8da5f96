package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	appapi "github.com/Apurer/go-gin-order-dashboard/internal/app/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := appapi.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := appapi.Run(ctx, cfg); err != nil {
		log.Fatalf("orders API exited: %v", err)
	}
}
