package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"redblack/internal/app"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.NewApp()
	if err := a.Run(ctx); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
