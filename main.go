package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // automatically load .env files

	"github.com/yumosx/loft/internal/cmd"
	"github.com/yumosx/loft/internal/log"
)

func main() {
	defer log.RecoverPanic("main", func() {
		slog.Error("Application terminated due to unhandled panic")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-sigChan
		slog.Info("Received signal, initiating graceful shutdown", "signal", sig)
		cancel()
	}()

	cmd.Execute(ctx)
}
