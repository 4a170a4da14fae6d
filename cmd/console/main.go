package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JoeShih716/go-file-ledger/internal/app"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/in/console"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/usecase"
	"github.com/JoeShih716/go-file-ledger/internal/config"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ledger 的 log 會和選單混在一起，互動模式下關閉
	ledger, closeStore, err := app.NewLedger(ctx, cfg, usecase.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		log.Fatalf("Failed to init ledger: %v", err)
	}
	defer closeStore()

	if err := console.NewConsole(ledger, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Printf("console stopped: %v", err)
	}
}
