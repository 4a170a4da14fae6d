package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	grpc_adapter "github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/in/console"
	"github.com/JoeShih716/go-file-ledger/internal/config"
	grpcpool "github.com/JoeShih716/go-file-ledger/pkg/grpc"
)

// 以同一套選單操作遠端的 ledger server (cmd/core)
func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// grpc.debug 開啟時顯示每次呼叫的耗時
	logger := log.New(io.Discard, "", 0)
	if cfg.GRPC.Debug {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	pool := grpcpool.NewPool(grpcpool.WithInterceptor(grpcpool.LoggingInterceptor(logger)))
	defer pool.Close()

	conn, err := pool.GetConnection(cfg.GRPC.Target)
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := grpc_adapter.NewClient(conn)
	if err := console.NewConsole(client, os.Stdin, os.Stdout).Run(ctx); err != nil {
		log.Printf("console stopped: %v", err)
	}
}
