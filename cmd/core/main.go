package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/JoeShih716/go-file-ledger/internal/app"
	grpc_adapter "github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/in/grpc"
	"github.com/JoeShih716/go-file-ledger/internal/config"
)

func main() {
	// 1. 載入設定
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化儲存後端並載入帳戶
	ledger, closeStore, err := app.NewLedger(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to init ledger: %v", err)
	}
	defer closeStore()

	// 3. 初始化 gRPC Adapter (Driving Adapter)
	grpcServer := grpc_adapter.NewGrpcServer(ledger)

	// 4. 啟動 gRPC Server
	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	s := grpc.NewServer(grpc.UnaryInterceptor(grpc_adapter.LoggingInterceptor(log.Default())))
	grpc_adapter.Register(s, grpcServer)
	reflection.Register(s)

	// Graceful Shutdown
	go func() {
		log.Printf("Starting gRPC server on %s", cfg.GRPC.Addr)
		if err := s.Serve(lis); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	s.GracefulStop()
	log.Println("Server exited")
}
