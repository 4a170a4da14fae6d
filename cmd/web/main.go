package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JoeShih716/go-file-ledger/internal/app"
	"github.com/JoeShih716/go-file-ledger/internal/app/core/adapter/in/web"
	"github.com/JoeShih716/go-file-ledger/internal/config"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ledger, closeStore, err := app.NewLedger(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to init ledger: %v", err)
	}
	defer closeStore()

	srv := &http.Server{
		Addr:    cfg.Web.Addr,
		Handler: web.NewRouter(ledger, gin.Logger(), gin.Recovery()),
	}

	go func() {
		log.Printf("Starting web server on %s", cfg.Web.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
