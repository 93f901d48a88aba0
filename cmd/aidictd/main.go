package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minseok4171/aidict/internal/api"
	"github.com/minseok4171/aidict/internal/config"
	"github.com/minseok4171/aidict/pkg/logging"
	"github.com/minseok4171/aidict/pkg/wordbook"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewLogger(context.Background()).Fatalf("error: %v", err)
	}
	logging.SetLoggerFactory(logging.NewStandardFactory(cfg.LogLevel, cfg.LogFormat))
	log := logging.NewLogger(context.Background())

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("error: %v", err)
	}
	store, err := wordbook.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("error: %v", err)
	}
	defer store.Close()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: api.NewServer(store, cfg).Router(),
	}

	go func() {
		log.Infof("aidictd listening on %s, data in %s", srv.Addr, cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infof("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("error: %v", err)
	}
}
