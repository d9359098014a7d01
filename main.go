package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"margin-desk/internal/api"
	"margin-desk/internal/db"
	"margin-desk/internal/logger"
)

var version = "dev"

func main() {
	port := flag.Int("port", 13380, "HTTP server port")
	dbPath := flag.String("db", "margindesk.db", "SQLite database path")
	flag.Parse()

	logger.Banner(version)

	database, err := db.Open(*dbPath)
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	// Migrate config.json -> SQLite (if exists)
	database.ImportConfigJSON("config.json")

	cfg := database.LoadConfig()
	srv := api.NewServer(cfg, database)

	logger.Section("Config")
	logger.Stats("Fee rate", fmt.Sprintf("%.1f%%", cfg.FeeRate))
	logger.Stats("Ad rate", fmt.Sprintf("%.1f%%", cfg.AdRate))
	logger.Stats("Exchange rate", cfg.ExchangeRate)

	addr := fmt.Sprintf("127.0.0.1:%d", *port)
	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Success("Server", "Listening on http://"+addr)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Server", "Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
}
