package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"carhouse-backend/internal/config"
	"carhouse-backend/internal/handler"
	"carhouse-backend/internal/payment"
	"carhouse-backend/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	db, err := store.Open(context.Background(), cfg.ConnectionString(), cfg.DBName)
	if err != nil {
		slog.Error("Failed to configure MongoDB client", "error", err)
		os.Exit(1)
	}
	// An unreachable store is only logged; API routes answer 500 until it
	// comes back.
	if err := db.Ping(context.Background()); err != nil {
		slog.Error("MongoDB not reachable", "error", err)
	}

	r := gin.New()
	r.Use(handler.Middleware()...)
	r.GET("/", handler.Liveness)

	h := &handler.Handler{
		Collections: handler.CollectionsFrom(db),
		Intents: payment.NewClient(payment.Options{
			SecretKey: cfg.StripeSecretKey,
			BaseURL:   cfg.StripeAPIURL,
			Currency:  cfg.PaymentCurrency,
		}),
	}
	if cfg.AtomicPayments {
		h.Tx = db
	}
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Car house server running", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	if err := db.Close(ctx); err != nil {
		slog.Error("MongoDB disconnect failed", "error", err)
	}
	slog.Info("Server exited gracefully.")
}
