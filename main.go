package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deepguard/internal/ai"
	"deepguard/internal/alerts"
	"deepguard/internal/analytics"
	"deepguard/internal/breach"
	"deepguard/internal/cache"
	"deepguard/internal/config"
	"deepguard/internal/database"
	"deepguard/internal/handlers"
	"deepguard/internal/payment"
	"deepguard/internal/repository"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DBDSN, cfg.AppMode)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	cacheStore, err := cache.Connect(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Redis unavailable, lookups will not be cached: %v", err)
		cacheStore = nil
	}

	provider, err := ai.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Could not initialize AI provider: %v", err)
	}
	analyzer := ai.NewAnalyzer(provider, 30*time.Second)

	log.Printf("Mode: [%s] | AI Provider: %s | Breach API: %s", cfg.AppMode, cfg.AIProvider, cfg.BreachAPIURL)

	// Stores
	detections := repository.NewDetections(db)
	breachChecks := repository.NewBreachChecks(db)
	alertStore := repository.NewAlerts(db)
	payments := repository.NewPayments(db)
	usage := repository.NewUsage(db)
	apiKeys := repository.NewAPIKeys(db)

	// Services
	alertSvc := alerts.NewService(alertStore, alerts.NewWebhookSink(cfg.AlertWebhookURL))
	breachSvc := breach.NewService(
		breach.NewClient(breach.ClientConfig{
			BaseURL: cfg.BreachAPIURL,
			APIKey:  cfg.BreachAPIKey,
			Timeout: cfg.BreachTimeout,
		}),
		breachChecks,
		alertSvc,
		cacheStore,
		cfg.BreachCacheTTL,
	)
	paymentSvc := payment.NewService(
		payment.NewClient(payment.ClientConfig{
			BaseURL:   cfg.PaymentAPIURL,
			SecretKey: cfg.PaymentSecretKey,
		}),
		payments,
	)
	aggregator := analytics.New(breachChecks, detections)

	mux := http.NewServeMux()

	// Health Check Endpoints
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("UP"))
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
			http.Error(w, "Database not ready", http.StatusServiceUnavailable)
			return
		}
		if cacheStore != nil {
			if err := cacheStore.Ping(r.Context()); err != nil {
				http.Error(w, "Redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	auth := func(h http.HandlerFunc) http.Handler {
		return handlers.RequireAPIKey(apiKeys, h)
	}

	// Analysis Endpoints
	mux.Handle("POST /analyze-url", auth(handlers.NewAnalyzeURL(analyzer, detections, usage, alertSvc)))
	mux.Handle("POST /analyze-url-public", handlers.OptionalAPIKey(apiKeys, handlers.NewAnalyzeURLPublic(analyzer)))

	// Breach Detection Endpoints
	mux.Handle("POST /breach/check-email", auth(handlers.NewCheckEmail(breachSvc, usage)))
	mux.Handle("POST /breach/check-phone", auth(handlers.NewCheckPhone(breachSvc, usage)))

	// Detection Record Endpoints
	mux.Handle("POST /detections", auth(handlers.NewCreateDetection(detections, alertSvc)))
	mux.Handle("GET /detections", auth(handlers.NewListDetections(detections)))
	mux.Handle("GET /detections/{id}", auth(handlers.NewGetDetection(detections)))
	mux.Handle("PATCH /detections/{id}", auth(handlers.NewUpdateDetection(detections)))
	mux.Handle("DELETE /detections/{id}", auth(handlers.NewDeleteDetection(detections)))

	// Alert Endpoints
	mux.Handle("POST /alerts", auth(handlers.NewCreateAlert(alertSvc)))
	mux.Handle("GET /alerts", auth(handlers.NewListAlerts(alertStore)))
	mux.Handle("GET /alerts/unread-count", auth(handlers.NewUnreadAlertCount(alertStore)))
	mux.Handle("GET /alerts/{id}", auth(handlers.NewGetAlert(alertStore)))
	mux.Handle("POST /alerts/{id}/read", auth(handlers.NewMarkAlertRead(alertStore)))
	mux.Handle("POST /alerts/read-all", auth(handlers.NewMarkAllAlertsRead(alertStore)))

	// Analytics Endpoints
	mux.Handle("GET /analytics/summary", auth(handlers.NewAnalyticsSummary(aggregator)))
	mux.Handle("GET /analytics/trends", auth(handlers.NewAnalyticsTrends(aggregator)))

	// Payment Endpoints
	mux.Handle("POST /payments/initialize", auth(handlers.NewInitializePayment(paymentSvc)))
	mux.Handle("GET /payments/verify/{reference}", auth(handlers.NewVerifyPayment(paymentSvc)))
	mux.Handle("GET /payments/plan", auth(handlers.NewGetPlan(payments)))
	mux.Handle("GET /usage", auth(handlers.NewUsageHistory(usage)))

	// Admin Endpoints
	mux.Handle("POST /admin/reload", handlers.RequireAdminKey(cfg.AdminAPIKey, handlers.NewAdminFlushCache(cacheStore)))

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: handlers.CORS(mux),
	}

	// Graceful Shutdown
	go func() {
		log.Printf("Server starting on :%s...", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.ServerPort, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
