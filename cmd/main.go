package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/mstgnz/interkassa/handler"
	"github.com/mstgnz/interkassa/infra/config"
	"github.com/mstgnz/interkassa/infra/logger"
	"github.com/mstgnz/interkassa/infra/metrics"
	"github.com/mstgnz/interkassa/infra/middle"
	"github.com/mstgnz/interkassa/infra/opensearch"
	"github.com/mstgnz/interkassa/infra/validate"
	"github.com/mstgnz/interkassa/provider"
	"github.com/mstgnz/interkassa/router"
)

func main() {
	// .env is optional, the environment may already be set
	_ = godotenv.Load(".env")

	_ = config.App()
	validate.CustomValidate()
	cfg := config.GetAppConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providerConfig := config.NewProviderConfig()
	providerConfig.LoadFromEnv()
	providerNames := providerConfig.GetAvailableProviders()

	var openSearchLogger *opensearch.Logger
	if cfg.EnableLogging {
		osClient, err := opensearch.NewClient(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize OpenSearch client, continuing without it: %v\n", err)
		} else {
			if err := osClient.SetupIndices(ctx, providerNames); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to set up OpenSearch indices: %v\n", err)
			}
			openSearchLogger = opensearch.NewLogger(osClient)
		}
	}
	logger.InitGlobalLogger(openSearchLogger)

	metrics.Setup(cfg.MetricsPushURL, time.Duration(cfg.MetricsPushInterval)*time.Second,
		fmt.Sprintf(`service="interkassa",environment=%q`, cfg.Environment))

	var eventLogger provider.EventLogger
	if openSearchLogger != nil {
		eventLogger = openSearchLogger
	}
	paymentService := provider.NewPaymentService(eventLogger)

	for _, providerName := range providerNames {
		providerCfg, err := providerConfig.GetConfig(providerName)
		if err != nil {
			logger.Error("Failed to get provider configuration", err, logger.LogContext{Provider: providerName})
			continue
		}
		if err := paymentService.AddProvider(providerName, providerCfg); err != nil {
			logger.Error("Failed to register provider", err, logger.LogContext{Provider: providerName})
			continue
		}
		logger.Info("Registered payment provider", logger.LogContext{Provider: providerName})
	}
	if len(providerNames) == 0 {
		logger.Warn("No payment providers configured")
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middle.AccessLogMiddleware())
	r.Use(middle.PanicRecoveryMiddleware())
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(middle.SecurityHeadersMiddleware())
	r.Use(middle.RequestValidationMiddleware())

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Origin", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length", "Access-Control-Allow-Origin"},
		AllowCredentials: false,
		MaxAge:           300, // Preflight cache time (second)
	}))

	router.Routes(r, router.Dependencies{
		PaymentHandler:      handler.NewPaymentHandler(paymentService, config.App().Validator),
		HealthHandler:       handler.NewHealthHandler(paymentService, providerNames, openSearchLogger != nil, cfg.Environment),
		RateLimiter:         middle.NewRateLimiter(ctx, 100, time.Minute),
		CallbackIPWhitelist: cfg.CallbackIPWhitelist,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", err)
		}
	}()

	logger.Info("API is running", logger.LogContext{Fields: map[string]any{"port": cfg.Port}})

	<-ctx.Done()

	logger.Info("Shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", err)
	}
}
