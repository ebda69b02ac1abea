package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-checkout/config"
	"storefront-checkout/internal/delivery/http/middleware"
	v1 "storefront-checkout/internal/delivery/http/v1"
	"storefront-checkout/internal/domain"
	infracache "storefront-checkout/internal/infrastructure/cache"
	"storefront-checkout/internal/infrastructure/incident"
	"storefront-checkout/internal/infrastructure/payment"
	"storefront-checkout/internal/infrastructure/phone"
	"storefront-checkout/internal/infrastructure/pincode"
	"storefront-checkout/internal/repository/memory"
	"storefront-checkout/internal/repository/postgres"
	"storefront-checkout/internal/usecase"
	"storefront-checkout/pkg/logger"
	"storefront-checkout/pkg/storage"
	"storefront-checkout/pkg/utils"

	"github.com/NYTimes/gziphandler"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	// Initialize Repositories
	addressRepo := postgres.NewAddressRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := infracache.NewMemoryCache(30*time.Minute, 60*time.Minute)
	sessionStore := memory.NewSessionStore(memCache, cfg.SessionTTL)

	// External service clients
	pincodeClient := pincode.NewClient(cfg.PincodeAPIBaseURL, cfg.ExternalAPITimeout)
	phoneClient := phone.NewClient(cfg.PhoneVerifyURL, cfg.ExternalAPITimeout)
	paymentClient := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL, cfg.ExternalAPITimeout)

	// Payment incident archive (R2). Optional: without credentials the
	// incidents are still logged, just not archived.
	var incidentStore domain.PaymentIncidentStore
	if cfg.R2AccountID != "" && cfg.R2AccessKeyID != "" {
		r2Storage, err := storage.NewR2Storage(
			context.Background(),
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		incidentStore = incident.NewArchive(r2Storage)
	} else {
		log.Warn().Msg("R2 credentials missing; payment incident archive disabled")
	}

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Checkout Module
	checkoutUC := usecase.NewCheckoutUsecase(
		sessionStore,
		addressRepo,
		orderRepo,
		pincodeClient,
		phoneClient,
		paymentClient,
		incidentStore,
		txManager,
		memCache,
		usecase.CheckoutConfig{
			Pricing: usecase.PricingRules{
				FreeShippingThreshold: cfg.FreeShippingThreshold,
				FlatShippingFee:       cfg.FlatShippingFee,
				TaxRate:               cfg.TaxRate,
			},
			DeliveryDays:   cfg.DeliveryDays,
			Currency:       cfg.Currency,
			LookupQuiet:    cfg.LookupQuietPeriod,
			SubmitDelay:    cfg.SubmitPacingDelay,
			LookupCacheTTL: cfg.PincodeTTL,
		},
	)
	checkoutUC.StartGuardSweeper(context.Background(), cfg.SessionTTL)
	checkoutHandler := v1.NewCheckoutHandler(checkoutUC)
	orderHandler := v1.NewOrderHandler(checkoutUC)

	// Address Module
	addressUC := usecase.NewAddressUsecase(addressRepo)
	addressHandler := v1.NewAddressHandler(addressUC)

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(h)
	}

	// Checkout Sessions (Protected)
	mux.Handle("POST /api/v1/checkout/sessions", protected(checkoutHandler.StartSession))
	mux.Handle("GET /api/v1/checkout/sessions/{id}", protected(checkoutHandler.GetSession))
	mux.Handle("PATCH /api/v1/checkout/sessions/{id}/address-draft", protected(checkoutHandler.UpdateDraft))
	mux.Handle("POST /api/v1/checkout/sessions/{id}/address-draft/lookup", protected(checkoutHandler.LookupPincode))
	mux.Handle("POST /api/v1/checkout/sessions/{id}/address-draft/verify-phone", protected(checkoutHandler.VerifyPhone))
	mux.Handle("POST /api/v1/checkout/sessions/{id}/address-draft/save", protected(checkoutHandler.SaveAddress))
	mux.Handle("POST /api/v1/checkout/sessions/{id}/addresses/new", protected(checkoutHandler.StageNewAddress))
	mux.Handle("PUT /api/v1/checkout/sessions/{id}/addresses/{addressId}/select", protected(checkoutHandler.SelectAddress))
	mux.Handle("DELETE /api/v1/checkout/sessions/{id}/addresses/{addressId}", protected(checkoutHandler.DeleteAddress))
	mux.Handle("PUT /api/v1/checkout/sessions/{id}/payment-mode", protected(checkoutHandler.SetPaymentMode))
	mux.Handle("POST /api/v1/checkout/sessions/{id}/challenge", protected(checkoutHandler.OpenChallenge))
	mux.Handle("DELETE /api/v1/checkout/sessions/{id}/challenge", protected(checkoutHandler.CancelChallenge))
	mux.Handle("POST /api/v1/checkout/sessions/{id}/challenge/verify", protected(checkoutHandler.VerifyChallenge))
	mux.Handle("POST /api/v1/checkout/sessions/{id}/payment/confirm", protected(checkoutHandler.ConfirmPayment))

	// User Addresses (Protected)
	mux.Handle("GET /api/v1/user/addresses", protected(addressHandler.ListAddresses))
	mux.Handle("POST /api/v1/user/addresses", protected(addressHandler.AddAddress))
	mux.Handle("DELETE /api/v1/user/addresses/{id}", protected(addressHandler.DeleteAddress))

	// Orders (Protected)
	mux.Handle("GET /api/v1/orders", protected(orderHandler.GetMyOrders))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Rate limiter: 50 req/s, burst 100, cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		50,
		100,
		time.Minute,
		3*time.Minute,
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
