package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-sale-terminal/config"
	"github.com/fekuna/omnipos-sale-terminal/internal/auth"
	"github.com/fekuna/omnipos-sale-terminal/internal/backend/rest"
	"github.com/fekuna/omnipos-sale-terminal/internal/delivery/httpserver"
	"github.com/fekuna/omnipos-sale-terminal/internal/notice"
	"github.com/fekuna/omnipos-sale-terminal/internal/receipt"
	"github.com/fekuna/omnipos-sale-terminal/pkg/broker"
	"github.com/fekuna/omnipos-sale-terminal/pkg/localstore"
	"github.com/fekuna/omnipos-sale-terminal/pkg/logger"
	"github.com/fekuna/omnipos-sale-terminal/pkg/metrics"

	cartH "github.com/fekuna/omnipos-sale-terminal/internal/cart/handler"
	cartUCPkg "github.com/fekuna/omnipos-sale-terminal/internal/cart/usecase"

	catalogH "github.com/fekuna/omnipos-sale-terminal/internal/catalog/handler"
	catalogListenerPkg "github.com/fekuna/omnipos-sale-terminal/internal/catalog/listener"
	catalogRepoPkg "github.com/fekuna/omnipos-sale-terminal/internal/catalog/repository"
	catalogUCPkg "github.com/fekuna/omnipos-sale-terminal/internal/catalog/usecase"

	paymentH "github.com/fekuna/omnipos-sale-terminal/internal/payment/handler"
	paymentRepoPkg "github.com/fekuna/omnipos-sale-terminal/internal/payment/repository"
	paymentUCPkg "github.com/fekuna/omnipos-sale-terminal/internal/payment/usecase"

	parkedH "github.com/fekuna/omnipos-sale-terminal/internal/parked/handler"
	parkedRepoPkg "github.com/fekuna/omnipos-sale-terminal/internal/parked/repository"
	parkedUCPkg "github.com/fekuna/omnipos-sale-terminal/internal/parked/usecase"

	checkoutPkg "github.com/fekuna/omnipos-sale-terminal/internal/checkout"
	checkoutH "github.com/fekuna/omnipos-sale-terminal/internal/checkout/handler"
	checkoutRepoPkg "github.com/fekuna/omnipos-sale-terminal/internal/checkout/repository"
	checkoutUCPkg "github.com/fekuna/omnipos-sale-terminal/internal/checkout/usecase"

	noticeH "github.com/fekuna/omnipos-sale-terminal/internal/notice/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize the local KV store. Redis keeps terminal state across
	// restarts; if it is unreachable the session runs on an in-memory store.
	var store localstore.Store
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		appLogger.Warn("Could not connect to Redis, terminal state will not survive restarts", zap.Error(err))
		store = localstore.NewMemoryStore()
	} else {
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		store = localstore.NewRedisStore(redisClient)
		defer redisClient.Close()
	}
	pingCancel()

	// 4. Back-office REST client
	backend := rest.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)

	// 5. Sale history: Postgres when configured, local KV otherwise
	var history checkoutPkg.HistoryRepository
	if cfg.History.Driver == "postgres" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User,
			cfg.Postgres.Password, cfg.Postgres.DBName, cfg.Postgres.SSLMode)
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			appLogger.Fatal("Could not connect to database", zap.Error(err))
		}
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second)
		db.SetConnMaxIdleTime(time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second)
		defer db.Close()
		appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
		history = checkoutRepoPkg.NewPGHistoryRepository(db)
	} else {
		history = checkoutRepoPkg.NewKVHistoryRepository(store)
	}

	// 6. Kafka (optional; empty broker list disables both directions)
	kafkaClient := broker.NewClient(cfg.Kafka.Brokers)
	var events checkoutPkg.EventPublisher
	if kafkaClient.Enabled() {
		saleWriter := kafkaClient.NewWriter(cfg.Kafka.SaleTopic)
		defer saleWriter.Close()
		events = checkoutRepoPkg.NewKafkaPublisher(saleWriter)
		appLogger.Info("Connected to Kafka", zap.Strings("brokers", kafkaClient.Brokers))
	}

	// 7. Notices and metrics
	bus := notice.NewBus(time.Duration(cfg.Notice.TTLSeconds) * time.Second)
	terminalMetrics := metrics.NewTerminalMetrics()

	merchantID := cfg.Business.MerchantID
	header := receipt.Header{
		StoreName: cfg.Business.StoreName,
		Address:   cfg.Business.Address,
		Phone:     cfg.Business.Phone,
		TaxID:     cfg.Business.TaxID,
	}

	// 8. Initialize UseCases
	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepoPkg.NewRESTRepository(backend), merchantID, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(bus, store, merchantID, appLogger)
	paymentUC := paymentUCPkg.NewPaymentUseCase(paymentRepoPkg.NewRESTRepository(backend), cartUC, store, merchantID, appLogger)
	parkedUC := parkedUCPkg.NewParkedUseCase(
		parkedRepoPkg.NewRESTRemoteStore(backend),
		parkedRepoPkg.NewKVLocalStore(store),
		cartUC, paymentUC, bus, merchantID, appLogger,
	)
	checkoutUC := checkoutUCPkg.NewCheckoutUseCase(checkoutUCPkg.Deps{
		Ledger:     cartUC,
		Selector:   paymentUC,
		Products:   catalogUC,
		Submitter:  checkoutRepoPkg.NewRESTSubmitter(backend),
		History:    history,
		Printer:    receipt.NewSpoolPrinter(os.Stdout),
		Events:     events,
		Notices:    bus,
		Metrics:    terminalMetrics,
		Header:     header,
		Logger:     appLogger,
		MerchantID: merchantID,
	})

	// 9. Session start sequence: decide the parked-cart store, seed payment
	// methods, then load the catalog. Methods refresh in the background.
	sessionCtx, sessionCancel := context.WithCancel(
		auth.WithIdentity(context.Background(), merchantID, auth.Cashier{
			ID:   cfg.Business.CashierID,
			Name: cfg.Business.CashierName,
		}),
	)
	defer sessionCancel()

	parkedUC.Probe(sessionCtx)
	paymentUC.LoadMethods(sessionCtx)
	go paymentUC.RefreshMethods(sessionCtx)

	if err := catalogUC.Load(sessionCtx); err != nil {
		appLogger.Error("Initial catalog load failed", zap.Error(err))
		bus.Notify(notice.ToneError, "failed to load product catalog")
	}

	// 10. Stock listener keeps the catalog mirror in sync with the back office
	if kafkaClient.Enabled() {
		stockReader := kafkaClient.NewReader(cfg.Kafka.StockTopic, cfg.Kafka.GroupID)
		defer stockReader.Close()
		stockListener := catalogListenerPkg.NewStockListener(stockReader, catalogUC, merchantID, appLogger)
		go stockListener.Start(sessionCtx)
	}

	// 11. Initialize Handlers
	catalogHandler := catalogH.NewCatalogHandler(catalogUC, appLogger)
	cartHandler := cartH.NewCartHandler(cartUC, catalogUC, paymentUC, appLogger)
	paymentHandler := paymentH.NewPaymentHandler(paymentUC, appLogger)
	parkedHandler := parkedH.NewParkedHandler(parkedUC, appLogger)
	checkoutHandler := checkoutH.NewCheckoutHandler(checkoutUC, appLogger)
	noticeHandler := noticeH.NewNoticeHandler(bus)

	// 12. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(cfg.Backend.TimeoutSeconds+5) * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpserver.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(merchantID, auth.Cashier{
			ID:   cfg.Business.CashierID,
			Name: cfg.Business.CashierName,
		}))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/categories", catalogHandler.ListCategories)
			r.Post("/reload", catalogHandler.Reload)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/lines", cartHandler.AddLine)
			r.Patch("/lines/{productID}", cartHandler.UpdateQuantity)
			r.Delete("/lines/{productID}", cartHandler.RemoveLine)
		})

		r.Route("/payment", func(r chi.Router) {
			r.Get("/methods", paymentHandler.ListMethods)
			r.Get("/selection", paymentHandler.GetSelection)
			r.Put("/selection/{methodID}", paymentHandler.SelectMethod)
			r.Put("/cash", paymentHandler.SetCash)
		})

		r.Route("/parked-carts", func(r chi.Router) {
			r.Get("/", parkedHandler.List)
			r.Post("/", parkedHandler.Park)
			r.Post("/{id}/resume", parkedHandler.Resume)
			r.Delete("/{id}", parkedHandler.Discard)
		})

		r.Post("/checkout", checkoutHandler.Checkout)
		r.Get("/sales", checkoutHandler.ListSales)
		r.Get("/sales/last", checkoutHandler.LastSale)
		r.Post("/sales/last/reprint", checkoutHandler.ReprintReceipt)

		r.Get("/notices", noticeHandler.ListActive)
	})

	// 13. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	sessionCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
