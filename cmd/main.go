package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"restaurant-orders/internal/broadcast"
	"restaurant-orders/internal/config"
	"restaurant-orders/internal/database"
	"restaurant-orders/internal/httpx"
	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/messaging"
	"restaurant-orders/internal/services/billing"
	"restaurant-orders/internal/services/display"
	"restaurant-orders/internal/services/menu"
	"restaurant-orders/internal/services/order"
	"restaurant-orders/internal/services/status"
	"restaurant-orders/internal/services/tables"
)

func main() {
	var (
		mode       = flag.String("mode", "server", "Run mode (server, display)")
		configFile = flag.String("config", "config.yaml", "Path to config file")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		prefetch   = flag.Int("prefetch", 10, "RabbitMQ prefetch count (display mode)")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "server":
		if err := runServer(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Server failed", requestID, err, nil)
			os.Exit(1)
		}
	case "display":
		if err := runDisplay(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Kitchen display failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runServer runs the HTTP API with the event broadcaster attached.
func runServer(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)
	broadcaster := broadcast.NewAMQPBroadcaster(publisher, log)

	orderService := order.NewService(order.NewPostgresStore(db), broadcaster, log)
	statusService := status.NewService(status.NewPostgresStore(db), broadcaster, log)
	billingService := billing.NewService(billing.NewPostgresStore(db), broadcaster, log)
	tablesService := tables.NewService(tables.NewPostgresStore(db), broadcaster, log)
	menuService := menu.NewService(menu.NewPostgresStore(db), log)

	router := chi.NewRouter()
	router.Use(httpx.RequestLogger(log))
	router.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			httpx.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		httpx.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	order.NewHandler(orderService).Register(router)
	status.NewHandler(statusService).Register(router)
	billing.NewHandler(billingService).Register(router)
	tables.NewHandler(tablesService).Register(router)
	menu.NewHandler(menuService).Register(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("service_started", fmt.Sprintf("Order server started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runDisplay runs the kitchen display subscriber against the staff queue.
func runDisplay(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.StaffDisplayQueue, "kitchen-display", prefetch)
	subscriber := display.NewSubscriber(consumer, log)

	return subscriber.Start(ctx)
}
