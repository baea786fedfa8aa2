package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cetadcco/carwash-pos/internal/auth"
	"github.com/cetadcco/carwash-pos/internal/config"
	"github.com/cetadcco/carwash-pos/internal/db"
	"github.com/cetadcco/carwash-pos/internal/events"
	"github.com/cetadcco/carwash-pos/internal/handlers"
	"github.com/cetadcco/carwash-pos/internal/middleware"
	"github.com/cetadcco/carwash-pos/internal/models"
	"github.com/cetadcco/carwash-pos/internal/outbox"
	"github.com/cetadcco/carwash-pos/internal/summary"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("connected to MongoDB")

	database := client.Database(cfg.MongoDBName)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}

	users := &db.MongoUserCollection{Collection: database.Collection(db.ColUsers)}
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection(db.ColVehicles)}
	orders := &db.MongoOrderCollection{Collection: database.Collection(db.ColOrders)}
	ordersReplica := &db.MongoOrderCollection{Collection: database.Collection(db.ColOrdersReplica)}
	summaries := &db.MongoSummaryCollection{Collection: database.Collection(db.ColSummaries)}
	counters := &db.MongoCounters{Collection: database.Collection(db.ColCounters)}
	customers := &db.MongoCustomerCollection{Collection: database.Collection(db.ColCustomers)}

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	summaryService := summary.NewService(orders, vehicles, summaries)

	ob, err := outbox.Open(cfg.OutboxPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open outbox database")
	}
	defer ob.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.MQTTBroker != "" {
		p, err := events.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTTopic)
		if err != nil {
			log.WithError(err).Warn("MQTT broker unavailable, order events disabled")
		} else {
			publisher = p
		}
	}
	defer publisher.Close()

	if cfg.SyncEnabled {
		worker := outbox.NewWorker(ob, ordersReplica, publisher, cfg.SyncInterval)
		go worker.Run(ctx)
	} else {
		log.Info("replication disabled")
	}

	authHandler := handlers.NewAuthHandler(authService, users)
	orderHandler := handlers.NewOrderHandler(orders, vehicles, counters, ob)
	summaryHandler := handlers.NewSummaryHandler(summaryService, summaries)
	vehicleHandler := handlers.NewVehicleHandler(vehicles)
	userHandler := handlers.NewUserHandler(authService, users)
	customerHandler := handlers.NewCustomerHandler(customers)
	healthHandler := handlers.NewHealthHandler(ob)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()
	adminOnly := authMiddleware.RequireLevel(models.LevelAdmin)

	mux := http.NewServeMux()
	mux.Handle("/api/auth/login", rateLimiter.RateLimit(5, 60)(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("/api/auth/logout", authHandler.Logout)
	mux.HandleFunc("/api/auth/me", authHandler.Me)
	mux.HandleFunc("/api/orders", orderHandler.Orders)
	mux.HandleFunc("/api/update_summary", summaryHandler.Update)
	mux.HandleFunc("/api/shift_summary/", summaryHandler.Get)
	mux.HandleFunc("/api/vehicles", vehicleHandler.Vehicles)
	mux.Handle("/api/vehicles/", adminOnly(http.HandlerFunc(vehicleHandler.VehicleByID)))
	mux.Handle("/api/users", adminOnly(http.HandlerFunc(userHandler.Users)))
	mux.Handle("/api/users/", adminOnly(http.HandlerFunc(userHandler.UserByID)))
	mux.HandleFunc("/api/customers", customerHandler.Customers)
	mux.HandleFunc("/api/customers/", customerHandler.CustomerByID)
	mux.HandleFunc("/health", healthHandler.Health)

	handler := middleware.RequestLogger(authMiddleware.Authenticate(mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("HTTP server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server error")
	}
}
