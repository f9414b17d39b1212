package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	natsgo "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/bloodbank-services/configs"
	bbconfig "github.com/avvvet/bloodbank-services/internal/bloodbank/config"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/broker"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/db"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/handlers"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/service"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/store"
	"github.com/avvvet/bloodbank-services/internal/bloodbank/ws"
	"github.com/avvvet/bloodbank-services/internal/nats"
)

const SERVICE_NAME = "bloodbank"

func init() {
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg, err := bbconfig.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	config.Logging(SERVICE_NAME+"_service", cfg.LogDir)
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)

	if cfg.DBMigrate {
		if err := db.Migrate(cfg.DBDriver, cfg.DBDsn); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
	}

	dbh, err := db.Connect(cfg.DBDriver, cfg.DBDsn)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbh.Close()
	log.Infof("%s connection established successfully", cfg.DBDriver)

	donorStore := store.NewDonorStore(dbh)
	requestStore := store.NewRequestStore(dbh)
	adminStore := store.NewAdminStore(dbh)

	adminService := service.NewAdminService(adminStore)
	if err := adminService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	// dashboards attached to this instance
	hub := ws.NewWs()

	// with NATS, events go through the broker so every instance sees them
	var events service.EventPublisher = hub
	var sub *natsgo.Subscription
	if cfg.NatsURL != "" {
		n, err := nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"-"+instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Conn.Close()
		log.Infof("NATS connection established successfully %s", n.Url)

		b := broker.NewBroker(n.Conn, hub.Publish)
		sub, err = b.Subscribe(broker.EventsTopic)
		if err != nil {
			log.Fatalf("Error: unable to subscribe to %s %v", broker.EventsTopic, err)
		}
		events = b
	}

	donorService := service.NewDonorService(donorStore, events)
	requestService := service.NewRequestService(requestStore, events)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.CORSOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	if cfg.RateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))
	}

	// Init handlers and routes
	h := handlers.NewHandler(handlers.Deps{
		Donors:      donorService,
		Requests:    requestService,
		Admin:       adminService,
		Ws:          hub,
		DB:          dbh,
		FrontendDir: cfg.FrontendDir,
		InstanceId:  instanceId,
	})
	h.InitAuth(cfg.JWTSecret)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s, frontend from %s", SERVICE_NAME, server.Addr, cfg.FrontendDir)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if sub != nil {
		sub.Unsubscribe()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
