package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api"
	"github.com/Ayushkalathiya945/investment--sub001/internal/config"
	"github.com/Ayushkalathiya945/investment--sub001/internal/database"
	"github.com/Ayushkalathiya945/investment--sub001/internal/repository"
	"github.com/Ayushkalathiya945/investment--sub001/internal/scheduler"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	clientRepo := repository.NewClientRepository(db)
	stockRepo := repository.NewStockRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	quarterRepo := repository.NewQuarterRepository(db)
	brokerageRepo := repository.NewBrokerageRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	clientService := service.NewClientService(clientRepo)
	stockService := service.NewStockService(stockRepo)
	tradeService := service.NewTradeService(tradeRepo, clientRepo, stockRepo)
	brokerageService := service.NewBrokerageService(
		tradeRepo,
		stockRepo,
		clientRepo,
		quarterRepo,
		brokerageRepo,
	)
	configService := service.NewConfigService(quarterRepo)
	paymentService := service.NewPaymentService(clientRepo, brokerageRepo)

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Client:    clientService,
		Stock:     stockService,
		Trade:     tradeService,
		Brokerage: brokerageService,
		Config:    configService,
		Payment:   paymentService,
	}, cfg)

	// Nightly recalculation keeps the current month's summaries fresh
	recalc, err := scheduler.New(brokerageService, cfg.Scheduler.RecalcCron)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	recalc.Start()
	defer recalc.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
