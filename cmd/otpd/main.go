package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orderpromise/otp/pkg/application/services"
	"github.com/orderpromise/otp/pkg/config"
	"github.com/orderpromise/otp/pkg/infrastructure/events"
	"github.com/orderpromise/otp/pkg/infrastructure/repositories/csv"
	"github.com/orderpromise/otp/pkg/infrastructure/repositories/memory"
	"github.com/orderpromise/otp/pkg/interfaces/api"
	"github.com/orderpromise/otp/pkg/promise"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to YAML configuration file")
		port        = flag.Int("port", 0, "HTTP port (overrides config)")
		metricsPort = flag.Int("metrics-port", 0, "Metrics HTTP port (overrides config)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Server.MetricsPort = *metricsPort
	}

	service, err := buildService(cfg)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	server := api.NewServer(service, cfg.DefaultRules, nil)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router(),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	go func() {
		log.Printf("metrics listening on :%d", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server error: %v", err)
		}
	}()

	go func() {
		log.Printf("promise service listening on :%d", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		log.Printf("metrics shutdown error: %v", err)
	}
	log.Println("stopped")
}

// buildService loads the CSV snapshots and wires the promise service.
func buildService(cfg *config.Config) (*services.PromiseService, error) {
	loader := csv.NewLoader()

	stockRecords, err := loader.LoadStock(cfg.Data.StockFile)
	if err != nil {
		return nil, fmt.Errorf("loading stock: %w", err)
	}
	supplyRecords, err := loader.LoadPurchaseOrders(cfg.Data.PurchaseOrdersFile)
	if err != nil {
		return nil, fmt.Errorf("loading purchase orders: %w", err)
	}

	stockRepo := memory.NewStockRepository()
	stockRepo.LoadStock(stockRecords)

	supplyRepo := memory.NewSupplyRepository()
	supplyRepo.LoadSupply(supplyRecords)

	log.Printf("loaded %d stock records, %d purchase orders", len(stockRecords), len(supplyRecords))

	engine := promise.NewEngine(stockRepo, supplyRepo, cfg.EngineConfig())
	return services.NewPromiseService(engine, stockRepo, events.NewInMemoryEventStore()), nil
}
