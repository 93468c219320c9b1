package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/ptaemr/platform/pkg/chart"
	"github.com/ptaemr/platform/pkg/common/config"
	"github.com/ptaemr/platform/pkg/common/kafka"
	"github.com/ptaemr/platform/pkg/common/logger"
	"github.com/ptaemr/platform/pkg/cpt"
	"github.com/ptaemr/platform/pkg/seed"
	"github.com/ptaemr/platform/pkg/snapshot"
)

func main() {
	logger.Init()
	cfg := config.Load()

	catalog, err := cpt.Load(cfg.CPTCatalogPath)
	if err != nil {
		logger.Log.WithError(err).Warn("falling back to built-in CPT catalog")
	}

	snapshots, err := snapshot.New(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to initialize snapshot store")
	}

	store := chart.NewStore()
	if err := loadRecords(store, snapshots, cfg.SeedPath); err != nil {
		logger.Log.WithError(err).Fatal("failed to load patient records")
	}
	logger.Log.WithField("records", store.Len()).Info("patient records loaded")

	producer := kafka.NewProducer(cfg.ChartEventTopic)
	defer producer.Close()

	service := chart.NewService(store, chart.NewCalculator(catalog), snapshots, producer)
	handler := chart.NewHandler(service)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1/chart").Subrouter()
	handler.Register(api)

	address := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ChartServicePort)
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithField("addr", address).Info("chart service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start chart service")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down chart service...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("chart service forced to shutdown")
	}
	logger.Log.Info("chart service stopped")
}

// loadRecords prefers the persisted snapshot of a previous session and seeds
// the store only when none exists.
func loadRecords(store *chart.Store, snapshots snapshot.Store, seedPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := snapshots.Load(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("could not read chart snapshot, reseeding")
	}
	if len(records) == 0 {
		records, err = seed.Load(seedPath)
		if err != nil {
			return err
		}
	}
	return store.Load(records)
}
