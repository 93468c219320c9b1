package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/ptaemr/platform/pkg/audit"
	"github.com/ptaemr/platform/pkg/common/config"
	"github.com/ptaemr/platform/pkg/common/database"
	"github.com/ptaemr/platform/pkg/common/kafka"
	"github.com/ptaemr/platform/pkg/common/logger"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	repo := audit.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate audit tables")
	}

	consumer := kafka.NewConsumer(cfg.ChartEventTopic, "audit-service")
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.Event) error {
			entry := audit.Entry{
				EventID: event.ID,
				Action:  event.Type,
				At:      event.Timestamp,
				Payload: event.Data,
			}
			if actor, ok := event.Data["actor"].(string); ok {
				entry.Actor = actor
			}
			if recordID, ok := event.Data["record_id"].(string); ok {
				entry.RecordID = recordID
			}
			return repo.Record(ctx, entry)
		}); err != nil && err != context.Canceled {
			logger.Log.WithError(err).Fatal("consumer error")
		}
	}()

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/audit", func(w http.ResponseWriter, r *http.Request) {
		recordID := r.URL.Query().Get("record_id")
		entries, err := repo.List(r.Context(), recordID, 100)
		if err != nil {
			logger.Log.WithError(err).Error("failed to list audit entries")
			http.Error(w, "failed to list audit entries", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": entries})
	}).Methods(http.MethodGet)

	address := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.AuditServicePort)
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithField("addr", address).Info("audit service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start audit service")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down audit service...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("audit service forced to shutdown")
	}
	logger.Log.Info("audit service stopped")
}
