package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examtrainer/backend/internal/api"
	"github.com/examtrainer/backend/internal/infrastructure/config"
	"github.com/examtrainer/backend/internal/ledger"
	"github.com/examtrainer/backend/internal/questionbank"
	"github.com/examtrainer/backend/internal/rotation"
	"github.com/examtrainer/backend/internal/service"
	"github.com/examtrainer/backend/internal/session"
	"github.com/examtrainer/backend/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// A failed question load is fatal to starting tests but not to the
	// server: endpoints answer 503 so the UI can surface the error.
	var trainer *service.Trainer
	bank := questionbank.New(logger)
	src := questionbank.DirSource{Dir: cfg.QuestionDir}
	if err := bank.Load(context.Background(), src, cfg.QuestionFiles); err != nil {
		logger.Error("question load failed, test endpoints disabled", "error", err)
	} else {
		pool := rotation.NewManager(db, logger)
		if err := pool.Initialize(bank.Len()); err != nil {
			logger.Error("failed to initialize rotation pool", "error", err)
			os.Exit(1)
		}

		led := ledger.New(db)
		sessions := session.NewAdapter(db)
		engine := session.NewEngine(bank, led, sessions, db, logger)
		trainer = service.NewTrainer(bank, pool, led, engine, sessions, db, logger, cfg.QuestionsPerTest)
	}

	handler := api.NewHandler(trainer, db, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if trainer == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "degraded", "reason": "question load failed"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
