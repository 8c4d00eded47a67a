package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joseph-ayodele/order-intake/internal/common"
	"github.com/joseph-ayodele/order-intake/internal/extract"
	"github.com/joseph-ayodele/order-intake/internal/ledger"
	"github.com/joseph-ayodele/order-intake/internal/llm/openai"
	"github.com/joseph-ayodele/order-intake/internal/repository"
	"github.com/joseph-ayodele/order-intake/internal/server"
	"github.com/joseph-ayodele/order-intake/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	transcripts, err := repository.NewSQLiteTranscripts(cfg.Transcript.DBPath)
	if err != nil {
		logger.Error("opening transcript store", "error", err)
		os.Exit(1)
	}
	defer transcripts.Close()

	completer := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	engine := session.NewEngine(
		transcripts,
		extract.NewExtractor(completer, cfg.Intake.DefaultRegion, logger),
		completer,
		ledger.NewWorkbook(cfg.Ledger.WorkbookPath, logger),
		cfg.Intake.DefaultRegion,
		logger,
	)

	srv := server.NewServer(server.RouterConfig{
		Intake: server.NewIntakeHandler(engine, transcripts, logger),
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("webhook serving", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	logger.Info("stopped")
}
