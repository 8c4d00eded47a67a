// Package cli implements the order-intake maintenance and demo commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/order-intake/internal/common"
	"github.com/joseph-ayodele/order-intake/internal/extract"
	"github.com/joseph-ayodele/order-intake/internal/ledger"
	"github.com/joseph-ayodele/order-intake/internal/llm/openai"
	"github.com/joseph-ayodele/order-intake/internal/repository"
	"github.com/joseph-ayodele/order-intake/internal/session"
)

var verbose bool

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "order-intake",
	Short: "Conversational order intake for a seafood distributor",
	Long:  "Terminal tools for the order-intake assistant: an interactive chat demo and transcript maintenance.",
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log collaborator and store activity")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newEngine wires a full session engine from environment configuration.
// The caller owns closing the returned transcript store.
func newEngine(logger *slog.Logger) (*session.Engine, *repository.SQLiteTranscripts, *common.Config, error) {
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	transcripts, err := repository.NewSQLiteTranscripts(cfg.Transcript.DBPath)
	if err != nil {
		return nil, nil, nil, err
	}

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
	return engine, transcripts, cfg, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
