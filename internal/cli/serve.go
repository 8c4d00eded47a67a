package cli

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/order-intake/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the inbound messaging webhook",
	Long: "Starts the HTTP webhook server that receives customer messages " +
		"(POST /sms) and exposes stored transcripts (GET /messages).",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		engine, transcripts, cfg, err := newEngine(logger)
		if err != nil {
			exitErr("start server", err)
		}
		defer transcripts.Close()

		srv := server.NewServer(server.RouterConfig{
			Intake: server.NewIntakeHandler(engine, transcripts, logger),
			Logger: logger,
		})

		logger.Info("webhook serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.Run(cfg.Server.HTTPAddr); err != nil {
			exitErr("serve", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
