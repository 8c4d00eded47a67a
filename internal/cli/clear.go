package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/order-intake/internal/common"
	"github.com/joseph-ayodele/order-intake/internal/repository"
)

var clearCmd = &cobra.Command{
	Use:   "clear <phone>",
	Short: "Delete the stored transcript for a phone number",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := common.LoadConfig()
		transcripts, err := repository.NewSQLiteTranscripts(cfg.Transcript.DBPath)
		if err != nil {
			exitErr("open transcript store", err)
		}
		defer transcripts.Close()

		if err := transcripts.Clear(context.Background(), args[0]); err != nil {
			exitErr("clear transcript", err)
		}
		fmt.Printf("cleared conversation history for %s\n", args[0])
	},
}

func init() {
	RootCmd.AddCommand(clearCmd)
}
