package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var chatPhone string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive terminal demo of the order flow",
	Long: "Simulates an SMS conversation with a customer. Type messages as a customer " +
		"would; 'reset' starts the conversation over, 'quit' exits.",
	Run: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatPhone, "phone", "+1-555-DEMO", "Customer phone number for the demo session")
	RootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) {
	logger := newLogger()
	engine, transcripts, _, err := newEngine(logger)
	if err != nil {
		exitErr("start demo", err)
	}
	defer transcripts.Close()

	ctx := context.Background()
	if err := engine.Reset(ctx, chatPhone); err != nil {
		exitErr("reset demo session", err)
	}

	fmt.Println("Order-intake demo. Type a message; 'reset' to start over, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "quit") || strings.EqualFold(input, "q") {
			break
		}

		reply, err := engine.HandleInbound(ctx, chatPhone, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Printf("Bot: %s\n", reply)
	}
}
