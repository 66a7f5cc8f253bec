// ABOUTME: Interactive chat REPL streaming tokens as they arrive
// ABOUTME: Shows an emotion indicator next to each user message
package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/companion/internal/chat"
	"github.com/harper/companion/internal/emotion"
	"github.com/harper/companion/internal/models"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

Responses stream token by token. Each of your messages is tagged with a
detected emotion (shown next to the prompt) and mined for memories in
the background. Type /quit or press Ctrl-D to leave.`,
		RunE: runChat,
		Example: `  companion chat
  companion chat --user alex`,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	client, err := newChatClient(cfg, store)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintf(out, "Connected to %s as %s. Type /quit to exit.\n\n", cfg.APIURL, cfg.UserID)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		detected, confidence := emotion.Detect(line)
		if !quiet && detected != models.EmotionNeutral {
			fmt.Fprintf(out, "  %s %s (%.0f%%)\n", emotionIndicator(detected), detected, confidence*100)
		}

		fmt.Fprint(out, "companion> ")
		client.SendMessageStream(cmd.Context(), line, chat.Callbacks{
			OnToken: func(token string) {
				fmt.Fprint(out, token)
			},
			OnComplete: func(full string) {
				fmt.Fprintln(out)
			},
			OnError: func(err error) {
				fmt.Fprintf(out, "\n(connection trouble: %v)\n", err)
			},
		})
		fmt.Fprintln(out)
	}

	// Let background memory writes land before the store closes
	client.Recorder().Wait()

	if !quiet {
		fmt.Fprintln(out, "Goodbye!")
	}
	return scanner.Err()
}
