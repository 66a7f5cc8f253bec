// ABOUTME: One-shot send command using the blocking chat path
// ABOUTME: Prints the full response, optionally as JSON with emotion data
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSendCmd creates the send command
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a single message and print the response",
		Long: `Send a single message and print the full response.

Uses the blocking (non-streaming) path: on backend failure a canned
reply matching the detected emotion is printed instead of an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSend,
		Example: `  companion send "My name is Alex and I love sailing"
  companion send --format json "I'm worried about tomorrow"`,
	}

	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
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

	message := strings.Join(args, " ")
	reply := client.SendMessage(cmd.Context(), message)

	// Let background memory writes land before the store closes
	client.Recorder().Wait()

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		data, err := json.MarshalIndent(map[string]interface{}{
			"response":           reply.Message,
			"emotion":            string(reply.Emotion),
			"emotion_confidence": reply.EmotionConfidence,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", data)
		return nil
	}

	if verbose {
		fmt.Fprintf(out, "%s %s (%.0f%%)\n", emotionIndicator(reply.Emotion), reply.Emotion, reply.EmotionConfidence*100)
	}
	fmt.Fprintln(out, reply.Message)
	return nil
}
