// ABOUTME: CLI command to list recent emotion history
// ABOUTME: Shows detected emotions with intensity and trigger text
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var emotionsLimit int

// NewEmotionsCmd creates the emotions command
func NewEmotionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emotions",
		Short: "List recent emotion history",
		Long: `List recent emotion history entries, newest first.

An entry is recorded whenever a message carries a clear non-neutral
emotion. Low-confidence detections are not stored.`,
		RunE: runEmotions,
		Example: `  companion emotions
  companion emotions --limit 5 --format json`,
	}

	cmd.Flags().IntVarP(&emotionsLimit, "limit", "n", 20, "Maximum number of entries to show")

	return cmd
}

func runEmotions(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(emotionsLimit, "limit"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	entries, err := store.RecentEmotions(cfg.UserID, emotionsLimit)
	if err != nil {
		return fmt.Errorf("listing emotion history: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	if len(entries) == 0 {
		if !quiet {
			fmt.Fprintln(out, "No emotion history yet.")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "EMOTION\tINTENSITY\tTRIGGER\tWHEN\n")
	fmt.Fprintf(w, "-------\t---------\t-------\t----\n")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s %s\t%.2f\t%s\t%s\n",
			emotionIndicator(entry.Emotion), entry.Emotion, entry.Intensity,
			truncate(entry.TriggerText, 40), formatTime(entry.CreatedAt))
	}
	w.Flush()

	return nil
}
