// ABOUTME: CLI command to list extracted user memories
// ABOUTME: Shows memories ranked by importance in table or JSON form
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var memoriesLimit int

// NewMemoriesCmd creates the memories command
func NewMemoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memories",
		Short: "List extracted memories",
		Long: `List memories extracted from past conversations, most important first.

Memories are mined automatically from messages: names, likes and
dislikes, goals, occupations, and relationships.`,
		RunE: runMemories,
		Example: `  companion memories
  companion memories --limit 5 --format json`,
	}

	cmd.Flags().IntVarP(&memoriesLimit, "limit", "n", 20, "Maximum number of memories to show")

	return cmd
}

func runMemories(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(memoriesLimit, "limit"); err != nil {
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

	memories, err := store.TopMemories(cfg.UserID, memoriesLimit)
	if err != nil {
		return fmt.Errorf("listing memories: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(memories, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	if len(memories) == 0 {
		if !quiet {
			fmt.Fprintln(out, "No memories yet. They accumulate as you chat.")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TYPE\tIMPORTANCE\tCONTENT\tWHEN\n")
	fmt.Fprintf(w, "----\t----------\t-------\t----\n")
	for _, mem := range memories {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			mem.Type, mem.Importance, truncate(mem.Content, 50), formatTime(mem.CreatedAt))
	}
	w.Flush()

	return nil
}
