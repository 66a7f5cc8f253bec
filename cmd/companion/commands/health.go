// ABOUTME: CLI command to probe the inference backend's health endpoint
// ABOUTME: Supports waiting for the backend to come up with backoff
package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/companion/internal/util"
)

var (
	healthWait     bool
	healthDeadline time.Duration
)

// NewHealthCmd creates the health command
func NewHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the inference backend",
		Long: `Check the inference backend's health endpoint.

With --wait, polls with exponential backoff until the backend reports
healthy or the deadline passes. Exits non-zero on an unhealthy backend.`,
		RunE: runHealth,
		Example: `  companion health
  companion health --wait --deadline 2m`,
	}

	cmd.Flags().BoolVar(&healthWait, "wait", false, "Poll until the backend is healthy")
	cmd.Flags().DurationVar(&healthDeadline, "deadline", time.Minute, "Give up waiting after this long")

	return cmd
}

func runHealth(cmd *cobra.Command, args []string) error {
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
	deadline := time.Now().Add(healthDeadline)

	for attempt := 0; ; attempt++ {
		health, err := client.CheckHealth(cmd.Context())
		if err == nil && health.Healthy() {
			if outputFormat == "json" {
				jsonData, merr := json.MarshalIndent(health, "", "  ")
				if merr != nil {
					return fmt.Errorf("marshaling JSON: %w", merr)
				}
				fmt.Fprintf(out, "%s\n", jsonData)
			} else if !quiet {
				model := health.ModelName
				if model == "" {
					model = "(unknown model)"
				}
				fmt.Fprintf(out, "Backend healthy: %s %s\n", cfg.APIURL, model)
			}
			return nil
		}

		if !healthWait {
			if err != nil {
				return fmt.Errorf("backend unreachable: %w", err)
			}
			return fmt.Errorf("backend unhealthy: status=%s error=%s", health.Status, health.Error)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("backend did not become healthy within %s", healthDeadline)
		}

		backoff := util.CalculateBackoff(time.Second, attempt+1)
		if verbose {
			fmt.Fprintf(out, "Backend not ready (attempt %d), retrying in %s\n", attempt+1, backoff.Round(time.Millisecond))
		}

		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()
		case <-time.After(backoff):
		}
	}
}
