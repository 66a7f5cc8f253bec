// ABOUTME: CLI command to view and update the user profile
// ABOUTME: Shows display name, traits, preferences, goals, and style
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/companion/internal/models"
)

var (
	profileDisplayName string
	profileGoals       []string
	profileChallenges  []string
	profileStyle       string
)

// NewProfileCmd creates profile command
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and manage the user profile",
		Long: `View and manage the user profile.

The profile stores the display name, personality traits, preferences,
goals, challenges, and preferred communication style. It is created
automatically on first use.

Examples:
  companion profile
  companion profile --format json
  companion profile set --name "Alex"
  companion profile set --goal "run a marathon" --style empathetic`,
		RunE: runProfileShow,
	}

	// Add set subcommand
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long: `Update profile fields.

Examples:
  companion profile set --name "Alex"
  companion profile set --goal "learn Spanish" --goal "read more"
  companion profile set --challenge "work stress"
  companion profile set --style casual`,
		RunE: runProfileSet,
	}

	setCmd.Flags().StringVar(&profileDisplayName, "name", "", "Set display name")
	setCmd.Flags().StringArrayVar(&profileGoals, "goal", nil, "Add a goal (can be repeated)")
	setCmd.Flags().StringArrayVar(&profileChallenges, "challenge", nil, "Add a challenge (can be repeated)")
	setCmd.Flags().StringVar(&profileStyle, "style", "", "Set communication style: casual, professional, empathetic, balanced")

	cmd.AddCommand(setCmd)

	return cmd
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	profile, err := store.GetOrCreateProfile(cfg.UserID)
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "FIELD\tVALUE\n")
	fmt.Fprintf(w, "-----\t-----\n")

	name := profile.DisplayName
	if name == "" {
		name = "(not set)"
	}
	fmt.Fprintf(w, "Name\t%s\n", name)
	fmt.Fprintf(w, "Style\t%s\n", profile.CommunicationStyle)

	goals := "(none)"
	if len(profile.Goals) > 0 {
		goals = strings.Join(profile.Goals, ", ")
	}
	fmt.Fprintf(w, "Goals\t%s\n", truncate(goals, 60))

	challenges := "(none)"
	if len(profile.Challenges) > 0 {
		challenges = strings.Join(profile.Challenges, ", ")
	}
	fmt.Fprintf(w, "Challenges\t%s\n", truncate(challenges, 60))

	fmt.Fprintf(w, "Last Updated\t%s\n", formatTime(profile.UpdatedAt))

	w.Flush()

	if len(profile.Preferences) > 0 {
		fmt.Fprintf(out, "\nPreferences:\n")
		for key, value := range profile.Preferences {
			fmt.Fprintf(out, "  • %s: %s\n", key, value)
		}
	}

	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	// Check if any flags were provided
	if profileDisplayName == "" && len(profileGoals) == 0 && len(profileChallenges) == 0 && profileStyle == "" {
		return fmt.Errorf("no updates specified. Use --name, --goal, --challenge, or --style")
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

	profile, err := store.GetOrCreateProfile(cfg.UserID)
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}

	// Apply updates
	if profileDisplayName != "" {
		profile.DisplayName = profileDisplayName
	}
	for _, goal := range profileGoals {
		profile.AddGoal(goal)
	}
	for _, challenge := range profileChallenges {
		profile.AddChallenge(challenge)
	}
	if profileStyle != "" {
		if err := profile.SetCommunicationStyle(models.CommunicationStyle(profileStyle)); err != nil {
			return err
		}
	}

	if err := store.SaveProfile(profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Profile updated successfully\n")
	}

	return nil
}
