// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all companion subcommands
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Global flags shared by all subcommands
var (
	verbose      bool
	quiet        bool
	outputFormat string
	userIDFlag   string
)

const banner = `
 ██████╗ ██████╗ ███╗   ███╗██████╗  █████╗ ███╗   ██╗██╗ ██████╗ ███╗   ██╗
██╔════╝██╔═══██╗████╗ ████║██╔══██╗██╔══██╗████╗  ██║██║██╔═══██╗████╗  ██║
██║     ██║   ██║██╔████╔██║██████╔╝███████║██╔██╗ ██║██║██║   ██║██╔██╗ ██║
██║     ██║   ██║██║╚██╔╝██║██╔═══╝ ██╔══██║██║╚██╗██║██║██║   ██║██║╚██╗██║
╚██████╗╚██████╔╝██║ ╚═╝ ██║██║     ██║  ██║██║ ╚████║██║╚██████╔╝██║ ╚████║
 ╚═════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝ ╚═════╝ ╚═╝  ╚═══╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companion",
		Short: "Emotionally aware chat companion",
		Long: banner + `
Companion is a chat client that talks to an inference backend, tags
every message with a detected emotion, and quietly builds up a profile
and long-term memories for the user across conversations.

Conversations, emotion history, and extracted memories persist locally
in SQLite by default, or in Charm KV when COMPANION_STORE=charm.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			if outputFormat != "auto" && outputFormat != "json" && outputFormat != "table" {
				return fmt.Errorf("--format must be auto, json, or table, got %q", outputFormat)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, json, or table")
	cmd.PersistentFlags().StringVarP(&userIDFlag, "user", "u", "", "User id (overrides COMPANION_USER_ID)")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSendCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewMemoriesCmd())
	cmd.AddCommand(NewEmotionsCmd())
	cmd.AddCommand(NewHealthCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
