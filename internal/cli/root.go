package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "sbctl",
		Short: "CLI tool for the sea battle server",
		Long: `sbctl is a CLI tool for inspecting and driving a sea battle server.

Read-only commands use the JSON API on the HTTP port. The events and send
commands speak the game protocol over the WebSocket port.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "HTTP server URL (env: SBCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.WSURL, "ws", cfg.WSURL, "WebSocket URL (env: SBCTL_WS)")
	rootCmd.PersistentFlags().StringVar(&cfg.Name, "name", cfg.Name, "Player name for game commands (env: SBCTL_NAME)")
	rootCmd.PersistentFlags().StringVar(&cfg.Password, "password", cfg.Password, "Player password (env: SBCTL_PASSWORD)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newRoomsCmd())
	rootCmd.AddCommand(newWinnersCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newSendCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
