package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmarcal/futmeet-sub000/internal/dependencies/random"
	"github.com/cmarcal/futmeet-sub000/internal/model"
)

var (
	cfg    *Config
	client *Client
	rnd    random.Random
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	rnd = random.New()

	rootCmd := &cobra.Command{
		Use:   "futmeet",
		Short: "CLI tool for the FutMeet API",
		Long: `futmeet is a CLI tool for interacting with the FutMeet JSON API.

It supports all API operations including session management, roster
editing, team sorting and shareable match summaries.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Verbose)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: FUTMEET_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json (env: FUTMEET_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// sessionIDArg validates a session id argument before it hits the API
func sessionIDArg(arg string) (string, error) {
	if err := model.ValidateSessionID(arg); err != nil {
		return "", fmt.Errorf("invalid session id %q: must be %d alphanumeric characters", arg, model.SessionIDLength)
	}
	return arg, nil
}

// mintSessionID generates a fresh session id client-side
func mintSessionID() string {
	return rnd.String(model.SessionIDLength, model.SessionIDAlphabet)
}
