package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sportify/config"
)

var (
	// Global flags, applied over the environment.
	logLevel string

	rootCmd = newRootCommand()
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sportify",
		Short: "Sportify API server",
		Long: `Sportify serves the public sports event listings and the admin panel API.

Admins submit events, edits and delete requests; super admins approve or reject
them before anything changes on the public site.`,
		SilenceUsage: true,
		// Run the serve command by default if no subcommand is specified
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: LOG_LEVEL or info)")
	addServerFlags(root)

	root.AddCommand(newServeCommand())
	root.AddCommand(newBootstrapAdminCommand())
	root.AddCommand(versionCmd)
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}
