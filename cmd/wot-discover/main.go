// Wot-discover finds Web of Things devices on the local network.
//
// It browses mDNS for the _wot._tcp service, fetches each announced Thing
// Description over HTTP and prints what it finds, either once (list) or as
// a live full-screen view (watch).
//
// Usage:
//
//	wot-discover [command] [flags]
//
// See 'wot-discover --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/wot-discovery/internal/config"
	"github.com/muurk/wot-discovery/internal/logging"
	"github.com/muurk/wot-discovery/internal/version"
)

// Global flags
var (
	configPath string
	logLevel   string
)

// cfg is the loaded preferences file, set before any command runs
var cfg *config.Config

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wot-discover",
	Short: "Web of Things discovery utility",
	Long: `Discover Web of Things devices on the local network.

Things advertise themselves over mDNS/DNS-SD as _wot._tcp services. This
utility browses for them, fetches each Thing Description over HTTP and
shows what it found.

Preferences are read from the config file (see 'wot-discover config path');
command-line flags override them.`,
	Version:       version.Version,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := logLevel
		if !cmd.Flags().Changed("log-level") {
			level = cfg.Log.Level
		}
		return logging.Initialize(level)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the OS config directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wot-discover %s\n", version.Full())
	},
}
