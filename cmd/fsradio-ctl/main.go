// Fsradio-ctl is a control utility for Frontier Silicon internet radios.
//
// It provides network discovery, an interactive full-screen remote, and
// direct control commands for radios speaking the Frontier Silicon device
// API (Medion, Hama, Auna, Roberts and many others).
//
// Usage:
//
//	fsradio-ctl [command] [flags]
//
// Running without arguments launches the interactive remote.
// See 'fsradio-ctl --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sd-personal/fsradio/internal/logging"
	"github.com/sd-personal/fsradio/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fsradio-ctl",
	Short: "Frontier Silicon Radio Control Utility",
	Long: `A control utility for internet radios built on Frontier Silicon chipsets.

Provides network discovery, an interactive full-screen remote, and direct
commands for playback, volume, power, source modes, presets and equaliser
settings.

If no command is specified, the interactive remote will launch automatically.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel != "" {
			return logging.Initialize(logLevel)
		}
		return logging.InitializeFromEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the interactive remote
		return runRemote(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fsradio-ctl %s\n", version.Full())
	},
}
