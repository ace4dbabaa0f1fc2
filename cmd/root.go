package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"curseforge-client/logger"
)

var (
	configDir  string
	logFile    string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "curseforge-client",
	Short: "Query the CurseForge API and manage a local Minecraft instance",
	Long: `curseforge-client is a command line client for the CurseForge Core API.

API commands (games, search, mod, files, fingerprint, ...) only need
CURSEFORGE_API_KEY. Instance commands (scan, update, rollback, browse, export)
also need MINECRAFT_DIR. Settings are read from .env and the environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logger.InitLogger(logFile, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing the .env file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", os.Getenv("LOG_FILE"), "log file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log API request traces")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of formatted output")
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Log.Errorw("Command failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}
