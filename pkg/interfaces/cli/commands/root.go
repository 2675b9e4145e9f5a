// Package commands wires the bomgen CLI commands.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bomgen",
	Short: "CleanStation BOM generation engine",
	Long: `bomgen expands a CleanStation order configuration into a complete,
hierarchical bill of materials using a parts/assemblies catalog loaded
from CSV files or PostgreSQL.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; environment variables may come from the shell
		_ = godotenv.Load()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// newLogger builds the CLI logger; verbose selects the development config
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}
