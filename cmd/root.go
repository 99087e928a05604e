package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sqlguard",
	Short: "A SQL safety validation tool",
	Long: `sqlguard validates SQL statements against a battery of safety checks:
unconditioned UPDATE/DELETE, dummy WHERE conditions, logical (in-memory)
pagination, deep offsets, oversized pages, and injection-shaped SQL.

It runs as a build-time scanner over SQL files; the same engine is embedded
at runtime by ORM interceptors and driver proxies.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is sqlguard.yaml in the working directory)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}
