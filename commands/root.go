// Package commands holds the fooddelivery command line.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisheksh99/Food-Delivery-App-v2/config"
	middleware "github.com/abhisheksh99/Food-Delivery-App-v2/middlewares"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "fooddelivery",
	Short: "Food delivery marketplace API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if envFile != "" {
			config.LoadEnv(envFile)
		} else {
			config.LoadEnv()
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	rootCmd.AddCommand(serveCmd, indexesCmd, grantAdminCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	slog.SetDefault(slog.New(middleware.NewContextHandler(handler)))
	return cfg, nil
}
