package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielerenburg1/address-checker/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "address-checker",
	Short: "Resolve addresses to neighborhoods",
	Long:  "Maintains named neighborhood polygons, geocodes street addresses via Google, and reports which neighborhoods contain each location.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
