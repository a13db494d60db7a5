package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/citevet/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after applying defaults, the config
file, and environment overrides.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Path   string         `json:"path"`
	Config *config.Config `json:"config"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	if humanOutput {
		fmt.Printf("config file: %s\n", config.Path())
		fmt.Printf("contact: %s\n", cfg.Contact)
		fmt.Printf("window_size: %d\n", cfg.WindowSize)
		fmt.Printf("cache_ttl_minutes: %d\n", cfg.CacheTTLMinutes)
		if cfg.Primary.BaseURL != "" {
			fmt.Printf("primary.base_url: %s\n", cfg.Primary.BaseURL)
		}
		if cfg.Secondary.BaseURL != "" {
			fmt.Printf("secondary.base_url: %s\n", cfg.Secondary.BaseURL)
		}
		if cfg.CacheDB != "" {
			fmt.Printf("cache_db: %s\n", cfg.CacheDB)
		}
		return nil
	}
	return outputJSON(ConfigResponse{Path: config.Path(), Config: cfg})
}
