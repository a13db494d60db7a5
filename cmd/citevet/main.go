// Package main provides the citevet CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/citevet/internal/batch"
	"github.com/matsen/citevet/internal/cache"
	"github.com/matsen/citevet/internal/config"
	"github.com/matsen/citevet/internal/crossref"
	"github.com/matsen/citevet/internal/openalex"
	"github.com/matsen/citevet/internal/storage"
	"github.com/matsen/citevet/internal/verify"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citevet",
	Short: "Citation verification against bibliographic registries",
	Long: `citevet checks whether citations correspond to real published works.

Each citation is verified against the Crossref registry, falling back to
OpenAlex when Crossref cannot answer. Results report existence, metadata
discrepancies, retraction notices, and a confidence score.

All commands output JSON by default for agent integration.
Use --human for human-readable output.

Environment Variables:
  CITEVET_CONTACT  Contact email sent to lookup services (polite pool)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for CITEVET_CONTACT etc.)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// buildEngine constructs the verification engine from configuration.
func buildEngine(cfg *config.Config) *verify.Engine {
	var primaryOpts []crossref.ClientOption
	if cfg.Contact != "" {
		primaryOpts = append(primaryOpts, crossref.WithContact(cfg.Contact))
	}
	if cfg.Primary.BaseURL != "" {
		primaryOpts = append(primaryOpts, crossref.WithBaseURL(cfg.Primary.BaseURL))
	}
	if cfg.Primary.TimeoutSeconds > 0 {
		primaryOpts = append(primaryOpts, crossref.WithTimeout(cfg.Primary.Timeout()))
	}

	var secondaryOpts []openalex.ClientOption
	if cfg.Contact != "" {
		secondaryOpts = append(secondaryOpts, openalex.WithContact(cfg.Contact))
	}
	if cfg.Secondary.BaseURL != "" {
		secondaryOpts = append(secondaryOpts, openalex.WithBaseURL(cfg.Secondary.BaseURL))
	}
	if cfg.Secondary.TimeoutSeconds > 0 {
		secondaryOpts = append(secondaryOpts, openalex.WithTimeout(cfg.Secondary.Timeout()))
	}

	return verify.New(crossref.NewClient(primaryOpts...), openalex.NewClient(secondaryOpts...))
}

// buildCoordinator constructs a batch coordinator from configuration,
// attaching the persistent store when cacheDB (flag value, falling back to
// config) names a database path. The returned closer is nil when no store
// is attached.
func buildCoordinator(cfg *config.Config, cacheDB string, window int) (*batch.Coordinator, func() error) {
	if window <= 0 {
		window = cfg.WindowSize
	}
	opts := []batch.Option{
		batch.WithWindowSize(window),
		batch.WithCache(cache.New(cache.WithTTL(cfg.CacheTTL()))),
	}

	var closer func() error
	if cacheDB == "" {
		cacheDB = cfg.CacheDB
	}
	if cacheDB != "" {
		db, err := storage.OpenDB(cacheDB)
		if err != nil {
			exitWithError(ExitError, "opening cache database: %v", err)
		}
		opts = append(opts, batch.WithStore(db))
		closer = db.Close
	}

	return batch.New(buildEngine(cfg), opts...), closer
}
