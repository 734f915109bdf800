package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinbox/pinbox/internal/agent"
	"github.com/pinbox/pinbox/internal/localstore"
	"github.com/pinbox/pinbox/internal/logger"
	"github.com/pinbox/pinbox/internal/syncclient"
)

var (
	flagAPI     string
	flagOwner   string
	flagStore   string
	flagTimeout time.Duration
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "pinbox",
	Short: "Device-side agent for the pinbox bookmark service",
	Long: `pinbox manages a local bookmark collection stored as a JSON file and
keeps it in sync with a pinboxd server: capture bookmarks, pull the
remote collection, push local ones, or seed from a YAML file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api",
		envDefault("PINBOX_API_URL", "http://localhost:8080"),
		"bookmark API base URL")
	rootCmd.PersistentFlags().StringVar(&flagOwner, "owner",
		envDefault("PINBOX_OWNER", "default"),
		"owner id the collection is scoped to")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store",
		envDefault("PINBOX_STORE_FILE", defaultStorePath()),
		"path of the local collection file")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout",
		10*time.Second, "per-request timeout against the API")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"verbose logging")
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookmarks.json"
	}
	return filepath.Join(home, ".pinbox", "bookmarks.json")
}

// newAgent builds the agent from the persistent flags.
func newAgent() *agent.Agent {
	level := "warn"
	if flagDebug {
		level = "debug"
	}
	log := logger.New(level, true)

	store := localstore.New(flagStore)
	api := syncclient.New(flagAPI, flagTimeout, log)
	return agent.New(store, api, flagOwner, log)
}
