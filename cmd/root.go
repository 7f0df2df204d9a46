// Package cmd implements the travel-copilot command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Shuaib-8/Travel-Copilot/internal/config"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "travel-copilot",
	Short: "Travel guidance assistant backed by a hosted chat model",
	Long: `travel-copilot answers travel questions (destinations, attractions,
local cuisine, culture, itineraries) through a hosted chat completion
provider. Run "serve" for the HTTP API and web form, or "ask" for a
single question from the terminal.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves configuration from .env, the config file, the
// environment and the command line, in increasing order of precedence.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	v, err := config.InitViper(cfgFile)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Log.Debug = true
	}
	return cfg, nil
}
