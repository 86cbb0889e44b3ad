package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suPer8Hu/devopstile/internal/config"
	"github.com/suPer8Hu/devopstile/internal/logger"
	"go.uber.org/zap"
)

var (
	// Global flags
	logLevel string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "devopstile",
	Short: "Mock DevOps assistant and IaC translator",
	Long: `devopstile serves a keyword-driven DevOps assistant and a lookup-based
infrastructure-as-code translator over HTTP.

Configuration comes from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		log, err = logger.New(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	translateCmd.Flags().StringVar(&fromFlag, "from", "", "source format")
	translateCmd.Flags().StringVar(&toFlag, "to", "", "target format")
	translateCmd.Flags().StringVar(&snippetsFlag, "snippets", "", "YAML snippet overlay (overrides SNIPPETS_FILE)")
	_ = translateCmd.MarkFlagRequired("from")
	_ = translateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(serveCmd, workerCmd, askCmd, translateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
