package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/StockPicker/internal/config"
)

// closeLog releases the LOG_FILE handle once the command has finished
var closeLog = func() error { return nil }

var rootCmd = &cobra.Command{
	Use:   "stockpicker",
	Short: "Daily UK stock analysis with AI-ranked picks published to Google Sheets",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env may hold LOG_LEVEL / LOG_FILE
		envErr := config.LoadDotEnv()
		closeLog = setupLogging(config.LoadRuntime())
		if envErr != nil {
			log.Warn().Msg(".env file not found, relying on actual environment variables")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		testMode, _ := cmd.Flags().GetBool("test")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		setupSignalHandling(cancel)

		return run(ctx, configPath, testMode, dryRun)
	},
	SilenceUsage: true,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the configuration without running the analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		printConfig(cfg)
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d stocks, %d indicators, lookback %d days\n",
			configPath, len(cfg.UKStocks), len(cfg.Analysis.TechnicalIndicators), cfg.Analysis.LookbackDays)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the YAML configuration file.")
	rootCmd.Flags().Bool("test", false, "Run with a small subset of stocks.")
	rootCmd.Flags().Bool("dry-run", false, "Print the recommendations instead of updating Google Sheets.")
	rootCmd.AddCommand(validateCmd)
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("Stock analyzer failed")
	}
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintf(os.Stderr, "closing log file: %v\n", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, cancelling run...")
		cancel()
	}()
}
