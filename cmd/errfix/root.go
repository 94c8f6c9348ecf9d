package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/errfix/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "errfix",
	Short: "errfix generates random walks over state transition tables",
	Long: `errfix builds a finite-state model from a table of (start, action, end) records,
generates random walks over it with state and transition coverage, and exports the model as a graph.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (default errfix.yaml)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "State table file (CSV, YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every step and driver call")
}

// openSession builds an engine from the persistent flags.
func openSession(cmd *cobra.Command) (*cli.Session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	modelPath, _ := cmd.Flags().GetString("model")
	logLevel, _ := cmd.Flags().GetString("log-level")
	debug, _ := cmd.Flags().GetBool("debug")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return cli.NewSession(ctx, cli.Options{
		ConfigPath: configPath,
		ModelPath:  modelPath,
		LogLevel:   logLevel,
		Debug:      debug,
	})
}

// startState resolves --start against the configuration.
func startState(cmd *cobra.Command, s *cli.Session) (string, error) {
	start, _ := cmd.Flags().GetString("start")
	if start == "" {
		start = s.Config.Start
	}
	if start == "" {
		return "", errors.New("no start state given: pass --start or set 'start' in the config file")
	}
	return start, nil
}
