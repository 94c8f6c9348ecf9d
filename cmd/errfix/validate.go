package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the state model for dead ends and unreachable states",
	Long:  `Crawls the model from the start state and reports dead ends and states no walk can reach.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		start, err := startState(cmd, s)
		if err != nil {
			return err
		}
		report, err := s.Engine.Validate(start)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d states, %d live transitions\n", report.States, report.Transitions)
		if len(report.DeadEnds) > 0 {
			fmt.Fprintf(out, "Dead ends: %s\n", strings.Join(report.DeadEnds, ", "))
		}
		if len(report.Unreachable) > 0 {
			fmt.Fprintf(out, "Unreachable from %s: %s\n", start, strings.Join(report.Unreachable, ", "))
		}

		strict, _ := cmd.Flags().GetBool("strict")
		if strict && len(report.Unreachable) > 0 {
			return fmt.Errorf("validation failed: %d states unreachable from %s", len(report.Unreachable), start)
		}
		fmt.Fprintln(out, "Model is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("start", "s", "", "Start state")
	validateCmd.Flags().Bool("strict", false, "Fail when some states are unreachable from the start state")
}
