package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/errfix"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/aretw0/errfix/pkg/walk"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the state model as a diagram",
	Long: `Renders the state model as Mermaid, Graphviz DOT, JSON or YAML.
With --seed, a walk is generated from --start and the states it visited are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		format, _ := cmd.Flags().GetString("format")

		var overlay *domain.Walk
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			steps, _ := cmd.Flags().GetInt("steps")
			start, err := startState(cmd, s)
			if err != nil {
				return err
			}
			overlay, err = s.Engine.WalkSeeded(cmd.Context(), start, steps, seed)
			if err != nil {
				return err
			}
		}

		out, err := s.Engine.Graph(errfix.GraphFormat(strings.ToLower(format)), overlay)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("format", "f", string(errfix.GraphMermaid), "Output format: mermaid, dot, json or yaml")
	graphCmd.Flags().String("start", "", "Start state of the highlighted walk")
	graphCmd.Flags().Int("steps", walk.DefaultStepLimit, "Step limit of the highlighted walk")
	graphCmd.Flags().Uint64("seed", 0, "Highlight the walk generated from this seed")
}
