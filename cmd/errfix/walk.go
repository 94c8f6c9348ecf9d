package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/aretw0/errfix/internal/presentation/tui"
	"github.com/aretw0/errfix/pkg/coverage"
	"github.com/aretw0/errfix/pkg/walk"
	"github.com/spf13/cobra"
)

var walkCmd = &cobra.Command{
	Use:   "walk",
	Short: "Generate random walks over the state model",
	Long: `Generates one or more seeded random walks from the start state and prints them with their coverage.
Walk i of a run uses seed+i, so a run can be reproduced from its first seed.`,
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

		opts := walk.SuiteOptions{
			Start:     start,
			StepLimit: s.Config.Steps,
			Count:     s.Config.Walks,
			Seed:      s.Config.Seed,
		}
		if cmd.Flags().Changed("steps") {
			opts.StepLimit, _ = cmd.Flags().GetInt("steps")
		}
		if cmd.Flags().Changed("count") {
			opts.Count, _ = cmd.Flags().GetInt("count")
		}
		if cmd.Flags().Changed("seed") {
			opts.Seed, _ = cmd.Flags().GetUint64("seed")
		} else if opts.Seed == 0 {
			opts.Seed = rand.Uint64()
		}
		opts.Parallelism, _ = cmd.Flags().GetInt("parallel")

		walks, err := s.Engine.Suite(cmd.Context(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(walks)
		}

		styler := tui.NewStyler(out)
		for i, w := range walks {
			if i > 0 {
				fmt.Fprintln(out)
			}
			styler.PrintWalk(out, w)
		}
		if len(walks) > 1 {
			total, err := coverage.Combined(s.Engine.Model(), walks)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\nSuite coverage (%d walks):\n", len(walks))
			fmt.Fprintf(out, "\tStates: %s\n", styler.Percent(total.States))
			fmt.Fprintf(out, "\tTransitions: %s\n", styler.Percent(total.Transitions))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)
	walkCmd.Flags().StringP("start", "s", "", "Start state")
	walkCmd.Flags().IntP("steps", "n", walk.DefaultStepLimit, "Maximum number of steps per walk")
	walkCmd.Flags().Int("count", 1, "Number of walks to generate")
	walkCmd.Flags().Uint64("seed", 0, "Seed of the first walk (random when unset)")
	walkCmd.Flags().Int("parallel", 0, "Maximum number of walks generated at once (0 means no limit)")
	walkCmd.Flags().Bool("json", false, "Print the walks as JSON")
}
