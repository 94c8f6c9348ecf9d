package main

import (
	"fmt"

	"github.com/aretw0/errfix/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List every state and its actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		pretty, _ := cmd.Flags().GetBool("pretty")
		if !pretty {
			fmt.Fprint(cmd.OutOrStdout(), s.Engine.Describe())
			return nil
		}

		md, err := tui.ModelMarkdown(s.Engine.Name, s.Engine.Model())
		if err != nil {
			return err
		}
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		out, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("pretty", false, "Render the model as a styled table")
}
