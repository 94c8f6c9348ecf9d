package main

import (
	"fmt"

	"github.com/aretw0/errfix"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of errfix",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("errfix v%s\n", errfix.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
