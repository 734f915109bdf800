package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <seed-file>",
	Short: "Seed the collection from a bookmarks YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAgent()

		localAdded, remoteImported, err := a.ImportSeed(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("added %d locally, server accepted %d\n", localAdded, remoteImported)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
