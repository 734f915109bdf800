package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Merge the remote collection into the local one",
	Long: `Fetches the owner's collection from the server and merges it locally.
Bookmarks already present locally are never overwritten; only unknown
ids are adopted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAgent()

		added, err := a.Pull(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("adopted %d bookmark(s) from server\n", added)
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Full reconciliation: pull-merge, then push everything local",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAgent()

		pulled, pushed, failed, err := a.Sync(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("adopted %d, pushed %d, failed %d\n", pulled, pushed, failed)
		if failed > 0 {
			return fmt.Errorf("%d bookmark(s) failed to push", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(syncCmd)
}
