package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pinbox/pinbox/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the local collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAgent()

		items := a.List()
		if len(items) == 0 {
			fmt.Println("no bookmarks")
			return nil
		}

		for _, b := range items {
			printBookmark(b)
		}
		fmt.Printf("%d bookmark(s)\n", len(items))
		return nil
	},
}

func printBookmark(b domain.Bookmark) {
	line := fmt.Sprintf("%s  %s", b.ID, b.DisplayTitle())
	if len(b.Tags) > 0 {
		line += "  [" + strings.Join(b.Tags, ", ") + "]"
	}
	fmt.Println(line)
	fmt.Printf("    %s\n", b.URL)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
