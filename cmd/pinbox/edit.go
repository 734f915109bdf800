package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editTitle   string
	editImg     string
	editAddTags []string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>...",
	Short: "Apply the same edit to several bookmarks at once",
	Long: `Overwrites the title and/or image of every listed bookmark and unions
the given tags into their existing tags. Changes are local; they reach
the server on the next sync.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title, img *string
		if cmd.Flags().Changed("title") {
			title = &editTitle
		}
		if cmd.Flags().Changed("img") {
			img = &editImg
		}
		if title == nil && img == nil && len(editAddTags) == 0 {
			return fmt.Errorf("nothing to change: pass --title, --img or --add-tags")
		}

		a := newAgent()
		edited, err := a.Edit(args, title, img, editAddTags)
		if err != nil {
			return err
		}
		fmt.Printf("edited %d bookmark(s)\n", edited)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Remove bookmarks from the local collection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAgent()

		removed, err := a.Remove(args)
		if err != nil {
			return err
		}
		fmt.Printf("removed %d bookmark(s)\n", removed)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title for all listed bookmarks")
	editCmd.Flags().StringVar(&editImg, "img", "", "new image URL for all listed bookmarks")
	editCmd.Flags().StringSliceVar(&editAddTags, "add-tags", nil, "tags to union into each bookmark")

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
}
