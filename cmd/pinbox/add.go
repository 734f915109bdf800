package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	addURL   string
	addImg   string
	addTitle string
	addTags  []string
	addPage  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Capture a bookmark into the local collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAgent()

		b, added, done, err := a.Capture(cmd.Context(),
			addURL, addImg, addTitle, addTags, addPage)
		if err != nil {
			return err
		}
		if !added {
			fmt.Println("already bookmarked (same url and image)")
			return nil
		}

		fmt.Printf("added %s (%s)\n", b.ID, b.DisplayTitle())

		// Give the background push a moment; the bookmark is safe locally
		// either way and reaches the server on the next sync.
		select {
		case pushErr := <-done:
			if pushErr != nil {
				fmt.Println("push failed, will retry on next sync")
			} else {
				fmt.Println("pushed to server")
			}
		case <-time.After(flagTimeout):
			fmt.Println("push still pending, will retry on next sync")
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addURL, "url", "", "link the bookmark points to (required)")
	addCmd.Flags().StringVar(&addImg, "img", "", "representative image URL (required)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "display title")
	addCmd.Flags().StringSliceVar(&addTags, "tags", nil, "comma-separated tags")
	addCmd.Flags().StringVar(&addPage, "page", "", "page the bookmark was captured from")
	_ = addCmd.MarkFlagRequired("url")
	_ = addCmd.MarkFlagRequired("img")

	rootCmd.AddCommand(addCmd)
}
