package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "Personal journal with photos and on-this-day memories",
	Long:  "Daybook is a personal journaling server. Single Go binary: flat JSON-file storage, image uploads, and an embedded browser UI.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(memoriesCmd)
}
