package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the lineflow CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lineflow version %s\n", version)
		fmt.Println("An indicator evaluation engine for historical bar data")
		fmt.Println("https://github.com/rustyeddy/lineflow")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
