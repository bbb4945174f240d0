package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Print the version number of quire.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("quire version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
