package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "diviner",
	Short: "Tarot readings from the terminal",
	Long: `Diviner draws tarot spreads from a bundled Rider-Waite-Smith deck,
optionally interprets them with a language model, and saves readings as
Markdown notes.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
