package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/diviner/internal/spread"
)

var spreadsCmd = &cobra.Command{
	Use:   "spreads",
	Short: "List available spreads",
	Run: func(cmd *cobra.Command, args []string) {
		for _, key := range spread.Keys() {
			def, err := spread.Get(key)
			if err != nil {
				continue
			}
			fmt.Printf("%s %s\n", color.CyanString(def.Key), color.HiWhiteString("(%s, %d cards)", def.Name, def.Size()))
			for _, p := range def.Positions {
				fmt.Printf("  %2d. %-16s %s\n", p.Index, p.Label, color.HiBlackString(p.Represents))
			}
			fmt.Println()
		}
	},
}

func init() {
	RootCmd.AddCommand(spreadsCmd)
}
