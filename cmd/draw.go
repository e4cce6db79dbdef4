package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/diviner/internal/catalog"
	"github.com/arcanaland/diviner/internal/config"
	"github.com/arcanaland/diviner/internal/interpret"
	"github.com/arcanaland/diviner/internal/logger"
	"github.com/arcanaland/diviner/internal/reading"
	"github.com/arcanaland/diviner/internal/writer"
)

var drawCmd = &cobra.Command{
	Use:   "draw [spread]",
	Short: "Draw a tarot spread",
	Long: `Draw performs a reading for the named spread.

Examples:
  diviner draw 3card
  diviner draw celticcross --seed 42 --no-interpret
  diviner draw 3card --reversal-prob 0.3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spreadName := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		cat, err := catalog.Load()
		if err != nil {
			return err
		}

		opts := reading.Options{
			ReversalProb:  cfg.ReversalProb,
			AllowReversed: true,
		}
		if prob, _ := cmd.Flags().GetFloat64("reversal-prob"); cmd.Flags().Changed("reversal-prob") {
			opts.ReversalProb = prob
		}
		if noReversed, _ := cmd.Flags().GetBool("no-reversed"); noReversed {
			opts.AllowReversed = false
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetInt64("seed")
			opts.Seed = &seed
		}

		rd, err := reading.Assemble(cat, spreadName, opts)
		if err != nil {
			return err
		}

		log := logger.Setup(cfg.LogLevel)

		noInterpret, _ := cmd.Flags().GetBool("no-interpret")
		title := ""
		if !noInterpret {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.InterpretTimeout)
			defer cancel()

			interp, err := interpret.NewGemini(ctx, log, cfg.GeminiAPIKey, cfg.Model)
			if err == nil {
				interpret.Annotate(ctx, interp, rd, log)
				if t, err := interp.Title(ctx, rd); err == nil {
					title = t
				}
			}
		}

		printReading(rd)

		if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
			path, err := writer.New(cfg.SavePath).Save(rd, title)
			if err != nil {
				fmt.Printf("Warning: could not save reading: %v\n", err)
			} else if path != "" {
				fmt.Printf("Saved to: %s\n", path)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(drawCmd)

	drawCmd.Flags().Int64("seed", 0, "RNG seed for reproducible draws")
	drawCmd.Flags().Float64("reversal-prob", reading.DefaultReversalProbability,
		"Probability [0-1] that a drawn card is reversed")
	drawCmd.Flags().Bool("no-reversed", false, "Disable reversed cards")
	drawCmd.Flags().Bool("no-interpret", false, "Skip AI interpretation")
	drawCmd.Flags().Bool("no-save", false, "Do not save the reading as Markdown")
}

// printReading writes the reading to the terminal.
func printReading(rd *reading.Reading) {
	fmt.Println()
	fmt.Println(color.HiWhiteString(rd.Spread.Name))
	fmt.Println()

	for _, e := range rd.Entries {
		header := fmt.Sprintf("%d. %s", e.Position.Index, e.Position.Label)
		fmt.Printf("%s %s\n", color.CyanString(header+":"), color.HiWhiteString(e.Title()))
		if e.Position.Represents != "" {
			fmt.Printf("   %s\n", color.HiBlackString(e.Position.Represents))
		}
		text := e.Interpretation
		if text == "" {
			text = e.Meaning
		}
		if text != "" {
			fmt.Printf("   %s\n", text)
		}
		fmt.Println()
	}

	if rd.Summary != "" {
		fmt.Println(color.CyanString("Summary:"))
		fmt.Println(rd.Summary)
		fmt.Println()
	}
}
