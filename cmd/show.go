package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/diviner/internal/ansi"
	"github.com/arcanaland/diviner/internal/card"
	"github.com/arcanaland/diviner/internal/catalog"
	"github.com/arcanaland/diviner/internal/config"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display a card with its meanings",
	Long: `Show displays a card's name, arcana and upright/reversed keywords.
When the configured card image directory contains the card's image, it is
rendered as ANSI terminal art alongside the text.

Use canonical card IDs like 'major_arcana.00' or 'minor_arcana.wands.ace'.

Examples:
  diviner show major_arcana.00
  diviner show minor_arcana.cups.queen`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		cat, err := catalog.Load()
		if err != nil {
			return err
		}

		c, err := cat.Get(cardID)
		if err != nil {
			return err
		}

		art := ""
		if cfg.CardsDir != "" {
			imagePath := filepath.Join(cfg.CardsDir, c.Image)
			if _, err := os.Stat(imagePath); err == nil {
				if rendered, err := ansi.RenderFile(imagePath, ansi.DefaultWidth, ansi.DefaultHeight); err == nil {
					art = rendered
				}
			}
		}

		displayCard(c, art)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}

func getSuitSymbol(suit string) string {
	switch suit {
	case "wands":
		return ""
	case "cups":
		return ""
	case "swords":
		return "󰞇"
	case "pentacles":
		return "󱙧"
	default:
		return "•"
	}
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		switch {
		case len(currentLine) == 0:
			currentLine = word
		case len(currentLine)+1+len(word) <= width:
			currentLine += " " + word
		default:
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// displayCard prints the card info, with ANSI art on the left when present.
func displayCard(c *card.Card, art string) {
	var artLines []string
	maxArtWidth := 0
	if art != "" {
		artLines = strings.Split(strings.TrimRight(art, "\n"), "\n")
		for _, line := range artLines {
			if w := len(ansi.StripCodes(line)); w > maxArtWidth {
				maxArtWidth = w
			}
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", c.Name))
	infoLines = append(infoLines, colorize.CyanString("ID:   ")+colorize.HiWhiteString(c.ID))

	if c.Type == "major_arcana" {
		infoLines = append(infoLines, colorize.CyanString("Type: ")+colorize.HiWhiteString("Major Arcana"))
	} else {
		infoLines = append(infoLines, colorize.CyanString("Type: ")+colorize.HiWhiteString("Minor Arcana"))
		infoLines = append(infoLines, colorize.CyanString("Suit: ")+
			colorize.HiWhiteString("%s · %s", c.Suit, getSuitSymbol(c.Suit)))
		infoLines = append(infoLines, colorize.CyanString("Rank: ")+colorize.HiWhiteString(c.Rank))
	}

	spacing := 4
	infoStartCol := maxArtWidth + spacing
	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	infoLines = append(infoLines, "")
	infoLines = append(infoLines, colorize.CyanString("Upright:"))
	infoLines = append(infoLines, wrapText(strings.Join(c.Upright, ", "), infoWidth)...)
	infoLines = append(infoLines, "")
	infoLines = append(infoLines, colorize.CyanString("Reversed:"))
	infoLines = append(infoLines, wrapText(strings.Join(c.Reversed, ", "), infoWidth)...)

	fmt.Println()
	maxLines := max(len(artLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(artLines) {
			fmt.Print(artLines[i])
			visibleWidth := len(ansi.StripCodes(artLines[i]))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}

		fmt.Println()
	}

	fmt.Println()
}

// max returns the maximum of two integers
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
