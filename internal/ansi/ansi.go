// Package ansi converts card images into terminal half-block art.
package ansi

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// DefaultWidth and DefaultHeight size the rendered art in terminal cells.
const (
	DefaultWidth  = 30
	DefaultHeight = 24
)

// RenderFile decodes the image at path and renders it as ANSI art.
func RenderFile(path string, width, height int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	return Render(img, width, height), nil
}

// Render converts an image to ANSI art using the upper half block
// character, two pixels per cell.
func Render(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			c1, _ := colorful.MakeColor(opaqueAt(resized, x, y))
			c2, _ := colorful.MakeColor(opaqueAt(resized, x+1, y))
			c3, _ := colorful.MakeColor(opaqueAt(resized, x, y+1))
			c4, _ := colorful.MakeColor(opaqueAt(resized, x+1, y+1))

			fg := average(c1, c2)
			bg := average(c3, c4)
			buffer.WriteString(cell('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// StripCodes removes ANSI escape sequences, for width calculations.
func StripCodes(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\033':
			inEscape = true
		default:
			result.WriteRune(c)
		}
	}
	return result.String()
}

// opaqueAt returns the pixel at (x, y), forcing full alpha so MakeColor
// never sees a transparent pixel. Out-of-bounds reads are black.
func opaqueAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return color.RGBA{0, 0, 0, 255}
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// cell formats one half-block cell with 24-bit foreground and background.
func cell(char rune, fg, bg colorful.Color) string {
	fr, fgg, fb := fg.RGB255()
	br, bgg, bb := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		fr, fgg, fb, br, bgg, bb, char)
}
