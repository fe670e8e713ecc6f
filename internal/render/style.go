package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the ink set used for lettering and synthesized shapes.
type Palette struct {
	// Ink is the body text color for speech, thought, and narration.
	Ink color.NRGBA

	// SFXInk and SFXOutline style sound-effect lettering: a bold accent
	// fill with a contrasting multi-directional outline so SFX stays
	// legible over busy artwork.
	SFXInk     color.NRGBA
	SFXOutline color.NRGBA

	// SpeechName and ThoughtName color the character-name header.
	SpeechName  color.NRGBA
	ThoughtName color.NRGBA

	// BubbleFill, BubbleStroke, and NarrationFill style synthesized
	// shapes.
	BubbleFill    color.NRGBA
	BubbleStroke  color.NRGBA
	NarrationFill color.NRGBA

	// Paper is the strip background.
	Paper color.NRGBA
}

// DefaultPalette returns the house style.
func DefaultPalette() Palette {
	return Palette{
		Ink:           mustHex("#111111"),
		SFXInk:        mustHex("#DC2626"),
		SFXOutline:    mustHex("#FBBF24"),
		SpeechName:    mustHex("#DC2626"),
		ThoughtName:   mustHex("#06B6D4"),
		BubbleFill:    mustHex("#FFFFFF"),
		BubbleStroke:  mustHex("#111111"),
		NarrationFill: mustHex("#FEF3C7"),
		Paper:         mustHex("#F4EFE3"),
	}
}

func mustHex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("bad palette color %q: %v", s, err))
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
