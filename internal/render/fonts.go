package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Lettering uses the embedded Go fonts: regular for body text, bold for
// name headers and SFX. Parsing happens once; faces are created per call
// because font.Face is not safe for concurrent use and pipelines may run
// in parallel.
var (
	regularFont *opentype.Font
	boldFont    *opentype.Font
)

func init() {
	var err error
	if regularFont, err = opentype.Parse(goregular.TTF); err != nil {
		panic(err) // embedded font, cannot fail
	}
	if boldFont, err = opentype.Parse(gobold.TTF); err != nil {
		panic(err)
	}
}

// newFace returns a fresh face at the given pixel size. Face creation on a
// parsed font only fails for degenerate options, in which case the fixed
// basicfont keeps rendering total.
func newFace(size int, bold bool) font.Face {
	src := regularFont
	if bold {
		src = boldFont
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// textWidth measures the advance width of s in pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// faceHeight is the face's nominal line height in pixels, before the
// engine's line-spacing multiplier.
func faceHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// faceAscent is the distance from the line top to the baseline.
func faceAscent(face font.Face) int {
	return face.Metrics().Ascent.Ceil()
}
