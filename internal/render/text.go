package render

import (
	"image"
	"strings"

	"github.com/stripcraft/comic-strip-tools/internal/comic"
	"github.com/stripcraft/comic-strip-tools/internal/detect"
	"github.com/stripcraft/comic-strip-tools/internal/imaging"
)

// Engine fits and letters text into regions. An Engine is immutable after
// construction and safe for concurrent use; all per-call state (faces,
// wrapped lines) is created fresh each call.
type Engine struct {
	params  LayoutParams
	palette Palette
}

// NewEngine creates a layout engine.
func NewEngine(params LayoutParams, palette Palette) *Engine {
	return &Engine{params: params, palette: palette}
}

// Render letters the element's text into the region and returns a new
// image; img is never mutated. The call is total: empty text returns an
// unmodified copy, overflowing text is truncated, and the output always
// has the input's dimensions.
func (e *Engine) Render(img image.Image, region detect.Region, el comic.Element) *image.NRGBA {
	dst := imaging.Clone(img)
	text := strings.TrimSpace(el.Text)
	if text == "" {
		return dst
	}

	switch el.Type {
	case comic.SFX:
		// SFX is never wrapped: one short exclamation, rendered large
		// over the artwork.
		e.drawSFX(dst, region.CenterX, region.CenterY, text, e.params.SFXOutlineRadius)
		return dst
	case comic.Speech, comic.Thought, comic.Narration:
		e.renderBlock(dst, region, el, text)
		return dst
	}
	return dst
}

func (e *Engine) renderBlock(dst *image.NRGBA, region detect.Region, el comic.Element, text string) {
	name := ""
	if el.Type == comic.Speech || el.Type == comic.Thought {
		name = strings.TrimSpace(el.CharacterName)
	}

	pad := int(e.params.PaddingRatio * float64(region.Width))
	interiorW := region.Width - 2*pad
	interiorH := region.Height - 2*pad
	if interiorW <= 0 || interiorH <= 0 {
		// Degenerate region: letter into the full box rather than give up.
		pad = 0
		interiorW = region.Width
		interiorH = region.Height
	}

	fit := e.fit(text, name, interiorW, interiorH, startFontSize(text, el.Type, e.params))
	_, blockH := blockSize(fit.lines, fit.face, e.params.LineSpacing)

	total := fit.nameHeight + blockH
	y := region.Y + pad + (interiorH-total)/2

	if name != "" {
		header := strings.ToUpper(name)
		nameInk := e.palette.SpeechName
		if el.Type == comic.Thought {
			nameInk = e.palette.ThoughtName
		}
		x := region.X + (region.Width-textWidth(fit.nameFace, header))/2
		drawTextLine(dst, fit.nameFace, x, y, header, nameInk)
		y += fit.nameHeight
	}

	lineH := int(float64(faceHeight(fit.face)) * e.params.LineSpacing)
	for _, line := range fit.lines {
		x := region.X + (region.Width-textWidth(fit.face, line))/2
		drawTextLine(dst, fit.face, x, y, line, e.palette.Ink)
		y += lineH
	}
}

// drawSFX letters one uppercase exclamation centered on (cx, cy) in the
// accent style.
func (e *Engine) drawSFX(dst *image.NRGBA, cx, cy int, text string, outlineRadius int) {
	face := newFace(e.params.SFXFontSize, true)
	line := strings.ToUpper(text)
	x := cx - textWidth(face, line)/2
	y := cy - faceHeight(face)/2
	drawOutlinedTextLine(dst, face, x, y, outlineRadius, line, e.palette.SFXInk, e.palette.SFXOutline)
}
