package render

import (
	"image"
	"strings"

	"github.com/stripcraft/comic-strip-tools/internal/comic"
	"github.com/stripcraft/comic-strip-tools/internal/detect"
	"github.com/stripcraft/comic-strip-tools/internal/imaging"
)

// BubbleParams sizes and styles synthesized bubbles.
type BubbleParams struct {
	// WidthDiv and HeightDiv size the bubble relative to the panel:
	// width/WidthDiv × height/HeightDiv.
	WidthDiv  int
	HeightDiv int

	// Margin keeps the bubble off the panel edges; TailAllowance reserves
	// extra room below bottom-anchored bubbles for the tail.
	Margin        int
	TailAllowance int

	// SpeechRadius and ThoughtRadius round the bubble corners.
	SpeechRadius  int
	ThoughtRadius int

	// StrokeWidth is the shape outline thickness.
	StrokeWidth int

	// SFXOutlineRadius is the (heavier) outline for free-floating SFX.
	SFXOutlineRadius int
}

// DefaultBubbleParams returns the calibration for 1024×1024 panels.
func DefaultBubbleParams() BubbleParams {
	return BubbleParams{
		WidthDiv:         3,
		HeightDiv:        5,
		Margin:           15,
		TailAllowance:    20,
		SpeechRadius:     15,
		ThoughtRadius:    20,
		StrokeWidth:      3,
		SFXOutlineRadius: 3,
	}
}

// BubbleRenderer synthesizes a bubble, box, or SFX burst for elements
// that have no detected region, then letters the text through the Engine.
// Safe for concurrent use.
type BubbleRenderer struct {
	params  BubbleParams
	palette Palette
	engine  *Engine
}

// NewBubbleRenderer creates a programmatic bubble renderer sharing the
// engine's palette.
func NewBubbleRenderer(params BubbleParams, engine *Engine) *BubbleRenderer {
	return &BubbleRenderer{params: params, palette: engine.palette, engine: engine}
}

// Render draws the element's synthesized shape onto a copy of img and
// letters the text into it. Placement follows the element's compass hint
// with a fixed margin. Like Engine.Render the call is total and img is
// never mutated.
func (b *BubbleRenderer) Render(img image.Image, el comic.Element) *image.NRGBA {
	dst := imaging.Clone(img)
	text := strings.TrimSpace(el.Text)
	if text == "" {
		return dst
	}

	bounds := dst.Bounds()
	region := b.placeRegion(el.Position, bounds.Dx(), bounds.Dy())

	switch el.Type {
	case comic.Speech:
		b.drawSpeechShape(dst, region)
	case comic.Thought:
		b.drawThoughtShape(dst, region)
	case comic.Narration:
		b.drawNarrationShape(dst, region)
	case comic.SFX:
		// No shape at all: large outlined lettering straight onto the art.
		b.engine.drawSFX(dst, region.CenterX, region.CenterY, text, b.params.SFXOutlineRadius)
		return dst
	}

	return b.engine.Render(dst, region, el)
}

// placeRegion computes the synthetic rectangle for a compass hint.
func (b *BubbleRenderer) placeRegion(pos comic.Position, imgW, imgH int) detect.Region {
	bw := imgW / b.params.WidthDiv
	bh := imgH / b.params.HeightDiv
	margin := b.params.Margin

	var x int
	switch pos.Horizontal() {
	case -1:
		x = margin
	case 1:
		x = imgW - bw - margin
	default:
		x = (imgW - bw) / 2
	}

	var y int
	switch pos.Vertical() {
	case -1:
		y = margin
	case 1:
		y = imgH - bh - margin - b.params.TailAllowance
	default:
		y = (imgH - bh) / 2
	}

	return detect.NewRegion(x, y, bw, bh)
}

func (b *BubbleRenderer) drawSpeechShape(dst *image.NRGBA, r detect.Region) {
	fillRoundedRect(dst, r.Bounds(), b.params.SpeechRadius, b.params.StrokeWidth,
		b.palette.BubbleFill, b.palette.BubbleStroke)

	// Tail: triangle hanging from the lower-left, open edge against the
	// bubble so no seam shows.
	tailX := r.X + r.Width/6
	tailY := r.Y + r.Height - b.params.StrokeWidth
	fillTriangle(dst,
		image.Pt(tailX, tailY),
		image.Pt(tailX+18, tailY),
		image.Pt(tailX-6, tailY+22),
		b.params.StrokeWidth-1,
		b.palette.BubbleFill, b.palette.BubbleStroke)
}

func (b *BubbleRenderer) drawThoughtShape(dst *image.NRGBA, r detect.Region) {
	fillRoundedRect(dst, r.Bounds(), b.params.ThoughtRadius, b.params.StrokeWidth,
		b.palette.BubbleFill, b.palette.BubbleStroke)

	// Two shrinking thought dots trailing from the lower-left.
	dotX := r.X + r.Width/6
	dotY := r.Y + r.Height + 4
	fillEllipse(dst, image.Rect(dotX, dotY, dotX+14, dotY+14), 2,
		b.palette.BubbleFill, b.palette.BubbleStroke)
	fillEllipse(dst, image.Rect(dotX-10, dotY+14, dotX, dotY+24), 2,
		b.palette.BubbleFill, b.palette.BubbleStroke)
}

func (b *BubbleRenderer) drawNarrationShape(dst *image.NRGBA, r detect.Region) {
	fillRoundedRect(dst, r.Bounds(), 0, b.params.StrokeWidth,
		b.palette.NarrationFill, b.palette.BubbleStroke)
}
