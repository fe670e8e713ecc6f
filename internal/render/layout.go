package render

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"

	"github.com/stripcraft/comic-strip-tools/internal/comic"
)

// LayoutParams holds the tunable lettering heuristics. Like the detection
// thresholds, the size buckets are calibrated to the canonical 1024×1024
// panel resolution.
type LayoutParams struct {
	// PaddingRatio shrinks the region on every side by this fraction of
	// the region width before any text is placed.
	PaddingRatio float64

	// LineSpacing multiplies the face's nominal line height.
	LineSpacing float64

	// MinFontSize is the floor of the font-size search; below it the
	// engine truncates instead of shrinking further.
	MinFontSize int

	// NarrationBoost is added to the starting size for narration boxes,
	// which run wider than bubbles.
	NarrationBoost int

	// SFXFontSize is the fixed size for sound-effect lettering.
	SFXFontSize int

	// SFXOutlineRadius is the outline thickness for in-region SFX.
	SFXOutlineRadius int
}

// DefaultLayoutParams returns the calibration for 1024×1024 panels.
func DefaultLayoutParams() LayoutParams {
	return LayoutParams{
		PaddingRatio:     0.15,
		LineSpacing:      1.2,
		MinFontSize:      12,
		NarrationBoost:   8,
		SFXFontSize:      56,
		SFXOutlineRadius: 2,
	}
}

// startFontSize buckets the starting size by text length: short
// exclamations letter large, long sentences start smaller so the descent
// loop converges quickly.
func startFontSize(text string, t comic.ElementType, p LayoutParams) int {
	size := 32
	switch n := utf8.RuneCountInString(text); {
	case n < 15:
		size = 46
	case n < 30:
		size = 40
	case n < 50:
		size = 36
	}
	if t == comic.Narration {
		size += p.NarrationBoost
	}
	return size
}

// wrapText greedily fills lines: a word joins the current line while the
// joined line still measures within maxWidth, otherwise it starts a new
// line. A single word wider than maxWidth gets a line of its own.
func wrapText(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	var lines []string
	var current []string

	for _, word := range words {
		candidate := strings.Join(append(current, word), " ")
		if textWidth(face, candidate) <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// blockSize measures the wrapped block: widest line and total height with
// line spacing applied.
func blockSize(lines []string, face font.Face, spacing float64) (int, int) {
	width := 0
	for _, line := range lines {
		if w := textWidth(face, line); w > width {
			width = w
		}
	}
	lineH := int(float64(faceHeight(face)) * spacing)
	return width, lineH * len(lines)
}

// fitResult is the outcome of the font-size search.
type fitResult struct {
	face       font.Face
	nameFace   font.Face
	lines      []string
	nameHeight int
}

// fit finds the largest font size from the start bucket down to the floor
// whose wrapped rendering (plus the optional name header) fits the
// interior, truncating at the floor as the last resort. It always returns
// a renderable result.
func (e *Engine) fit(text, name string, interiorW, interiorH, start int) fitResult {
	p := e.params
	for size := start; size >= p.MinFontSize; size-- {
		r := e.measureAt(text, name, size, interiorW)
		w, h := blockSize(r.lines, r.face, p.LineSpacing)
		if w <= interiorW && h <= interiorH-r.nameHeight {
			return r
		}
	}

	r := e.measureAt(text, name, p.MinFontSize, interiorW)
	r.lines = e.truncateToFit(text, r.face, interiorW, interiorH-r.nameHeight)
	return r
}

// measureAt wraps text at one candidate size and measures the name header.
func (e *Engine) measureAt(text, name string, size, interiorW int) fitResult {
	r := fitResult{
		face:     newFace(size, false),
		nameFace: newFace(maxInt(size-4, 10), true),
	}
	if name != "" {
		r.nameHeight = faceHeight(r.nameFace) * 3 / 2
	}
	r.lines = wrapText(text, r.face, interiorW)
	return r
}

// truncateToFit drops trailing words, appending an ellipsis, until the
// wrapped block fits the given height. The survivors are always a strict
// word prefix of the input. If even the first word overflows it is
// rendered anyway — an overfull bubble beats an empty one.
func (e *Engine) truncateToFit(text string, face font.Face, maxWidth, maxHeight int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	for n := len(words); n >= 1; n-- {
		candidate := strings.Join(words[:n], " ")
		if n < len(words) {
			candidate += "..."
		}
		lines := wrapText(candidate, face, maxWidth)
		if _, h := blockSize(lines, face, e.params.LineSpacing); h <= maxHeight {
			return lines
		}
	}

	if len(words) > 1 {
		return []string{words[0] + "..."}
	}
	return []string{words[0]}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
