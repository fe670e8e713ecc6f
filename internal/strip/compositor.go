// Package strip composes finished panels into the final comic-strip image.
//
// The layout constants below are a visual-design contract shared with the
// surrounding UI styling, not incidental values: for c columns and r rows
// the strip measures
//
//	width  = 2·OuterBorder + c·(TileSize+2·TileBorder) + (c−1)·Gutter
//	height = 2·OuterBorder + r·(TileSize+2·TileBorder) + (r−1)·Gutter
package strip

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/stripcraft/comic-strip-tools/internal/comic"
	"github.com/stripcraft/comic-strip-tools/internal/detect"
	imgutil "github.com/stripcraft/comic-strip-tools/internal/imaging"
	"github.com/stripcraft/comic-strip-tools/internal/render"
)

// Fixed page geometry, in pixels.
const (
	// TileSize is the square side every finished panel is resized to.
	TileSize = 512

	// TileBorder frames each panel tile.
	TileBorder = 3

	// Gutter separates adjacent tiles.
	Gutter = 8

	// OuterBorder frames the whole page.
	OuterBorder = 16
)

// ErrNoPanels is the explicit "nothing to render" result: no panels were
// given, or none carried decodable image bytes. It is the compositor's
// only failure mode.
var ErrNoPanels = errors.New("strip: no panels with usable images")

// Compositor pairs panel elements with detected regions, letters them, and
// lays the finished tiles onto one page. Safe for concurrent use.
type Compositor struct {
	detector *detect.Detector
	engine   *render.Engine
	bubbles  *render.BubbleRenderer
	palette  render.Palette
	cache    *detect.RegionCache // optional
}

// NewCompositor wires a compositor from its parts. cache may be nil to
// detect fresh on every compose.
func NewCompositor(detector *detect.Detector, engine *render.Engine, bubbles *render.BubbleRenderer, palette render.Palette, cache *detect.RegionCache) *Compositor {
	return &Compositor{
		detector: detector,
		engine:   engine,
		bubbles:  bubbles,
		palette:  palette,
		cache:    cache,
	}
}

// NewDefaultCompositor builds a compositor with the default calibration
// throughout and no cache.
func NewDefaultCompositor() *Compositor {
	palette := render.DefaultPalette()
	engine := render.NewEngine(render.DefaultLayoutParams(), palette)
	return NewCompositor(
		detect.NewDetector(detect.DefaultParams()),
		engine,
		render.NewBubbleRenderer(render.DefaultBubbleParams(), engine),
		palette,
		nil,
	)
}

// ComposeStrip renders every panel and arranges them into a single page
// image, at most maxColumns tiles per row. Panels without decodable image
// bytes are dropped; if none remain the explicit ErrNoPanels result is
// returned. Input panels are never mutated.
func (c *Compositor) ComposeStrip(panels []comic.Panel, maxColumns int) (*image.NRGBA, error) {
	if maxColumns < 1 {
		maxColumns = 1
	}

	tiles := make([]*image.NRGBA, 0, len(panels))
	for _, p := range panels {
		if !p.HasImage() {
			continue
		}
		img, err := imgutil.DecodeBytes(p.Image)
		if err != nil {
			continue
		}
		rendered := c.renderPanel(img, p)
		tiles = append(tiles, imaging.Resize(rendered, TileSize, TileSize, imaging.Lanczos))
	}
	if len(tiles) == 0 {
		return nil, ErrNoPanels
	}

	cols := len(tiles)
	if cols > maxColumns {
		cols = maxColumns
	}
	rows := (len(tiles) + cols - 1) / cols

	cell := TileSize + 2*TileBorder
	pageW := 2*OuterBorder + cols*cell + (cols-1)*Gutter
	pageH := 2*OuterBorder + rows*cell + (rows-1)*Gutter
	page := imaging.New(pageW, pageH, c.palette.Paper)

	for i, tile := range tiles {
		col := i % cols
		row := i / cols
		cellX := OuterBorder + col*(cell+Gutter)
		cellY := OuterBorder + row*(cell+Gutter)
		drawFrame(page, image.Rect(cellX, cellY, cellX+cell, cellY+cell), TileBorder, c.palette)
		page = imaging.Paste(page, tile, image.Pt(cellX+TileBorder, cellY+TileBorder))
	}
	return page, nil
}

// EncodeStrip composes the strip and returns it as PNG bytes.
func (c *Compositor) EncodeStrip(panels []comic.Panel, maxColumns int) ([]byte, error) {
	page, err := c.ComposeStrip(panels, maxColumns)
	if err != nil {
		return nil, err
	}
	return imgutil.EncodePNG(page)
}

// Regions returns the detected regions for a panel's image bytes, going
// through the replay cache when one is configured.
func (c *Compositor) Regions(data []byte) []detect.Region {
	if c.cache != nil {
		if regions, ok := c.cache.Get(data); ok {
			return regions
		}
	}
	regions := c.detector.DetectRegions(data)
	if c.cache != nil {
		c.cache.Put(data, regions)
	}
	return regions
}

// renderPanel letters every element of one panel onto its decoded image.
//
// Pairing policy: speech, thought, and narration elements consume detected
// regions strictly in element-list order; elements beyond the region count
// fall back to synthesized bubbles. SFX never consumes a region. The policy
// lives entirely here so it can change without touching detection or
// layout.
func (c *Compositor) renderPanel(img *image.NRGBA, p comic.Panel) *image.NRGBA {
	regions := p.Regions
	if len(regions) == 0 {
		regions = c.Regions(p.Image)
	}

	out := img
	next := 0
	for _, el := range p.Elements {
		text := el.Resolved(p.UserText)
		if text == "" {
			continue
		}
		el.Text = text // local copy; callers' elements stay untouched

		if !el.Type.NeedsRegion() {
			out = c.bubbles.Render(out, el)
			continue
		}
		if next < len(regions) {
			out = c.engine.Render(out, regions[next], el)
			next++
			continue
		}
		out = c.bubbles.Render(out, el)
	}
	return out
}

// drawFrame paints the border ring of one tile cell.
func drawFrame(page *image.NRGBA, cell image.Rectangle, width int, palette render.Palette) {
	clip := cell.Intersect(page.Bounds())
	inner := cell.Inset(width)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			if !image.Pt(x, y).In(inner) {
				page.SetNRGBA(x, y, palette.BubbleStroke)
			}
		}
	}
}
