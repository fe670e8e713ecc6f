package strip

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stripcraft/comic-strip-tools/internal/comic"
	"github.com/stripcraft/comic-strip-tools/internal/detect"
	"github.com/stripcraft/comic-strip-tools/internal/render"
)

// encodePanel renders a synthetic 1024×1024 panel to PNG bytes: dark
// artwork, optionally with one near-white bubble blob.
func encodePanel(t *testing.T, withBubble bool) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1024, 1024))
	dark := color.NRGBA{R: 40, G: 40, B: 45, A: 255}
	for y := 0; y < 1024; y++ {
		for x := 0; x < 1024; x++ {
			img.SetNRGBA(x, y, dark)
		}
	}
	if withBubble {
		white := color.NRGBA{R: 250, G: 250, B: 250, A: 255}
		const cx, cy, r = 512, 300, 180
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				dx, dy := x-cx, y-cy
				if dx*dx+dy*dy <= r*r {
					img.SetNRGBA(x, y, white)
				}
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode panel: %v", err)
	}
	return buf.Bytes()
}

func TestComposeStripNoPanels(t *testing.T) {
	c := NewDefaultCompositor()

	for name, panels := range map[string][]comic.Panel{
		"empty slice":   {},
		"nil slice":     nil,
		"no image data": {{Number: 1}, {Number: 2}},
		"garbage bytes": {{Number: 1, Image: []byte("not an image")}},
	} {
		_, err := c.ComposeStrip(panels, 3)
		if !errors.Is(err, ErrNoPanels) {
			t.Errorf("%s: err = %v, want ErrNoPanels", name, err)
		}
	}
}

func TestComposeStripTwoPanelDimensions(t *testing.T) {
	c := NewDefaultCompositor()
	panels := []comic.Panel{
		{Number: 1, Image: encodePanel(t, false)},
		{Number: 2, Image: encodePanel(t, false)},
	}

	page, err := c.ComposeStrip(panels, 3)
	if err != nil {
		t.Fatalf("ComposeStrip: %v", err)
	}
	// 2 columns, 1 row: 2·16 + 2·518 + 8 = 1076 wide, 2·16 + 518 = 550 tall.
	if got := page.Bounds(); got.Dx() != 1076 || got.Dy() != 550 {
		t.Errorf("page is %dx%d, want 1076x550", got.Dx(), got.Dy())
	}
}

func TestComposeStripWrapsRows(t *testing.T) {
	c := NewDefaultCompositor()
	data := encodePanel(t, false)
	panels := []comic.Panel{
		{Number: 1, Image: data},
		{Number: 2, Image: data},
		{Number: 3, Image: data},
	}

	page, err := c.ComposeStrip(panels, 2)
	if err != nil {
		t.Fatalf("ComposeStrip: %v", err)
	}
	// 2 columns, 2 rows.
	wantW := 2*OuterBorder + 2*(TileSize+2*TileBorder) + Gutter
	wantH := 2*OuterBorder + 2*(TileSize+2*TileBorder) + Gutter
	if got := page.Bounds(); got.Dx() != wantW || got.Dy() != wantH {
		t.Errorf("page is %dx%d, want %dx%d", got.Dx(), got.Dy(), wantW, wantH)
	}
}

func TestComposeStripDropsUndecodablePanels(t *testing.T) {
	c := NewDefaultCompositor()
	panels := []comic.Panel{
		{Number: 1, Image: []byte("junk")},
		{Number: 2, Image: encodePanel(t, false)},
	}

	page, err := c.ComposeStrip(panels, 3)
	if err != nil {
		t.Fatalf("ComposeStrip: %v", err)
	}
	if got := page.Bounds(); got.Dx() != 2*OuterBorder+TileSize+2*TileBorder {
		t.Errorf("width %d, want single-tile page", got.Dx())
	}
}

func TestComposeStripPaperAndFrame(t *testing.T) {
	c := NewDefaultCompositor()
	page, err := c.ComposeStrip([]comic.Panel{{Number: 1, Image: encodePanel(t, false)}}, 1)
	if err != nil {
		t.Fatalf("ComposeStrip: %v", err)
	}

	paper := render.DefaultPalette().Paper
	if page.NRGBAAt(2, 2) != paper {
		t.Errorf("corner = %v, want paper %v", page.NRGBAAt(2, 2), paper)
	}
	frame := render.DefaultPalette().BubbleStroke
	if page.NRGBAAt(OuterBorder+1, OuterBorder+1) != frame {
		t.Errorf("tile frame missing at the cell edge")
	}
}

func TestComposeStripLettersIntoDetectedBubble(t *testing.T) {
	c := NewDefaultCompositor()
	data := encodePanel(t, true)
	panels := []comic.Panel{{
		Number: 1,
		Image:  data,
		Elements: []comic.Element{{
			Type: comic.Speech,
			Text: "Hello!",
		}},
	}}

	page, err := c.ComposeStrip(panels, 1)
	if err != nil {
		t.Fatalf("ComposeStrip: %v", err)
	}

	// The bubble's center (512,300) lands at half scale inside the tile.
	ink := render.DefaultPalette().Ink
	cx := OuterBorder + TileBorder + 512/2
	cy := OuterBorder + TileBorder + 300/2
	probe := image.Rect(cx-120, cy-90, cx+120, cy+90)
	found := 0
	for y := probe.Min.Y; y < probe.Max.Y; y++ {
		for x := probe.Min.X; x < probe.Max.X; x++ {
			px := page.NRGBAAt(x, y)
			if int(px.R)+int(px.G)+int(px.B) < 3*int(ink.R)+60 {
				found++
			}
		}
	}
	if found == 0 {
		t.Error("no lettering near the detected bubble")
	}
}

func TestComposeStripFallsBackToSynthesizedBubble(t *testing.T) {
	c := NewDefaultCompositor()
	// All-dark panel: detection finds nothing, so the element must get a
	// synthesized bubble instead.
	panels := []comic.Panel{{
		Number: 1,
		Image:  encodePanel(t, false),
		Elements: []comic.Element{{
			Type:     comic.Speech,
			Position: comic.TopLeft,
			Text:     "Psst!",
		}},
	}}

	page, err := c.ComposeStrip(panels, 1)
	if err != nil {
		t.Fatalf("ComposeStrip: %v", err)
	}

	// A white-filled bubble on dark artwork shows up as bright pixels in
	// the tile's top-left quarter.
	bright := 0
	for y := OuterBorder + TileBorder; y < OuterBorder+TileBorder+TileSize/2; y++ {
		for x := OuterBorder + TileBorder; x < OuterBorder+TileBorder+TileSize/2; x++ {
			px := page.NRGBAAt(x, y)
			if px.R > 200 && px.G > 200 && px.B > 200 {
				bright++
			}
		}
	}
	if bright < 500 {
		t.Errorf("synthesized bubble missing: %d bright pixels", bright)
	}
}

func TestComposeStripResolvesUserInput(t *testing.T) {
	c := NewDefaultCompositor()
	data := encodePanel(t, true)
	el := comic.Element{
		Type:        comic.Speech,
		IsUserInput: true,
		Placeholder: "say something",
	}

	// Unresolved user input renders nothing.
	blank, err := c.ComposeStrip([]comic.Panel{{Number: 1, Image: data, Elements: []comic.Element{el}}}, 1)
	if err != nil {
		t.Fatalf("ComposeStrip: %v", err)
	}
	filled, err := c.ComposeStrip([]comic.Panel{{
		Number: 1, Image: data, Elements: []comic.Element{el}, UserText: "Hi!",
	}}, 1)
	if err != nil {
		t.Fatalf("ComposeStrip: %v", err)
	}

	if bytes.Equal(blank.Pix, filled.Pix) {
		t.Error("supplying user text should change the rendered panel")
	}
}

func TestRegionsUsesCache(t *testing.T) {
	palette := render.DefaultPalette()
	engine := render.NewEngine(render.DefaultLayoutParams(), palette)
	c := NewCompositor(
		detect.NewDetector(detect.DefaultParams()),
		engine,
		render.NewBubbleRenderer(render.DefaultBubbleParams(), engine),
		palette,
		detect.NewRegionCache(time.Minute),
	)

	data := encodePanel(t, true)
	first := c.Regions(data)
	if len(first) != 1 {
		t.Fatalf("detected %d regions, want 1", len(first))
	}
	second := c.Regions(data)
	if len(second) != 1 || second[0].X != first[0].X || second[0].Y != first[0].Y {
		t.Errorf("cache replay differs: %+v vs %+v", second, first)
	}
}
