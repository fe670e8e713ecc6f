package detect

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"

	"github.com/stripcraft/comic-strip-tools/internal/imaging"
)

// Params holds the tunable detection heuristics.
//
// Every value here is an empirically tuned constant calibrated to one
// image-generation backend at the canonical 1024×1024 resolution. A
// different upstream generator (or resolution) will likely need retuning,
// which is why these are runtime configuration rather than constants.
type Params struct {
	// MinArea and MaxArea bound the accepted component size in pixels.
	MinArea int
	MaxArea int

	// WhiteThreshold is the luminance above which a pixel counts as
	// near-white bubble interior.
	WhiteThreshold uint8

	// MinCircularity is the 4πA/P² floor for bubble shapes.
	MinCircularity float64

	// MinRectangularity is the filled-fraction floor for narration boxes:
	// component area divided by bounding-box area.
	MinRectangularity float64

	// CleanupIterations controls the morphological cleanup pass that
	// breaks anti-aliasing bridges through the line art.
	CleanupIterations int

	// BorderPad is the width of the dark frame added around the image so
	// shapes touching the true edge still close into single contours.
	BorderPad int

	// EdgeMargin and EdgeSpanRatio drive background rejection: a region
	// whose bounding box comes within EdgeMargin of an image border and
	// spans more than EdgeSpanRatio of that border's length is page
	// background, not a bubble.
	EdgeMargin    int
	EdgeSpanRatio float64

	// RowGroupRatio is the fraction of image height within which region
	// centers are grouped into the same reading-order row.
	RowGroupRatio float64
}

// DefaultParams returns the calibration for 1024×1024 panels.
func DefaultParams() Params {
	return Params{
		MinArea:           70000,
		MaxArea:           250000,
		WhiteThreshold:    180,
		MinCircularity:    0.52,
		MinRectangularity: 0.70,
		CleanupIterations: 2,
		BorderPad:         20,
		EdgeMargin:        10,
		EdgeSpanRatio:     0.5,
		RowGroupRatio:     0.15,
	}
}

// Detector finds empty bubble and narration-box regions in panel images.
// A Detector is immutable after construction and safe for concurrent use.
type Detector struct {
	params Params
}

// NewDetector creates a detector with the given heuristics.
func NewDetector(params Params) *Detector {
	return &Detector{params: params}
}

// shapeClass selects which shape test a detection pass applies.
type shapeClass int

const (
	shapeBubble shapeClass = iota
	shapeBox
	shapeAny
)

// DetectBubbles finds empty speech/thought bubbles: enclosed near-white
// regions whose traced boundary is roughly circular. The result is in
// reading order; zero matches and undecodable input both yield an empty
// list.
func (d *Detector) DetectBubbles(data []byte) []Region {
	return d.detect(data, shapeBubble)
}

// DetectBoxes finds empty narration boxes: enclosed near-white regions
// that fill most of their bounding box. Same ordering and failure
// semantics as DetectBubbles.
func (d *Detector) DetectBoxes(data []byte) []Region {
	return d.detect(data, shapeBox)
}

// DetectRegions runs a combined pass accepting regions that pass either
// shape test, in one reading-order list. This is the detector the
// compositor pairs elements against.
func (d *Detector) DetectRegions(data []byte) []Region {
	return d.detect(data, shapeAny)
}

// padFill is the frame color used around the image before thresholding.
// Anything well below WhiteThreshold works; near-black keeps the frame
// from merging with page background.
var padFill = color.NRGBA{R: 16, G: 16, B: 16, A: 255}

func (d *Detector) detect(data []byte, class shapeClass) []Region {
	src, err := imaging.DecodeBytes(data)
	if err != nil {
		return nil
	}
	width := src.Bounds().Dx()
	height := src.Bounds().Dy()
	if width == 0 || height == 0 {
		return nil
	}

	pad := d.params.BorderPad
	gray := imaging.Grayscale(src)
	padded := imaging.PadBorder(gray, pad, padFill)

	// Near-white mask. The cleanup erodes then re-dilates the mask, which
	// on the white foreground is exactly a closing of the inverted line
	// art: thin white leaks through anti-aliased outlines are severed
	// while large interiors keep their extent.
	var mask image.Image = segment.Threshold(padded, d.params.WhiteThreshold)
	for i := 0; i < d.params.CleanupIterations; i++ {
		mask = effect.Erode(mask, 1)
	}
	for i := 0; i < d.params.CleanupIterations; i++ {
		mask = effect.Dilate(mask, 1)
	}

	bm := maskFromImage(mask)
	regions := make([]Region, 0, 4)

	for _, comp := range findComponents(bm) {
		if comp.area < d.params.MinArea || comp.area > d.params.MaxArea {
			continue
		}

		contour, perimeter := traceBoundary(bm, comp.seed)
		if perimeter <= 0 {
			continue
		}

		bboxW := comp.maxX - comp.minX + 1
		bboxH := comp.maxY - comp.minY + 1
		circularity := 4 * math.Pi * float64(comp.area) / (perimeter * perimeter)
		rectangularity := float64(comp.area) / float64(bboxW*bboxH)
		if !acceptShape(class, circularity, rectangularity, d.params) {
			continue
		}

		// Back to the unpadded frame, clamped to image bounds.
		x0 := clamp(comp.minX-pad, 0, width-1)
		y0 := clamp(comp.minY-pad, 0, height-1)
		x1 := clamp(comp.maxX-pad, 0, width-1)
		y1 := clamp(comp.maxY-pad, 0, height-1)
		rw := x1 - x0 + 1
		rh := y1 - y0 + 1
		if rw <= 0 || rh <= 0 {
			continue
		}

		if d.isBackgroundEdge(x0, y0, rw, rh, width, height) {
			continue
		}

		region := NewRegion(x0, y0, rw, rh)
		region.Contour = shiftContour(contour, pad, width, height)
		region.Mask = componentMask(comp, pad, region)
		regions = append(regions, region)
	}

	rowThreshold := int(float64(height) * d.params.RowGroupRatio)
	return sortReadingOrder(regions, rowThreshold)
}

func acceptShape(class shapeClass, circularity, rectangularity float64, p Params) bool {
	switch class {
	case shapeBubble:
		return circularity >= p.MinCircularity
	case shapeBox:
		return rectangularity >= p.MinRectangularity
	default:
		return circularity >= p.MinCircularity || rectangularity >= p.MinRectangularity
	}
}

// isBackgroundEdge reports whether a bounding box hugs an image border and
// spans enough of it to be page background rather than a bubble.
func (d *Detector) isBackgroundEdge(x, y, w, h, imgW, imgH int) bool {
	margin := d.params.EdgeMargin
	if x >= margin && y >= margin && x+w <= imgW-margin && y+h <= imgH-margin {
		return false
	}
	ratio := 0.0
	if x < margin {
		ratio = math.Max(ratio, float64(h)/float64(imgH))
	}
	if y < margin {
		ratio = math.Max(ratio, float64(w)/float64(imgW))
	}
	if x+w > imgW-margin {
		ratio = math.Max(ratio, float64(h)/float64(imgH))
	}
	if y+h > imgH-margin {
		ratio = math.Max(ratio, float64(w)/float64(imgW))
	}
	return ratio > d.params.EdgeSpanRatio
}

// shiftContour maps padded-frame contour points back into image
// coordinates, dropping points clamped away entirely.
func shiftContour(contour []image.Point, pad, width, height int) []image.Point {
	out := make([]image.Point, 0, len(contour))
	for _, p := range contour {
		x := p.X - pad
		y := p.Y - pad
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		out = append(out, image.Pt(x, y))
	}
	return out
}

// componentMask rasterizes the component's filled silhouette into a
// bounding-box-local grayscale mask.
func componentMask(comp component, pad int, region Region) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, region.Width, region.Height))
	for _, p := range comp.points {
		x := p.X - pad - region.X
		y := p.Y - pad - region.Y
		if x < 0 || x >= region.Width || y < 0 || y >= region.Height {
			continue
		}
		mask.SetGray(x, y, color.Gray{Y: 255})
	}
	return mask
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
