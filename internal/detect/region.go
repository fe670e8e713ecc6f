package detect

import (
	"image"
	"sort"
)

// Region is a detected or synthesized rectangular area where text will be
// rendered. The bounding box is always fully inside the source image.
//
// The json-tagged fields form the record callers may persist and replay in
// place of re-running detection; Mask and Contour are in-memory extras for
// downstream shape-aware work.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// CenterX and CenterY locate the middle of the bounding box.
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`

	// Area is the bounding-box area in square pixels.
	Area int `json:"area"`

	// Mask, when present, is a filled silhouette of the detected shape in
	// bounding-box-local coordinates (255 inside the shape, 0 outside).
	Mask *image.Gray `json:"-"`

	// Contour, when present, holds the traced boundary in image
	// coordinates.
	Contour []image.Point `json:"-"`
}

// NewRegion builds a Region from a bounding box, deriving center and area.
func NewRegion(x, y, width, height int) Region {
	return Region{
		X:       x,
		Y:       y,
		Width:   width,
		Height:  height,
		CenterX: x + width/2,
		CenterY: y + height/2,
		Area:    width * height,
	}
}

// Bounds returns the region's bounding box as an image.Rectangle.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// sortReadingOrder orders regions top-to-bottom then left-to-right.
//
// Regions are grouped into rows by vertical center: the first region of a
// row anchors the row's reference y, and any region whose center lies
// within rowThreshold of that reference joins the row. Rows are emitted
// top-to-bottom with each row sorted left-to-right.
func sortReadingOrder(regions []Region, rowThreshold int) []Region {
	if len(regions) == 0 {
		return regions
	}

	byCenterY := make([]Region, len(regions))
	copy(byCenterY, regions)
	sort.SliceStable(byCenterY, func(i, j int) bool {
		return byCenterY[i].CenterY < byCenterY[j].CenterY
	})

	var rows [][]Region
	row := []Region{byCenterY[0]}
	rowY := byCenterY[0].CenterY
	for _, r := range byCenterY[1:] {
		if abs(r.CenterY-rowY) < rowThreshold {
			row = append(row, r)
			continue
		}
		rows = append(rows, row)
		row = []Region{r}
		rowY = r.CenterY
	}
	rows = append(rows, row)

	ordered := make([]Region, 0, len(regions))
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].CenterX < row[j].CenterX
		})
		ordered = append(ordered, row...)
	}
	return ordered
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
