package detect

import (
	"image"
	"math"
)

// bitmap is a binary image: true marks a foreground (near-white) pixel.
type bitmap struct {
	w, h int
	pix  []bool
}

func newBitmap(w, h int) *bitmap {
	return &bitmap{w: w, h: h, pix: make([]bool, w*h)}
}

func (b *bitmap) at(x, y int) bool {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return false
	}
	return b.pix[y*b.w+x]
}

func (b *bitmap) set(x, y int) {
	b.pix[y*b.w+x] = true
}

// maskFromImage thresholds an already-binarized image into a bitmap.
func maskFromImage(img image.Image) *bitmap {
	bounds := img.Bounds()
	bm := newBitmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < bm.h; y++ {
		for x := 0; x < bm.w; x++ {
			r, g, bl, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := (299*(r>>8) + 587*(g>>8) + 114*(bl>>8)) / 1000
			if lum > 127 {
				bm.set(x, y)
			}
		}
	}
	return bm
}

// component is one connected group of foreground pixels.
type component struct {
	area                   int
	minX, minY, maxX, maxY int
	seed                   image.Point // topmost-leftmost pixel
	points                 []image.Point
}

// findComponents collects 8-connected foreground components in scan order,
// which keeps detection deterministic for identical input bytes.
func findComponents(bm *bitmap) []component {
	visited := make([]bool, bm.w*bm.h)
	var comps []component

	for y := 0; y < bm.h; y++ {
		for x := 0; x < bm.w; x++ {
			if !bm.pix[y*bm.w+x] || visited[y*bm.w+x] {
				continue
			}
			comp := component{
				minX: x, minY: y, maxX: x, maxY: y,
				seed: image.Pt(x, y),
			}
			// Stack-based fill; recursion would overflow on
			// page-sized components.
			stack := []image.Point{{X: x, Y: y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if p.X < 0 || p.X >= bm.w || p.Y < 0 || p.Y >= bm.h {
					continue
				}
				idx := p.Y*bm.w + p.X
				if visited[idx] || !bm.pix[idx] {
					continue
				}
				visited[idx] = true
				comp.area++
				comp.points = append(comp.points, p)
				if p.X < comp.minX {
					comp.minX = p.X
				}
				if p.X > comp.maxX {
					comp.maxX = p.X
				}
				if p.Y < comp.minY {
					comp.minY = p.Y
				}
				if p.Y > comp.maxY {
					comp.maxY = p.Y
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						stack = append(stack, image.Pt(p.X+dx, p.Y+dy))
					}
				}
			}
			comps = append(comps, comp)
		}
	}
	return comps
}

// Clockwise Moore neighborhood starting west.
var mooreDirs = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// traceBoundary walks the outer boundary of the component containing seed
// using Moore-neighbor tracing and returns the ordered contour together
// with its length. Orthogonal steps contribute 1 to the length, diagonal
// steps √2, so the length approximates the true geometric perimeter; a
// crude boundary-pixel count would undercount diagonals and skew the
// circularity score.
//
// The seed must be the component's topmost-leftmost pixel so its west
// neighbor is guaranteed background.
func traceBoundary(bm *bitmap, seed image.Point) ([]image.Point, float64) {
	if !bm.at(seed.X, seed.Y) {
		return nil, 0
	}

	// Isolated pixel: the contour is the pixel itself.
	isolated := true
	for _, d := range mooreDirs {
		if bm.at(seed.X+d.X, seed.Y+d.Y) {
			isolated = false
			break
		}
	}
	if isolated {
		return []image.Point{seed}, 4
	}

	contour := []image.Point{seed}
	perimeter := 0.0
	cur := seed
	backtrack := 0 // direction index of the known-background west neighbor
	// Termination per Jacob's criterion, with a hard cap as a safety net
	// against pathological masks.
	maxSteps := 4 * (bm.w + bm.h + len(bm.pix)/(bm.w+bm.h))

	for step := 0; step < maxSteps; step++ {
		found := -1
		for i := 1; i <= 8; i++ {
			d := (backtrack + i) % 8
			n := image.Pt(cur.X+mooreDirs[d].X, cur.Y+mooreDirs[d].Y)
			if bm.at(n.X, n.Y) {
				found = d
				break
			}
		}
		if found < 0 {
			break
		}
		next := image.Pt(cur.X+mooreDirs[found].X, cur.Y+mooreDirs[found].Y)
		perimeter += stepLength(mooreDirs[found])

		// Closed the loop: back at the seed about to repeat the first move.
		if next == seed && len(contour) > 1 {
			break
		}
		contour = append(contour, next)
		// Resume scanning from the neighbor before the one we came from.
		backtrack = (found + 5) % 8
		cur = next
	}
	return contour, perimeter
}

func stepLength(d image.Point) float64 {
	if d.X != 0 && d.Y != 0 {
		return math.Sqrt2
	}
	return 1
}
