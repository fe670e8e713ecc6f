package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Pixel-level shape primitives for synthesized bubbles. The shapes are
// simple enough (axis-aligned rounded rectangles, ellipses, one tail
// triangle) that scanline tests beat pulling in a vector rasterizer.

// drawTextLine draws a single line of text with its top-left at (x, y).
func drawTextLine(dst *image.NRGBA, face font.Face, x, y int, s string, ink color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: face,
		Dot:  fixed.P(x, y+faceAscent(face)),
	}
	d.DrawString(s)
}

// drawOutlinedTextLine draws s with an outline: the text is stamped at
// every offset within the given radius before the fill pass, producing a
// thick halo that keeps lettering legible over artwork.
func drawOutlinedTextLine(dst *image.NRGBA, face font.Face, x, y, radius int, s string, ink, halo color.NRGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawTextLine(dst, face, x+dx, y+dy, s, halo)
		}
	}
	drawTextLine(dst, face, x, y, s, ink)
}

// insideRoundedRect reports whether (x, y) lies inside the rounded
// rectangle r with the given corner radius.
func insideRoundedRect(x, y int, r image.Rectangle, radius int) bool {
	if !image.Pt(x, y).In(r) {
		return false
	}
	if radius <= 0 {
		return true
	}
	// Corner zones: inside only within radius of the corner circle center.
	cx, cy := 0, 0
	switch {
	case x < r.Min.X+radius && y < r.Min.Y+radius:
		cx, cy = r.Min.X+radius, r.Min.Y+radius
	case x >= r.Max.X-radius && y < r.Min.Y+radius:
		cx, cy = r.Max.X-radius-1, r.Min.Y+radius
	case x < r.Min.X+radius && y >= r.Max.Y-radius:
		cx, cy = r.Min.X+radius, r.Max.Y-radius-1
	case x >= r.Max.X-radius && y >= r.Max.Y-radius:
		cx, cy = r.Max.X-radius-1, r.Max.Y-radius-1
	default:
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}

// fillRoundedRect paints a rounded rectangle with a stroked border. A
// radius of zero gives a plain rectangle.
func fillRoundedRect(dst *image.NRGBA, r image.Rectangle, radius, strokeWidth int, fill, stroke color.NRGBA) {
	inner := r.Inset(strokeWidth)
	innerRadius := radius - strokeWidth
	clip := r.Intersect(dst.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			if !insideRoundedRect(x, y, r, radius) {
				continue
			}
			if insideRoundedRect(x, y, inner, innerRadius) {
				dst.SetNRGBA(x, y, fill)
			} else {
				dst.SetNRGBA(x, y, stroke)
			}
		}
	}
}

// fillEllipse paints a stroked ellipse inscribed in r.
func fillEllipse(dst *image.NRGBA, r image.Rectangle, strokeWidth int, fill, stroke color.NRGBA) {
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	cx := float64(r.Min.X) + rx
	cy := float64(r.Min.Y) + ry
	irx := rx - float64(strokeWidth)
	iry := ry - float64(strokeWidth)
	clip := r.Intersect(dst.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			nx := (float64(x) + 0.5 - cx) / rx
			ny := (float64(y) + 0.5 - cy) / ry
			if nx*nx+ny*ny > 1 {
				continue
			}
			inside := false
			if irx > 0 && iry > 0 {
				ix := (float64(x) + 0.5 - cx) / irx
				iy := (float64(y) + 0.5 - cy) / iry
				inside = ix*ix+iy*iy <= 1
			}
			if inside {
				dst.SetNRGBA(x, y, fill)
			} else {
				dst.SetNRGBA(x, y, stroke)
			}
		}
	}
}

// fillTriangle paints the triangle (a, b, c) and strokes the edges ac and
// bc. The ab edge is left open so a tail can join its bubble without a
// visible seam.
func fillTriangle(dst *image.NRGBA, a, b, c image.Point, strokeWidth int, fill, stroke color.NRGBA) {
	minX := min3(a.X, b.X, c.X)
	maxX := max3(a.X, b.X, c.X)
	minY := min3(a.Y, b.Y, c.Y)
	maxY := max3(a.Y, b.Y, c.Y)
	clip := image.Rect(minX, minY, maxX+1, maxY+1).Intersect(dst.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			if pointInTriangle(image.Pt(x, y), a, b, c) {
				dst.SetNRGBA(x, y, fill)
			}
		}
	}
	drawThickLine(dst, a, c, strokeWidth, stroke)
	drawThickLine(dst, b, c, strokeWidth, stroke)
}

func pointInTriangle(p, a, b, c image.Point) bool {
	d1 := edgeSign(p, a, b)
	d2 := edgeSign(p, b, c)
	d3 := edgeSign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(p, a, b image.Point) int {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

// drawThickLine draws a Bresenham line stamping a square of the given
// width at every step.
func drawThickLine(dst *image.NRGBA, a, b image.Point, width int, ink color.NRGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	half := width / 2
	for {
		for oy := -half; oy <= half; oy++ {
			for ox := -half; ox <= half; ox++ {
				if image.Pt(x+ox, y+oy).In(dst.Bounds()) {
					dst.SetNRGBA(x+ox, y+oy, ink)
				}
			}
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
