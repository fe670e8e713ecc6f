package detect

import (
	"image"
	"math"
	"testing"
)

// bitmapWithRect builds a bitmap with one filled rectangle of foreground.
func bitmapWithRect(w, h int, r image.Rectangle) *bitmap {
	bm := newBitmap(w, h)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			bm.set(x, y)
		}
	}
	return bm
}

func TestFindComponentsSingleRect(t *testing.T) {
	bm := bitmapWithRect(100, 100, image.Rect(20, 30, 60, 70))
	comps := findComponents(bm)
	if len(comps) != 1 {
		t.Fatalf("got %d components, want 1", len(comps))
	}
	c := comps[0]
	if c.area != 40*40 {
		t.Errorf("area = %d, want %d", c.area, 40*40)
	}
	if c.minX != 20 || c.minY != 30 || c.maxX != 59 || c.maxY != 69 {
		t.Errorf("bbox (%d,%d)-(%d,%d) wrong", c.minX, c.minY, c.maxX, c.maxY)
	}
	if c.seed != image.Pt(20, 30) {
		t.Errorf("seed = %v, want topmost-leftmost (20,30)", c.seed)
	}
}

func TestFindComponentsSeparate(t *testing.T) {
	bm := bitmapWithRect(100, 100, image.Rect(5, 5, 15, 15))
	for y := 50; y < 60; y++ {
		for x := 50; x < 60; x++ {
			bm.set(x, y)
		}
	}
	if comps := findComponents(bm); len(comps) != 2 {
		t.Errorf("got %d components, want 2", len(comps))
	}
}

func TestTraceBoundaryRect(t *testing.T) {
	bm := bitmapWithRect(100, 100, image.Rect(20, 20, 60, 50)) // 40×30
	contour, perimeter := traceBoundary(bm, image.Pt(20, 20))

	if len(contour) == 0 {
		t.Fatal("empty contour")
	}
	// Digital perimeter of a 40×30 rectangle: 2*(39+29) ≈ 136.
	want := 136.0
	if math.Abs(perimeter-want) > 8 {
		t.Errorf("perimeter = %.1f, want ≈ %.0f", perimeter, want)
	}
	for _, p := range contour {
		if p.X < 20 || p.X > 59 || p.Y < 20 || p.Y > 49 {
			t.Errorf("contour point %v outside the shape", p)
		}
	}
}

func TestTraceBoundaryCircleCircularity(t *testing.T) {
	bm := newBitmap(400, 400)
	const r = 120
	area := 0
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			dx, dy := x-200, y-200
			if dx*dx+dy*dy <= r*r {
				bm.set(x, y)
				area++
			}
		}
	}
	_, perimeter := traceBoundary(bm, image.Pt(200, 200-r))

	circ := 4 * math.Pi * float64(area) / (perimeter * perimeter)
	if circ < 0.78 || circ > 1.1 {
		t.Errorf("circularity of a rasterized circle = %.3f, want near 1", circ)
	}
}

func TestTraceBoundaryIsolatedPixel(t *testing.T) {
	bm := newBitmap(10, 10)
	bm.set(5, 5)
	contour, perimeter := traceBoundary(bm, image.Pt(5, 5))
	if len(contour) != 1 || perimeter <= 0 {
		t.Errorf("isolated pixel: contour %v, perimeter %.1f", contour, perimeter)
	}
}

func TestTraceBoundaryBackgroundSeed(t *testing.T) {
	bm := newBitmap(10, 10)
	contour, perimeter := traceBoundary(bm, image.Pt(3, 3))
	if contour != nil || perimeter != 0 {
		t.Error("background seed should trace nothing")
	}
}
