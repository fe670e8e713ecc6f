package detect

import (
	"encoding/json"
	"image"
	"testing"
)

func TestNewRegionDerivedFields(t *testing.T) {
	r := NewRegion(100, 200, 300, 150)
	if r.CenterX != 250 || r.CenterY != 275 {
		t.Errorf("center = (%d,%d), want (250,275)", r.CenterX, r.CenterY)
	}
	if r.Area != 45000 {
		t.Errorf("area = %d, want 45000", r.Area)
	}
	if got, want := r.Bounds(), image.Rect(100, 200, 400, 350); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestRegionJSONOmitsPixelData(t *testing.T) {
	r := NewRegion(10, 20, 30, 40)
	r.Mask = image.NewGray(image.Rect(0, 0, 30, 40))
	r.Contour = []image.Point{{X: 10, Y: 20}}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"Mask", "mask", "Contour", "contour"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("serialized record contains %q", key)
		}
	}
	if decoded["center_x"].(float64) != 25 {
		t.Errorf("center_x = %v, want 25", decoded["center_x"])
	}
}

func TestSortReadingOrderRows(t *testing.T) {
	regions := []Region{
		NewRegion(600, 100, 100, 100), // top right
		NewRegion(400, 700, 100, 100), // bottom
		NewRegion(50, 120, 100, 100),  // top left, center 20px below top right
	}
	ordered := sortReadingOrder(regions, 100)

	wantX := []int{50, 600, 400}
	for i, r := range ordered {
		if r.X != wantX[i] {
			t.Errorf("ordered[%d].X = %d, want %d", i, r.X, wantX[i])
		}
	}
}

func TestSortReadingOrderThresholdSplitsRows(t *testing.T) {
	// 20px apart vertically: one row at threshold 100, two rows at 10.
	a := NewRegion(600, 100, 100, 100)
	b := NewRegion(50, 120, 100, 100)

	merged := sortReadingOrder([]Region{a, b}, 100)
	if merged[0].X != 50 {
		t.Errorf("same row: first X = %d, want 50", merged[0].X)
	}

	split := sortReadingOrder([]Region{a, b}, 10)
	if split[0].X != 600 {
		t.Errorf("split rows: first X = %d, want 600", split[0].X)
	}
}

func TestSortReadingOrderEmpty(t *testing.T) {
	if got := sortReadingOrder(nil, 50); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
