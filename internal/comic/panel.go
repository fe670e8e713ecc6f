// Package comic defines the plain records exchanged with the narrative and
// image-generation collaborators: panel elements, placement hints, and the
// panel itself. Everything here is data; behavior lives in the detect,
// render, and strip packages.
package comic

import "github.com/stripcraft/comic-strip-tools/internal/detect"

// Panel is one generated scene: the raw encoded panel image plus the
// ordered narrative elements to letter into it.
type Panel struct {
	// Number is the panel's 1-based position in the strip.
	Number int `json:"number"`

	// Image holds the encoded raster bytes from the image-generation
	// collaborator. May be empty when generation failed; such panels are
	// dropped at composite time.
	Image []byte `json:"-"`

	// Elements is the ordered element list for this panel.
	Elements []Element `json:"elements"`

	// Regions optionally replays a previous detection pass for Image.
	// When empty, the compositor detects at composite time.
	Regions []detect.Region `json:"regions,omitempty"`

	// UserText is the resolved text for the panel's user-input element.
	UserText string `json:"user_text,omitempty"`
}

// HasImage reports whether the panel carries any image bytes at all. It
// does not validate that the bytes decode.
func (p Panel) HasImage() bool {
	return len(p.Image) > 0
}
