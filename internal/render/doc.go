// Package render letters narrative text into panel artwork.
//
// The Engine fits word-wrapped text into a detected or synthesized region:
// it searches downward from a length-bucketed starting font size for the
// largest size whose wrapped block fits the region's padded interior, falls
// back to word-prefix truncation at the floor size, and draws the block
// centered. The BubbleRenderer synthesizes a bubble, box, or SFX burst for
// elements that have no detected region, then reuses the Engine for the
// lettering.
//
// Every entry point takes an image and returns a new owned copy; inputs
// are never mutated, so concurrent pipelines never alias. Rendering is
// total: it cannot fail because of text content.
package render
