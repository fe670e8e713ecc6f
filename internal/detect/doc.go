// Package detect locates empty speech bubbles and narration boxes in
// generated comic panel artwork.
//
// Detection works from pixel data alone and is tuned to the visual
// conventions of one image-generation backend at one canonical resolution
// (1024×1024): bubbles are enclosed near-white, roughly circular regions;
// narration boxes are enclosed near-white, roughly rectangular regions.
// This is not general-purpose segmentation — noisy artwork, other
// resolutions, or other drawing styles need retuned Params.
//
// # Pipeline
//
//  1. Decode and convert to grayscale. Undecodable bytes yield an empty
//     result, never an error.
//  2. Pad the frame with a dark border so shapes touching the true edge
//     still close into single contours.
//  3. Threshold near-white pixels into a binary mask, then apply a small
//     morphological cleanup to break thin bridges that anti-aliasing opens
//     through the line art.
//  4. Collect connected components, trace each boundary, and score shapes:
//     circularity (4πA/P²) for bubbles, filled-fraction of the bounding box
//     for narration boxes.
//  5. Reject area outliers and border-hugging components (page background),
//     clamp coordinates back to the unpadded frame, and sort the survivors
//     into reading order.
//
// All detection entry points are pure: identical bytes always produce an
// identical ordered region list, so callers may cache results (see
// RegionCache) and replay them instead of re-running detection.
package detect
