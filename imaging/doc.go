// Package imaging provides the raster primitives the table detector is
// built on: grayscale conversion, global (Otsu) and local (adaptive mean)
// binarization, binary morphological opening with 1-D rectangular
// structuring elements, and external connected-component extraction.
//
// Binary masks are represented as *image.Gray with foreground (ink) at
// 255 and background at 0, origin-normalized to (0,0). All operations
// allocate their own output buffers and never modify their inputs, so
// concurrent calls on shared images are safe.
//
// The package also carries scan-quality helpers used ahead of detection:
// [Measure] computes sharpness/contrast/brightness/skew metrics for a
// page, and [Rotate] resamples a page to undo an estimated skew angle.
package imaging
