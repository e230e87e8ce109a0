package imaging

import (
	"image"
	"image/draw"
)

// ToGray converts an image to 8-bit grayscale with bounds normalized to
// origin (0,0). If the input is already an origin-based *image.Gray it is
// returned unchanged; callers must treat the result as read-only.
func ToGray(src image.Image) *image.Gray {
	if src == nil {
		return nil
	}

	if g, ok := src.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}

	bounds := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), src, bounds.Min, draw.Src)
	return gray
}

// IsEmptyImage reports whether an image is nil or has zero area.
func IsEmptyImage(src image.Image) bool {
	if src == nil {
		return true
	}
	b := src.Bounds()
	return b.Dx() <= 0 || b.Dy() <= 0
}

// Crop returns a copy of the given region of a grayscale image, with the
// region clamped to the image bounds and the result normalized to origin
// (0,0). A region entirely outside the image yields an empty image.
func Crop(src *image.Gray, region image.Rectangle) *image.Gray {
	region = region.Intersect(src.Bounds())
	out := image.NewGray(image.Rect(0, 0, region.Dx(), region.Dy()))
	for y := 0; y < region.Dy(); y++ {
		srcOff := src.PixOffset(region.Min.X, region.Min.Y+y)
		dstOff := out.PixOffset(0, y)
		copy(out.Pix[dstOff:dstOff+region.Dx()], src.Pix[srcOff:srcOff+region.Dx()])
	}
	return out
}
