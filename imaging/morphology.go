package imaging

import "image"

// OpenHorizontal applies a morphological opening with a 1×length
// rectangular structuring element: erosion followed by dilation. For a
// one-dimensional element this is exactly a run filter, so the result
// keeps each horizontal foreground run of at least length pixels and
// erases everything shorter. Length values below 1 are treated as 1.
func OpenHorizontal(mask *image.Gray, length int) *image.Gray {
	if length < 1 {
		length = 1
	}
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		src := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		runStart := -1
		for x := 0; x <= w; x++ {
			fg := x < w && src[x] != 0
			if fg && runStart < 0 {
				runStart = x
			}
			if !fg && runStart >= 0 {
				if x-runStart >= length {
					for i := runStart; i < x; i++ {
						dst[i] = 255
					}
				}
				runStart = -1
			}
		}
	}
	return out
}

// OpenVertical applies a morphological opening with a length×1
// rectangular structuring element, keeping vertical foreground runs of
// at least length pixels.
func OpenVertical(mask *image.Gray, length int) *image.Gray {
	if length < 1 {
		length = 1
	}
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	for x := 0; x < w; x++ {
		runStart := -1
		for y := 0; y <= h; y++ {
			fg := y < h && mask.Pix[y*mask.Stride+x] != 0
			if fg && runStart < 0 {
				runStart = y
			}
			if !fg && runStart >= 0 {
				if y-runStart >= length {
					for i := runStart; i < y; i++ {
						out.Pix[i*out.Stride+x] = 255
					}
				}
				runStart = -1
			}
		}
	}
	return out
}

// Union returns the pixel-wise union of two binary masks of identical
// dimensions (saturating add of 0/255 masks).
func Union(a, b *image.Gray) *image.Gray {
	bounds := a.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		rowA := a.Pix[y*a.Stride : y*a.Stride+w]
		rowB := b.Pix[y*b.Stride : y*b.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			if rowA[x] != 0 || rowB[x] != 0 {
				dst[x] = 255
			}
		}
	}
	return out
}

// LineKernelLength computes the structuring element length for isolating
// ruled lines: the image dimension divided by scale, floored at 10 pixels
// so tiny crops never degenerate to zero-length kernels.
func LineKernelLength(dimension, scale int) int {
	if scale < 1 {
		scale = 1
	}
	length := dimension / scale
	if length < 10 {
		length = 10
	}
	return length
}

// ExtractLineMasks isolates long horizontal and long vertical foreground
// structures from a binary mask via directional opening. Kernel lengths
// scale with the mask dimensions divided by scale, so the same
// configuration works across DPI settings.
func ExtractLineMasks(mask *image.Gray, scale int) (horizontal, vertical *image.Gray) {
	bounds := mask.Bounds()
	hLen := LineKernelLength(bounds.Dx(), scale)
	vLen := LineKernelLength(bounds.Dy(), scale)
	return OpenHorizontal(mask, hLen), OpenVertical(mask, vLen)
}
