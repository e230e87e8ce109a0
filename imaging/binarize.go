package imaging

import "image"

// BinarizeMethod selects the thresholding technique used by Binarize.
type BinarizeMethod string

const (
	// BinarizeOtsu computes a single global threshold from the image
	// histogram. Good default for evenly lit scans.
	BinarizeOtsu BinarizeMethod = "otsu"

	// BinarizeAdaptive thresholds each pixel against the mean of its
	// neighborhood. Use for regions with uneven illumination, e.g. after
	// deskewing or denoising left gradients across the page.
	BinarizeAdaptive BinarizeMethod = "adaptive"
)

// BinarizeOptions configures Binarize. The zero value selects Otsu.
type BinarizeOptions struct {
	Method BinarizeMethod

	// AdaptiveBlockSize is the neighborhood side length for the adaptive
	// method. It is forced odd; values below 3 become 21.
	AdaptiveBlockSize int

	// AdaptiveC is subtracted from the neighborhood mean to form the
	// local threshold.
	AdaptiveC int
}

// DefaultBinarizeOptions returns the default binarization settings.
func DefaultBinarizeOptions() BinarizeOptions {
	return BinarizeOptions{
		Method:            BinarizeOtsu,
		AdaptiveBlockSize: 21,
		AdaptiveC:         5,
	}
}

// Binarize converts a grayscale image into an inverted binary mask:
// ink (dark pixels) becomes foreground 255, paper becomes 0. The caller
// must pass a non-empty image.
func Binarize(gray *image.Gray, opts BinarizeOptions) *image.Gray {
	if opts.Method == BinarizeAdaptive {
		block := opts.AdaptiveBlockSize
		if block < 3 {
			block = 21
		}
		if block%2 == 0 {
			block++
		}
		return adaptiveMeanThreshold(gray, block, opts.AdaptiveC)
	}
	return otsuThreshold(gray)
}

// otsuThreshold binarizes with Otsu's method: the threshold maximizing
// between-class variance of the histogram. Pixels at or below the
// threshold (ink) map to 255.
func otsuThreshold(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var hist [256]int
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, v := range row {
			hist[v]++
		}
	}

	total := w * h
	sumAll := 0.0
	for v, n := range hist {
		sumAll += float64(v) * float64(n)
	}

	threshold := 0
	bestVariance := -1.0
	sumBg := 0.0
	weightBg := 0

	for v := 0; v < 256; v++ {
		weightBg += hist[v]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}

		sumBg += float64(v) * float64(hist[v])
		meanBg := sumBg / float64(weightBg)
		meanFg := (sumAll - sumBg) / float64(weightFg)

		diff := meanBg - meanFg
		variance := float64(weightBg) * float64(weightFg) * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			threshold = v
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, v := range src {
			if int(v) <= threshold {
				dst[x] = 255
			}
		}
	}
	return out
}

// adaptiveMeanThreshold binarizes each pixel against the mean of its
// block×block neighborhood minus c. The window is clamped at the image
// border and the mean taken over the covered pixels.
func adaptiveMeanThreshold(gray *image.Gray, block, c int) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Summed-area table, one row/column of zero padding.
	integral := make([]int64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		rowSum := int64(0)
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := 0; x < w; x++ {
			rowSum += int64(src[x])
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	radius := block / 2
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		y1 := y - radius
		if y1 < 0 {
			y1 = 0
		}
		y2 := y + radius
		if y2 >= h {
			y2 = h - 1
		}
		src := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		dst := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := 0; x < w; x++ {
			x1 := x - radius
			if x1 < 0 {
				x1 = 0
			}
			x2 := x + radius
			if x2 >= w {
				x2 = w - 1
			}

			sum := integral[(y2+1)*stride+x2+1] -
				integral[y1*stride+x2+1] -
				integral[(y2+1)*stride+x1] +
				integral[y1*stride+x1]
			count := int64((x2 - x1 + 1) * (y2 - y1 + 1))
			threshold := sum/count - int64(c)

			if int64(src[x]) <= threshold {
				dst[x] = 255
			}
		}
	}
	return out
}
