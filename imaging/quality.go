package imaging

import (
	"image"
	"math"
)

// Quality flags raised by Measure when a metric crosses its threshold.
const (
	FlagLowSharpness = "low_sharpness"
	FlagLowContrast  = "low_contrast"
	FlagSkewed       = "skewed"
	FlagDark         = "dark"
	FlagBright       = "bright"
)

// QualityReport holds scan-quality metrics for a page image. Callers use
// it to decide whether a page needs re-scanning or preprocessing before
// OCR and table detection.
type QualityReport struct {
	Width          int
	Height         int
	BlurScore      float64 // variance of the Laplacian; low means blurry
	ContrastScore  float64 // standard deviation of grayscale values
	SkewAngle      float64 // estimated rotation in degrees, positive clockwise
	MeanBrightness float64
	Flags          []string
}

// QualityThresholds configures the flag cutoffs applied by Measure.
type QualityThresholds struct {
	BlurMin       float64
	ContrastMin   float64
	SkewMax       float64 // degrees
	BrightnessMin float64
	BrightnessMax float64
}

// DefaultQualityThresholds returns the standard cutoffs.
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		BlurMin:       100.0,
		ContrastMin:   25.0,
		SkewMax:       1.5,
		BrightnessMin: 50.0,
		BrightnessMax: 200.0,
	}
}

// Measure computes quality metrics for a grayscale page image.
func Measure(gray *image.Gray, thresholds QualityThresholds) QualityReport {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	report := QualityReport{Width: w, Height: h}
	if w == 0 || h == 0 {
		return report
	}

	report.MeanBrightness, report.ContrastScore = meanStddev(gray)
	report.BlurScore = laplacianVariance(gray)
	report.SkewAngle = EstimateSkew(gray)

	if report.BlurScore < thresholds.BlurMin {
		report.Flags = append(report.Flags, FlagLowSharpness)
	}
	if report.ContrastScore < thresholds.ContrastMin {
		report.Flags = append(report.Flags, FlagLowContrast)
	}
	if math.Abs(report.SkewAngle) > thresholds.SkewMax {
		report.Flags = append(report.Flags, FlagSkewed)
	}
	if report.MeanBrightness < thresholds.BrightnessMin {
		report.Flags = append(report.Flags, FlagDark)
	}
	if report.MeanBrightness > thresholds.BrightnessMax {
		report.Flags = append(report.Flags, FlagBright)
	}

	return report
}

func meanStddev(gray *image.Gray) (mean, stddev float64) {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	sum := 0.0
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, v := range row {
			sum += float64(v)
		}
	}
	n := float64(w * h)
	mean = sum / n

	sumSq := 0.0
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for _, v := range row {
			d := float64(v) - mean
			sumSq += d * d
		}
	}
	stddev = math.Sqrt(sumSq / n)
	return mean, stddev
}

// laplacianVariance computes the variance of the 4-neighbor Laplacian
// over interior pixels. Sharp edges produce a high-variance response,
// blur flattens it.
func laplacianVariance(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	n := (w - 2) * (h - 2)
	values := make([]float64, 0, n)
	sum := 0.0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			center := int(gray.Pix[y*gray.Stride+x])
			lap := int(gray.Pix[(y-1)*gray.Stride+x]) +
				int(gray.Pix[(y+1)*gray.Stride+x]) +
				int(gray.Pix[y*gray.Stride+x-1]) +
				int(gray.Pix[y*gray.Stride+x+1]) -
				4*center
			f := float64(lap)
			values = append(values, f)
			sum += f
		}
	}

	mean := sum / float64(n)
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return variance / float64(n)
}
