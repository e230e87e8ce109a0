package imaging

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Skew estimation sweep: ±5 degrees in 0.25-degree steps covers typical
// flatbed and sheet-feed misalignment.
const (
	skewSweepDegrees = 5.0
	skewStepDegrees  = 0.25
)

// EstimateSkew estimates the rotation of text lines in a grayscale page,
// in degrees, positive clockwise. It binarizes the page and scores
// candidate angles by the variance of the sheared horizontal projection
// profile: at the true text angle, ink concentrates into a few dense
// rows and the variance peaks.
func EstimateSkew(gray *image.Gray) float64 {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	mask := Binarize(gray, DefaultBinarizeOptions())

	// Sample foreground pixels; a coarse subsample keeps the sweep cheap
	// on large pages without moving the variance peak.
	step := 1
	if w*h > 1<<21 {
		step = 2
	}
	type pixel struct{ x, y int }
	var ink []pixel
	for y := 0; y < h; y += step {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x += step {
			if row[x] != 0 {
				ink = append(ink, pixel{x, y})
			}
		}
	}
	if len(ink) == 0 {
		return 0
	}

	bestAngle := 0.0
	bestScore := -1.0
	profile := make([]int, h+2*int(float64(w)*math.Tan(skewSweepDegrees*math.Pi/180))+2)
	offset := (len(profile) - h) / 2

	for angle := -skewSweepDegrees; angle <= skewSweepDegrees+1e-9; angle += skewStepDegrees {
		tan := math.Tan(angle * math.Pi / 180)
		for i := range profile {
			profile[i] = 0
		}
		for _, p := range ink {
			row := p.y - int(float64(p.x)*tan) + offset
			if row >= 0 && row < len(profile) {
				profile[row]++
			}
		}

		mean := float64(len(ink)) / float64(len(profile))
		score := 0.0
		for _, count := range profile {
			d := float64(count) - mean
			score += d * d
		}
		if score > bestScore {
			bestScore = score
			bestAngle = angle
		}
	}

	// Round to the sweep resolution to avoid float drift in the result.
	return math.Round(bestAngle/skewStepDegrees) * skewStepDegrees
}

// Rotate resamples a grayscale page rotated by the given angle in degrees
// (positive clockwise) about its center, filling uncovered corners with
// white. Pass the negated result of EstimateSkew to deskew a page.
func Rotate(gray *image.Gray, degrees float64) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)

	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	cx, cy := float64(w)/2, float64(h)/2

	// Rotation about the image center: translate to origin, rotate,
	// translate back.
	m := f64.Aff3{
		cos, -sin, cx - cx*cos + cy*sin,
		sin, cos, cy - cx*sin - cy*cos,
	}
	draw.ApproxBiLinear.Transform(out, m, gray, gray.Bounds(), draw.Over, nil)
	return out
}

// Deskew estimates the skew of a grayscale page and, when it exceeds
// minAngle degrees, returns the page rotated back to horizontal along
// with the applied correction. Pages within tolerance are returned
// unchanged with a zero angle.
func Deskew(gray *image.Gray, minAngle float64) (*image.Gray, float64) {
	angle := EstimateSkew(gray)
	if math.Abs(angle) <= minAngle {
		return gray, 0
	}
	return Rotate(gray, -angle), -angle
}
