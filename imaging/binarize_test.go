package imaging

import (
	"image"
	"image/color"
	"testing"
)

// grayImage builds a w×h grayscale image filled with bg, then applies
// the given paint function.
func grayImage(w, h int, bg uint8, paint func(g *image.Gray)) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = bg
	}
	if paint != nil {
		paint(g)
	}
	return g
}

func fillRect(g *image.Gray, x1, y1, x2, y2 int, v uint8) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			g.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

func countForeground(mask *image.Gray) int {
	n := 0
	for _, v := range mask.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestToGray(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			rgba.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}

	gray := ToGray(rgba)
	if gray.Bounds().Dx() != 4 || gray.Bounds().Dy() != 4 {
		t.Fatalf("unexpected bounds %v", gray.Bounds())
	}
	if v := gray.GrayAt(1, 1).Y; v < 190 || v > 210 {
		t.Errorf("gray value = %d, want near 200", v)
	}

	// Already-gray images pass through.
	if got := ToGray(gray); got != gray {
		t.Error("ToGray of *image.Gray should return the same image")
	}
}

func TestOtsuSeparatesInkFromPaper(t *testing.T) {
	// White page with a dark rectangle of ink.
	g := grayImage(50, 50, 240, func(g *image.Gray) {
		fillRect(g, 10, 10, 30, 20, 20)
	})

	mask := Binarize(g, DefaultBinarizeOptions())

	if mask.GrayAt(15, 15).Y != 255 {
		t.Error("ink pixel should be foreground")
	}
	if mask.GrayAt(0, 0).Y != 0 {
		t.Error("paper pixel should be background")
	}
	if n := countForeground(mask); n != 20*10 {
		t.Errorf("foreground count = %d, want 200", n)
	}
}

func TestAdaptiveHandlesIlluminationGradient(t *testing.T) {
	// Background brightness ramps from 120 to 240 across the page, with
	// ink drawn slightly darker than the local background on both sides.
	g := image.NewGray(image.Rect(0, 0, 100, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			bg := uint8(120 + x)
			g.SetGray(x, y, color.Gray{Y: bg})
		}
	}
	for x := 5; x < 15; x++ {
		g.SetGray(x, 20, color.Gray{Y: uint8(120 + x - 60)})
	}
	for x := 85; x < 95; x++ {
		g.SetGray(x, 20, color.Gray{Y: uint8(120 + x - 60)})
	}

	opts := BinarizeOptions{Method: BinarizeAdaptive, AdaptiveBlockSize: 21, AdaptiveC: 5}
	mask := Binarize(g, opts)

	if mask.GrayAt(10, 20).Y != 255 {
		t.Error("ink in the dark region should be foreground")
	}
	if mask.GrayAt(90, 20).Y != 255 {
		t.Error("ink in the bright region should be foreground")
	}
	if mask.GrayAt(50, 5).Y != 0 {
		t.Error("clean background should not be foreground")
	}
}

func TestAdaptiveBlockSizeForcedOdd(t *testing.T) {
	g := grayImage(30, 30, 200, func(g *image.Gray) {
		fillRect(g, 10, 10, 20, 20, 30)
	})

	even := Binarize(g, BinarizeOptions{Method: BinarizeAdaptive, AdaptiveBlockSize: 20, AdaptiveC: 5})
	odd := Binarize(g, BinarizeOptions{Method: BinarizeAdaptive, AdaptiveBlockSize: 21, AdaptiveC: 5})

	for i := range even.Pix {
		if even.Pix[i] != odd.Pix[i] {
			t.Fatal("block size 20 should behave as 21")
		}
	}
}

func TestCrop(t *testing.T) {
	g := grayImage(20, 20, 0, func(g *image.Gray) {
		fillRect(g, 5, 5, 10, 10, 255)
	})

	crop := Crop(g, image.Rect(5, 5, 10, 10))
	if crop.Bounds().Dx() != 5 || crop.Bounds().Dy() != 5 {
		t.Fatalf("crop bounds = %v", crop.Bounds())
	}
	if countForeground(crop) != 25 {
		t.Errorf("crop foreground = %d, want 25", countForeground(crop))
	}

	clamped := Crop(g, image.Rect(15, 15, 40, 40))
	if clamped.Bounds().Dx() != 5 || clamped.Bounds().Dy() != 5 {
		t.Errorf("clamped crop bounds = %v", clamped.Bounds())
	}
}

func TestIsEmptyImage(t *testing.T) {
	if !IsEmptyImage(nil) {
		t.Error("nil image is empty")
	}
	if !IsEmptyImage(image.NewGray(image.Rect(0, 0, 0, 10))) {
		t.Error("zero-width image is empty")
	}
	if IsEmptyImage(image.NewGray(image.Rect(0, 0, 1, 1))) {
		t.Error("1x1 image is not empty")
	}
}
