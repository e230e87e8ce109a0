package imaging

import (
	"image"
	"testing"
)

func TestOpenHorizontalKeepsLongRuns(t *testing.T) {
	g := grayImage(60, 10, 0, func(g *image.Gray) {
		fillRect(g, 5, 2, 45, 3, 255)  // 40px run: kept
		fillRect(g, 5, 5, 12, 6, 255)  // 7px run: erased
		fillRect(g, 20, 5, 40, 6, 255) // 20px run: kept
	})

	out := OpenHorizontal(g, 15)

	if out.GrayAt(10, 2).Y != 255 {
		t.Error("40px run should survive opening")
	}
	if out.GrayAt(8, 5).Y != 0 {
		t.Error("7px run should be erased")
	}
	if out.GrayAt(30, 5).Y != 255 {
		t.Error("20px run should survive opening")
	}
}

func TestOpenVerticalKeepsLongRuns(t *testing.T) {
	g := grayImage(10, 60, 0, func(g *image.Gray) {
		fillRect(g, 2, 5, 3, 45, 255) // 40px column: kept
		fillRect(g, 6, 5, 7, 12, 255) // 7px column: erased
	})

	out := OpenVertical(g, 15)

	if out.GrayAt(2, 20).Y != 255 {
		t.Error("long vertical run should survive")
	}
	if out.GrayAt(6, 8).Y != 0 {
		t.Error("short vertical run should be erased")
	}
}

func TestOpenRunTouchingEdge(t *testing.T) {
	// A run ending exactly at the image border must still be measured.
	g := grayImage(20, 4, 0, func(g *image.Gray) {
		fillRect(g, 5, 1, 20, 2, 255)
	})

	out := OpenHorizontal(g, 15)
	if out.GrayAt(19, 1).Y != 255 {
		t.Error("run reaching the right border should survive")
	}

	short := OpenHorizontal(g, 16)
	if short.GrayAt(19, 1).Y != 0 {
		t.Error("15px run should not survive a 16px kernel")
	}
}

func TestUnion(t *testing.T) {
	a := grayImage(10, 10, 0, func(g *image.Gray) { fillRect(g, 0, 0, 5, 10, 255) })
	b := grayImage(10, 10, 0, func(g *image.Gray) { fillRect(g, 3, 0, 10, 10, 255) })

	u := Union(a, b)
	if countForeground(u) != 100 {
		t.Errorf("union foreground = %d, want 100", countForeground(u))
	}
}

func TestLineKernelLength(t *testing.T) {
	tests := []struct {
		dimension, scale, want int
	}{
		{800, 40, 20},
		{400, 40, 10},
		{100, 40, 10}, // floored at 10
		{50, 40, 10},  // tiny crop still gets a usable kernel
		{800, 0, 800}, // degenerate scale clamped to 1
	}
	for _, tt := range tests {
		if got := LineKernelLength(tt.dimension, tt.scale); got != tt.want {
			t.Errorf("LineKernelLength(%d, %d) = %d, want %d",
				tt.dimension, tt.scale, got, tt.want)
		}
	}
}

func TestExtractLineMasksIsolatesRulings(t *testing.T) {
	// A ruled cross plus short "text" marks. Scale 40 on a 400x200 image
	// gives a 10px kernel on both axes.
	g := grayImage(400, 200, 0, func(g *image.Gray) {
		fillRect(g, 0, 100, 400, 102, 255) // horizontal ruling
		fillRect(g, 200, 0, 202, 200, 255) // vertical ruling
		fillRect(g, 20, 20, 28, 28, 255)   // text-sized blob
	})

	horizontal, vertical := ExtractLineMasks(g, 40)

	if horizontal.GrayAt(50, 101).Y != 255 {
		t.Error("horizontal ruling missing from horizontal mask")
	}
	if horizontal.GrayAt(201, 50).Y != 0 {
		t.Error("vertical ruling should not appear in horizontal mask")
	}
	if vertical.GrayAt(201, 50).Y != 255 {
		t.Error("vertical ruling missing from vertical mask")
	}
	if horizontal.GrayAt(24, 24).Y != 0 || vertical.GrayAt(24, 24).Y != 0 {
		t.Error("text blob should be suppressed by both openings")
	}
}

func TestComponents(t *testing.T) {
	g := grayImage(40, 40, 0, func(g *image.Gray) {
		fillRect(g, 2, 2, 10, 10, 255)
		fillRect(g, 20, 20, 35, 30, 255)
	})

	rects := Components(g)
	if len(rects) != 2 {
		t.Fatalf("Components found %d, want 2", len(rects))
	}
	if rects[0] != image.Rect(2, 2, 10, 10) {
		t.Errorf("first component = %v", rects[0])
	}
	if rects[1] != image.Rect(20, 20, 35, 30) {
		t.Errorf("second component = %v", rects[1])
	}
}

func TestComponentsDiagonalConnectivity(t *testing.T) {
	// Two pixels touching only at corners form one 8-connected component.
	g := grayImage(4, 4, 0, func(g *image.Gray) {
		g.Pix[1*g.Stride+1] = 255
		g.Pix[2*g.Stride+2] = 255
	})

	rects := Components(g)
	if len(rects) != 1 {
		t.Fatalf("diagonal pixels should form one component, got %d", len(rects))
	}
	if rects[0] != image.Rect(1, 1, 3, 3) {
		t.Errorf("component = %v", rects[0])
	}
}

func TestComponentsEmptyMask(t *testing.T) {
	if rects := Components(image.NewGray(image.Rect(0, 0, 20, 20))); rects != nil {
		t.Errorf("empty mask should have no components, got %v", rects)
	}
}
