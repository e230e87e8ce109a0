package imaging

import "image"

// Components returns the bounding rectangles of the external connected
// foreground components of a binary mask, using 8-connectivity. Results
// are ordered by each component's first pixel in scan order, which makes
// repeated runs deterministic.
func Components(mask *image.Gray) []image.Rectangle {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	visited := make([]bool, w*h)
	var rects []image.Rectangle
	var stack []image.Point

	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x := 0; x < w; x++ {
			if row[x] == 0 || visited[y*w+x] {
				continue
			}

			minX, minY, maxX, maxY := x, y, x, y
			visited[y*w+x] = true
			stack = append(stack[:0], image.Point{X: x, Y: y})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}

				for dy := -1; dy <= 1; dy++ {
					ny := p.Y + dy
					if ny < 0 || ny >= h {
						continue
					}
					for dx := -1; dx <= 1; dx++ {
						nx := p.X + dx
						if nx < 0 || nx >= w || visited[ny*w+nx] {
							continue
						}
						if mask.Pix[ny*mask.Stride+nx] == 0 {
							continue
						}
						visited[ny*w+nx] = true
						stack = append(stack, image.Point{X: nx, Y: ny})
					}
				}
			}

			rects = append(rects, image.Rect(minX, minY, maxX+1, maxY+1))
		}
	}

	return rects
}
