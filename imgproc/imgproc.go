// Package imgproc implements the raster operations the table
// reconstructor needs: thresholding, dilation, blurring, scaling, and
// connected-component bounding boxes. All operations work on 8-bit
// grayscale images and return new images, leaving inputs untouched.
package imgproc

import (
	"image"
	"image/draw"
	"sort"

	xdraw "golang.org/x/image/draw"
)

// Grayscale converts any image to 8-bit grayscale.
func Grayscale(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}

// Threshold produces a binary image: pixels at or above the cutoff
// become white, the rest black.
func Threshold(src *image.Gray, cutoff uint8) *image.Gray {
	return applyThreshold(src, cutoff, 255, 0)
}

// ThresholdInv produces an inverted binary image: pixels below the
// cutoff become white. This separates dark print from a light page.
func ThresholdInv(src *image.Gray, cutoff uint8) *image.Gray {
	return applyThreshold(src, cutoff, 0, 255)
}

func applyThreshold(src *image.Gray, cutoff, above, below uint8) *image.Gray {
	dst := image.NewGray(src.Bounds())
	for i, v := range src.Pix {
		if v >= cutoff {
			dst.Pix[i] = above
		} else {
			dst.Pix[i] = below
		}
	}
	return dst
}

// Invert returns the photographic negative of the image.
func Invert(src *image.Gray) *image.Gray {
	dst := image.NewGray(src.Bounds())
	for i, v := range src.Pix {
		dst.Pix[i] = 255 - v
	}
	return dst
}

// Dilate grows white regions with a square kernel of the given size.
// Dilation merges fragmented glyph strokes into solid cell-shaped
// blobs before component detection.
func Dilate(src *image.Gray, kernel int) *image.Gray {
	if kernel < 2 {
		return src
	}
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	w, h := bounds.Dx(), bounds.Dy()
	half := kernel / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.Pix[y*src.Stride+x] == 0 {
				continue
			}
			y0, y1 := max(0, y-half), min(h-1, y+half)
			x0, x1 := max(0, x-half), min(w-1, x+half)
			for yy := y0; yy <= y1; yy++ {
				row := dst.Pix[yy*dst.Stride:]
				for xx := x0; xx <= x1; xx++ {
					row[xx] = 255
				}
			}
		}
	}
	return dst
}

// BoxBlur applies a mean filter with a square window of the given size.
func BoxBlur(src *image.Gray, window int) *image.Gray {
	if window < 2 {
		return src
	}
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	w, h := bounds.Dx(), bounds.Dy()
	half := window / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, count := 0, 0
			for yy := max(0, y-half); yy <= min(h-1, y+half); yy++ {
				for xx := max(0, x-half); xx <= min(w-1, x+half); xx++ {
					sum += int(src.Pix[yy*src.Stride+xx])
					count++
				}
			}
			dst.Pix[y*dst.Stride+x] = uint8(sum / count)
		}
	}
	return dst
}

// Scale resizes the image to the given dimensions with bilinear
// interpolation.
func Scale(src image.Image, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Crop returns a copy of the given region, clamped to the source
// bounds. The result has its origin at (0,0).
func Crop(src *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(src.Bounds())
	dst := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		srcRow := src.Pix[(r.Min.Y+y-src.Rect.Min.Y)*src.Stride:]
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+r.Dx()], srcRow[r.Min.X-src.Rect.Min.X:r.Min.X-src.Rect.Min.X+r.Dx()])
	}
	return dst
}

// ComponentBoxes finds the bounding boxes of 8-connected white regions
// in a binary image. Boxes are returned in reverse raster order
// (bottom-to-top, right-to-left within a band), which is the traversal
// order the reconstructor's prepend-based row grouping expects.
func ComponentBoxes(bin *image.Gray) []image.Rectangle {
	bounds := bin.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	visited := make([]bool, w*h)
	var boxes []image.Rectangle

	var stack []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || bin.Pix[y*bin.Stride+x] == 0 {
				continue
			}

			// Flood fill this component.
			minX, minY, maxX, maxY := x, y, x, y
			visited[idx] = true
			stack = append(stack[:0], image.Pt(x, y))
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
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						nidx := ny*w + nx
						if visited[nidx] || bin.Pix[ny*bin.Stride+nx] == 0 {
							continue
						}
						visited[nidx] = true
						stack = append(stack, image.Pt(nx, ny))
					}
				}
			}

			boxes = append(boxes, image.Rect(minX, minY, maxX+1, maxY+1))
		}
	}

	sort.Slice(boxes, func(i, j int) bool {
		if boxes[i].Min.Y != boxes[j].Min.Y {
			return boxes[i].Min.Y > boxes[j].Min.Y
		}
		return boxes[i].Min.X > boxes[j].Min.X
	})
	return boxes
}
