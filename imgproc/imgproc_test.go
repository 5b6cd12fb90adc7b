package imgproc

import (
	"image"
	"image/color"
	"testing"
)

// paint sets every pixel in the rectangle to white.
func paint(img *image.Gray, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
}

func TestThresholdInv(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 1))
	img.Pix = []uint8{0, 100, 190, 255}

	bin := ThresholdInv(img, 190)
	want := []uint8{255, 255, 0, 0}
	for i, v := range bin.Pix {
		if v != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, v, want[i])
		}
	}
}

func TestThreshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 1))
	img.Pix = []uint8{0, 150, 200}

	bin := Threshold(img, 150)
	want := []uint8{0, 255, 255}
	for i, v := range bin.Pix {
		if v != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, v, want[i])
		}
	}
}

func TestInvert(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.Pix = []uint8{0, 200}

	inv := Invert(img)
	if inv.Pix[0] != 255 || inv.Pix[1] != 55 {
		t.Errorf("Invert() = %v, want [255 55]", inv.Pix)
	}
}

func TestDilateGrowsRegion(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 9, 9))
	img.SetGray(4, 4, color.Gray{Y: 255})

	dilated := Dilate(img, 3)
	count := 0
	for _, v := range dilated.Pix {
		if v == 255 {
			count++
		}
	}
	if count != 9 {
		t.Errorf("3x3 dilation of a single pixel lit %d pixels, want 9", count)
	}
}

func TestComponentBoxes(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	paint(img, image.Rect(2, 2, 6, 5))
	paint(img, image.Rect(10, 12, 18, 17))

	boxes := ComponentBoxes(img)
	if len(boxes) != 2 {
		t.Fatalf("found %d components, want 2", len(boxes))
	}

	// Reverse raster order: the lower component comes first.
	if boxes[0] != image.Rect(10, 12, 18, 17) {
		t.Errorf("boxes[0] = %v, want (10,12)-(18,17)", boxes[0])
	}
	if boxes[1] != image.Rect(2, 2, 6, 5) {
		t.Errorf("boxes[1] = %v, want (2,2)-(6,5)", boxes[1])
	}
}

func TestComponentBoxesMergedByTouch(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	paint(img, image.Rect(1, 1, 4, 4))
	paint(img, image.Rect(4, 4, 7, 7)) // diagonal touch, 8-connected

	boxes := ComponentBoxes(img)
	if len(boxes) != 1 {
		t.Fatalf("found %d components, want 1 (8-connectivity)", len(boxes))
	}
	if boxes[0] != image.Rect(1, 1, 7, 7) {
		t.Errorf("merged box = %v, want (1,1)-(7,7)", boxes[0])
	}
}

func TestCrop(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	paint(img, image.Rect(3, 3, 5, 5))

	cropped := Crop(img, image.Rect(3, 3, 5, 5))
	if cropped.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("cropped bounds = %v, want (0,0)-(2,2)", cropped.Bounds())
	}
	for _, v := range cropped.Pix {
		if v != 255 {
			t.Errorf("cropped pixels = %v, want all white", cropped.Pix)
			break
		}
	}
}

func TestCropClampsToBounds(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 5, 5))
	cropped := Crop(img, image.Rect(3, 3, 20, 20))
	if cropped.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("cropped bounds = %v, want (0,0)-(2,2)", cropped.Bounds())
	}
}

func TestScale(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	paint(img, img.Bounds())

	scaled := Scale(img, 8, 8)
	if scaled.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Fatalf("scaled bounds = %v, want (0,0)-(8,8)", scaled.Bounds())
	}
	if scaled.Pix[4*scaled.Stride+4] != 255 {
		t.Error("scaled interior pixel should stay white")
	}
}
