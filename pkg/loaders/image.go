package loaders

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads any image format imaging can decode and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", filename, err)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image to linear [0,1] colors in row-major order
func FromImage(img image.Image) *ImageData {
	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := nrgba.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)
			pixels[y*width+x] = core.NewVec3(
				float64(nrgba.Pix[offset])/255.0,
				float64(nrgba.Pix[offset+1])/255.0,
				float64(nrgba.Pix[offset+2])/255.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// At returns the pixel at (x, y), clamping coordinates to the image
func (d *ImageData) At(x, y int) core.Vec3 {
	x = max(0, min(d.Width-1, x))
	y = max(0, min(d.Height-1, y))
	return d.Pixels[y*d.Width+x]
}
