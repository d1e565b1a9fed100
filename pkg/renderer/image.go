package renderer

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/sun-wendy/6.4400-graphics/pkg/core"
)

// Image is a linear RGB framebuffer. Row 0 is the bottom of the picture, matching
// the camera's image-plane coordinates.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// SetPixel stores the color at (x, y)
func (img *Image) SetPixel(x, y int, c core.Vec3) {
	img.Pixels[y*img.Width+x] = c
}

// GetPixel returns the color at (x, y)
func (img *Image) GetPixel(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// ToNRGBA converts to an 8-bit image with top-left origin, applying gamma
// correction and clamping to [0,1]
func (img *Image) ToNRGBA(gamma float64) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetNRGBA(x, y, vec3ToColor(img.GetPixel(x, y), gamma))
		}
	}
	return imaging.FlipV(out)
}

// vec3ToColor converts a Vec3 color to NRGBA with proper clamping and gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.NRGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	if gamma > 0 && gamma != 1 {
		colorVec = colorVec.GammaCorrect(gamma)
	}

	return color.NRGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}

// Downsample resizes the image with a Lanczos filter, used to resolve supersampled renders.
// Colors are clamped to [0,1] first.
func (img *Image) Downsample(width, height int) *Image {
	if width == img.Width && height == img.Height {
		return img
	}

	src := image.NewRGBA64(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.GetPixel(x, y).Clamp(0, 1)
			src.SetRGBA64(x, y, color.RGBA64{
				R: uint16(c.X*65535 + 0.5),
				G: uint16(c.Y*65535 + 0.5),
				B: uint16(c.Z*65535 + 0.5),
				A: 0xffff,
			})
		}
	}

	resized := resize.Resize(uint(width), uint(height), src, resize.Lanczos3)

	out := NewImage(width, height)
	bounds := resized.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.SetPixel(x, y, core.NewVec3(float64(r)/65535, float64(g)/65535, float64(b)/65535))
		}
	}
	return out
}
