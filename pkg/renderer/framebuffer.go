package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Framebuffer holds linear, unclamped pixel colors. Row 0 is the top of the image.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]core.Vec3, width*height)}
}

func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// ToRGBA clamps to [0,1], applies gamma and converts to 8 bits per channel.
// A gamma of 1 leaves values linear.
func (fb *Framebuffer) ToRGBA(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y).Clamp(0, 1)
			if gamma != 1 {
				c = c.GammaCorrect(gamma)
			}
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c.X * 255),
				G: uint8(c.Y * 255),
				B: uint8(c.Z * 255),
				A: 255,
			})
		}
	}
	return img
}
