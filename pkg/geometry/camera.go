package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a perspective camera
type CameraConfig struct {
	Position    core.Vec3
	LookAt      core.Vec3
	Up          core.Vec3
	FocalLength float64 // Distance from position to the film plane
	FOV         float64 // Horizontal field of view in degrees
	Width       int
	Height      int
	Jitter      bool // Randomize ray position inside each pixel
}

// PerspectiveCamera generates rays through the cells of a film plane.
// Pixel (0,0) is the bottom-left cell.
type PerspectiveCamera struct {
	position   core.Vec3
	film       core.Vec3 // Film plane center
	horizontal core.Vec3 // Unit right vector
	vertical   core.Vec3 // Unit up vector
	min        core.Vec2 // Film corner (left, bottom)
	pixelSize  core.Vec2
	width      int
	height     int
	jitter     bool
}

// NewPerspectiveCamera positions, aims, focuses and sizes a camera
func NewPerspectiveCamera(config CameraConfig) *PerspectiveCamera {
	if config.FocalLength <= 0 {
		config.FocalLength = 1
	}
	if config.Width <= 0 {
		config.Width = 1
	}
	if config.Height <= 0 {
		config.Height = 1
	}
	if config.Up.IsZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}

	look := config.LookAt.Subtract(config.Position).Normalize()
	horizontal := look.Cross(config.Up).Normalize()
	vertical := horizontal.Cross(look).Normalize()

	aspect := float64(config.Width) / float64(config.Height)
	filmWidth := 2.0 * config.FocalLength * math.Tan(0.5*config.FOV*math.Pi/180.0)
	filmHeight := filmWidth / aspect

	return &PerspectiveCamera{
		position:   config.Position,
		film:       config.Position.Add(look.Multiply(config.FocalLength)),
		horizontal: horizontal,
		vertical:   vertical,
		min:        core.NewVec2(-0.5*filmWidth, -0.5*filmHeight),
		pixelSize:  core.NewVec2(filmWidth/float64(config.Width), filmHeight/float64(config.Height)),
		width:      config.Width,
		height:     config.Height,
		jitter:     config.Jitter,
	}
}

// GenerateRay returns a unit-direction ray through pixel (x, y). The cell
// center is used unless jitter is enabled and a sampler is supplied.
func (c *PerspectiveCamera) GenerateRay(x, y int, sampler core.Sampler) core.Ray {
	offset := core.NewVec2(0.5, 0.5)
	if c.jitter && sampler != nil {
		offset = sampler.Get2D()
	}

	u := c.min.X + (float64(x)+offset.X)*c.pixelSize.X
	v := c.min.Y + (float64(y)+offset.Y)*c.pixelSize.Y
	target := c.film.Add(c.horizontal.Multiply(u)).Add(c.vertical.Multiply(v))

	return core.NewRay(c.position, target.Subtract(c.position).Normalize())
}

// Resolution returns the image size in pixels
func (c *PerspectiveCamera) Resolution() (int, int) {
	return c.width, c.height
}
