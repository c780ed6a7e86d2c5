package render

import (
	"math"

	"github.com/taigrr/spheretrace/pkg/geometry"
	"github.com/taigrr/spheretrace/pkg/math3d"
)

// Projector produces the primary ray through pixel (px, py) of a
// width x height image. Implementations must be safe for concurrent use by
// the renderer's workers.
type Projector interface {
	RayFor(px, py, width, height int) geometry.Ray
}

// preparer is implemented by projectors that cache derived state. The
// renderer calls prepare once before dispatching rows.
type preparer interface {
	prepare()
}

// Camera is a pinhole camera looking from Position toward Target.
type Camera struct {
	// Placement in world space
	Position math3d.Tuple
	Target   math3d.Tuple
	Up       math3d.Tuple

	FOV float64 // Field of view across the longer image side, in radians

	// Cached inverse of the view transform
	inverse math3d.Mat4
	dirty   bool
}

// NewCamera creates a camera five units in front of the origin looking at it
// with a 60 degree field of view.
func NewCamera() *Camera {
	return &Camera{
		Position: math3d.Point(0, 0, -5),
		Target:   math3d.Origin(),
		Up:       math3d.Vector(0, 1, 0),
		FOV:      math.Pi / 3,
		dirty:    true,
	}
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(pos math3d.Tuple) {
	c.Position = pos
	c.dirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Tuple) {
	c.Target = target
	c.dirty = true
}

// SetUp sets the camera's approximate up direction.
func (c *Camera) SetUp(up math3d.Tuple) {
	c.Up = up
	c.dirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
}

// ViewTransform returns the world-to-camera transform.
func (c *Camera) ViewTransform() math3d.Mat4 {
	return math3d.ViewTransform(c.Position, c.Target, c.Up)
}

func (c *Camera) prepare() {
	if !c.dirty {
		return
	}
	inv, err := c.ViewTransform().Inverse()
	if err != nil {
		// Position equals Target or Up is parallel to the view direction.
		inv = math3d.Identity()
	}
	c.inverse = inv
	c.dirty = false
}

// RayFor returns the ray from the camera through the center of pixel
// (px, py). Calls are read-only once the camera is prepared; the renderer
// does that before starting its workers.
func (c *Camera) RayFor(px, py, width, height int) geometry.Ray {
	c.prepare()

	halfView := math.Tan(c.FOV / 2)
	aspect := float64(width) / float64(height)

	halfWidth, halfHeight := halfView, halfView/aspect
	if aspect < 1 {
		halfWidth, halfHeight = halfView*aspect, halfView
	}
	pixelSize := halfWidth * 2 / float64(width)

	// The camera looks toward -z, so +x in camera space is to the left.
	worldX := halfWidth - (float64(px)+0.5)*pixelSize
	worldY := halfHeight - (float64(py)+0.5)*pixelSize

	pixel := c.inverse.MulTuple(math3d.Point(worldX, worldY, -1))
	origin := c.inverse.MulTuple(math3d.Origin())
	return geometry.NewRay(origin, pixel.Sub(origin).Normalize())
}

// Wall casts rays from a fixed eye through a square wall facing it, the
// simplest projection that shows a sphere's silhouette and shading.
type Wall struct {
	Eye      math3d.Tuple
	WallZ    float64 // Wall plane position along z
	WallSize float64 // Side length of the square wall
}

// DefaultWall places the eye at (0, 0, -5) and a 7x7 wall at z = 10, which
// frames a unit sphere at the origin with some margin.
func DefaultWall() Wall {
	return Wall{
		Eye:      math3d.Point(0, 0, -5),
		WallZ:    10,
		WallSize: 7,
	}
}

// RayFor returns the ray from the eye to the wall point covered by pixel
// (px, py). Pixels are square; the wall spans the image width.
func (w Wall) RayFor(px, py, width, height int) geometry.Ray {
	pixelSize := w.WallSize / float64(width)
	halfWidth := w.WallSize / 2
	halfHeight := pixelSize * float64(height) / 2

	worldX := -halfWidth + pixelSize*float64(px)
	worldY := halfHeight - pixelSize*float64(py)

	target := math3d.Point(worldX, worldY, w.WallZ)
	return geometry.NewRay(w.Eye, target.Sub(w.Eye).Normalize())
}
