package reveal

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Overlay plane presentation constants.
const (
	SoilColor   = "#6B4423"
	ScanTexture = "images/gpr-placeholder.png"
)

// Plane is a flat translucent quad drawn in front of the clipped model. Sizes are in world
// units; Yaw rotates the quad about the vertical axis.
type Plane struct {
	Name        string
	Position    mgl32.Vec3
	Width       float32
	Height      float32
	Yaw         float32
	Opacity     float32
	Color       [4]float32
	Texture     string
	RenderOrder int
	DepthWrite  bool
}

// soilColor is SoilColor as linear RGBA.
var soilColor = [4]float32{0x6B / 255.0, 0x44 / 255.0, 0x23 / 255.0, 1}

// OverlayPlanes returns the soil and scan planes for an anchor point. The soil plane is a
// large brown sheet one unit behind the anchor; the scan plane carries the radar image and
// hangs with its top edge at the anchor's height, half a unit behind it.
//
// Parameters:
//   - anchor: the qualifying look-at point
//
// Returns:
//   - []Plane: the soil and scan planes, in render order
func OverlayPlanes(anchor mgl32.Vec3) []Plane {
	const scanW, scanH = 15, 10
	return []Plane{
		{
			Name:        "soil",
			Position:    anchor.Add(mgl32.Vec3{-1, 0, 0}),
			Width:       500,
			Height:      500,
			Yaw:         math32.Pi / 2,
			Opacity:     0.6,
			Color:       soilColor,
			RenderOrder: 2,
		},
		{
			Name:        "scan",
			Position:    anchor.Add(mgl32.Vec3{-0.5, -scanH / 2, 0}),
			Width:       scanW,
			Height:      scanH,
			Yaw:         math32.Pi / 2,
			Opacity:     0.95,
			Color:       [4]float32{1, 1, 1, 1},
			Texture:     ScanTexture,
			RenderOrder: 3,
			DepthWrite:  true,
		},
	}
}
