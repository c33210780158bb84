package reveal

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
)

// OverlayBuilderOption is a functional option for configuring an Overlay.
type OverlayBuilderOption func(*Overlay)

// WithLogger sets the logger used for activation events.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) OverlayBuilderOption {
	return func(o *Overlay) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithQualifier sets the only scene and section reveal is permitted for.
//
// Parameters:
//   - scene: the qualifying scene
//   - section: the qualifying section index
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithQualifier(scene viewpoint.SceneID, section int) OverlayBuilderOption {
	return func(o *Overlay) {
		o.scene = scene
		o.section = section
	}
}

// WithOffset sets how far the vantage sits from the anchor and along which axis. The clip
// plane normal is the opposite of the axis.
//
// Parameters:
//   - offset: the distance in world units
//   - axis: the direction from the anchor to the vantage
//
// Returns:
//   - OverlayBuilderOption: option function to apply
func WithOffset(offset float32, axis mgl32.Vec3) OverlayBuilderOption {
	return func(o *Overlay) {
		if axis.Len() == 0 {
			return
		}
		axis = axis.Normalize()
		o.offset = offset
		o.axis = axis
		o.normal = axis.Mul(-1)
	}
}
