package renderer

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/tour"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
)

// sceneClearColors holds the background color of each scene.
var sceneClearColors = map[viewpoint.SceneID]string{
	viewpoint.SceneLobby: "#1C1B1F",
	viewpoint.SceneSiteA: "#9DB4C0",
	viewpoint.SceneSiteB: "#A3B18A",
	viewpoint.SceneSiteC: "#2B2B2B",
}

const fallbackClearColor = "#1A1A1A"

// GPUClipUniform is the GPU-aligned clip plane uniform.
// Size: 32 bytes (WGSL aligned).
type GPUClipUniform struct {
	Plane   [4]float32 // offset  0: xyz normal, w constant
	Enabled uint32     // offset 16: 1 while a clip plane is set
	_pad    [3]uint32  // offset 20: padding to 32 bytes
}

// Bytes returns the uniform's raw memory for upload.
//
// Returns:
//   - []byte: the 32 uniform bytes
func (g *GPUClipUniform) Bytes() []byte {
	return common.StructToBytes(g)
}

// FrameState is the backend-facing view of one tour frame.
type FrameState struct {
	Scene         viewpoint.SceneID
	Section       int
	Reveal        bool
	Transitioning bool
	Materials     int

	ClearColor [4]float32
	Camera     camera.GPUCameraUniform
	Clip       GPUClipUniform
}

// NewFrameState prepares a tour frame for drawing. While the reveal overlay is up the clear
// color is blended toward the soil plane's color by the plane's opacity.
//
// Parameters:
//   - frame: the tour frame
//
// Returns:
//   - FrameState: the prepared state
func NewFrameState(frame tour.Frame) FrameState {
	s := FrameState{
		Scene:         frame.Scene,
		Section:       frame.Section,
		Reveal:        frame.Reveal,
		Transitioning: frame.Transitioning,
		Materials:     len(frame.MaterialClips),
		ClearColor:    sceneClearColor(frame.Scene),
		Camera:        frame.Camera,
	}

	if frame.ClipPlane != nil {
		n := frame.ClipPlane.Normal
		s.Clip = GPUClipUniform{Plane: [4]float32{n.X(), n.Y(), n.Z(), frame.ClipPlane.Constant}, Enabled: 1}
	}

	if frame.Reveal && len(frame.Overlays) > 0 {
		soil := frame.Overlays[0]
		for i := range 3 {
			s.ClearColor[i] += (soil.Color[i] - s.ClearColor[i]) * soil.Opacity
		}
	}
	return s
}

func sceneClearColor(scene viewpoint.SceneID) [4]float32 {
	hex, ok := sceneClearColors[scene]
	if !ok {
		hex = fallbackClearColor
	}
	c, err := common.ParseHexColor(hex)
	if err != nil {
		return [4]float32{0, 0, 0, 1}
	}
	return c
}
