package tour

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/reveal"
	"github.com/Carmen-Shannon/oxy-tour/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is the tour's output for one tick. It is a value snapshot: nothing in it aliases
// state the next tick will mutate.
type Frame struct {
	NowMs   float64
	Scene   viewpoint.SceneID
	Section int

	Position      mgl32.Vec3
	LookAt        mgl32.Vec3
	Orientation   mgl32.Quat
	View          mgl32.Mat4
	Camera        camera.GPUCameraUniform
	Transitioning bool

	Reveal    bool
	ClipPlane *common.Plane
	// MaterialClips lists the clip planes of every registered material, in registration order.
	MaterialClips []MaterialClip
	// Overlays holds the reveal planes, soil first; empty unless Reveal is set.
	Overlays []reveal.Plane
}

// MaterialClip is one material's clip state as of the frame.
type MaterialClip struct {
	Material string
	Version  uint64
	Planes   []common.Plane
}

func (t *Tour) frame(nowMs float64, pose camera.Pose) Frame {
	cam := t.rig.Camera()
	state := t.overlay.State()

	mats := t.registry.Materials()
	clips := make([]MaterialClip, len(mats))
	for i, m := range mats {
		clips[i] = MaterialClip{Material: m.Name(), Version: m.Version(), Planes: m.ClipPlanes()}
	}

	return Frame{
		NowMs:         nowMs,
		Scene:         t.appliedScene,
		Section:       t.appliedSection,
		Position:      pose.Position,
		LookAt:        pose.LookAt,
		Orientation:   cam.Orientation(),
		View:          cam.ViewMatrix(),
		Camera:        cam.Uniform(),
		Transitioning: pose.Transitioning,
		Reveal:        state.Active,
		ClipPlane:     state.ClipPlane,
		MaterialClips: clips,
		Overlays:      t.overlay.Planes(),
	}
}
