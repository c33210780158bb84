package viewpoint

import (
	"fmt"
	"strings"
)

// SceneID identifies one of the tour's scenes. The zero value is the lobby.
type SceneID int

const (
	// SceneLobby is the entry hall with framed exhibits for each site.
	SceneLobby SceneID = iota
	// SceneSiteA is the first detail site (Redoubt 4). It is the only scene with GPR data.
	SceneSiteA
	// SceneSiteB is the second detail site (Redoubt 5).
	SceneSiteB
	// SceneSiteC is the placeholder site shown as "coming soon".
	SceneSiteC
)

// Scenes lists every SceneID in declaration order.
var Scenes = []SceneID{SceneLobby, SceneSiteA, SceneSiteB, SceneSiteC}

var sceneNames = map[SceneID]string{
	SceneLobby: "lobby",
	SceneSiteA: "redoubt-4",
	SceneSiteB: "redoubt-5",
	SceneSiteC: "coming-soon",
}

// String returns the scene's canonical identifier, as used in config files.
func (s SceneID) String() string {
	if name, ok := sceneNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scene(%d)", int(s))
}

// Valid reports whether s is one of the declared scenes.
func (s SceneID) Valid() bool {
	_, ok := sceneNames[s]
	return ok
}

// Detail reports whether s is one of the site scenes rather than the lobby.
// Detail scenes invert the vertical parallax axis.
func (s SceneID) Detail() bool {
	return s != SceneLobby
}

// SectionCount returns how many sections the external scroll counter cycles through for s.
// The lobby declares seven sections, every site four.
func (s SceneID) SectionCount() int {
	if s == SceneLobby {
		return 7
	}
	return 4
}

// ParseSceneID converts a scene identifier into a SceneID. Matching is case-insensitive and
// accepts the generic aliases "site-a", "site-b" and "site-c".
//
// Parameters:
//   - name: the scene identifier
//
// Returns:
//   - SceneID: the parsed scene
//   - error: error if the name matches no scene
func ParseSceneID(name string) (SceneID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "site-a":
		return SceneSiteA, nil
	case "site-b":
		return SceneSiteB, nil
	case "site-c":
		return SceneSiteC, nil
	}
	for id, s := range sceneNames {
		if s == n {
			return id, nil
		}
	}
	return SceneLobby, fmt.Errorf("unknown scene %q", name)
}
