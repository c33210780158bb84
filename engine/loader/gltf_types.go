// gltf_types.go holds the part of the glTF 2.0 schema the tour reads: the scene graph down to
// primitives, material appearance, and enough of the buffer layout to validate the file and
// bound the geometry. Everything else in a document is ignored by the decoder.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package loader

// gltfDocument is the root object. Scene is the default scene index, if any.
type gltfDocument struct {
	Asset              gltfAsset      `json:"asset"`
	Scene              *int           `json:"scene,omitempty"`
	Scenes             []gltfScene    `json:"scenes,omitempty"`
	Nodes              []gltfNode     `json:"nodes,omitempty"`
	Meshes             []gltfMesh     `json:"meshes,omitempty"`
	Accessors          []gltfAccessor `json:"accessors,omitempty"`
	Buffers            []gltfBuffer   `json:"buffers,omitempty"`
	Materials          []gltfMaterial `json:"materials,omitempty"`
	Textures           []gltfTexture  `json:"textures,omitempty"`
	Images             []gltfImage    `json:"images,omitempty"`
	ExtensionsRequired []string       `json:"extensionsRequired,omitempty"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// gltfScene lists the root nodes of one scene.
type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// gltfNode is a node of the hierarchy. Transforms are not read: the reveal clip plane is
// placed in world space and the model is assumed to be authored in it.
type gltfNode struct {
	Name     string `json:"name,omitempty"`
	Children []int  `json:"children,omitempty"`
	Mesh     *int   `json:"mesh,omitempty"`
}

type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
}

// gltfPrimitive maps attribute semantics to accessor indices. A nil Material means the
// glTF default material.
type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Material   *int           `json:"material,omitempty"`
}

const gltfAttributePosition = "POSITION"

// gltfAccessor is read for its element type and bounds only; POSITION accessors are required
// by the format to carry min and max.
type gltfAccessor struct {
	Type string    `json:"type"`
	Max  []float32 `json:"max,omitempty"`
	Min  []float32 `json:"min,omitempty"`
}

// gltfBuffer is a binary blob, either external, a data URI, or the GLB BIN chunk when URI is
// empty.
type gltfBuffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
}

type gltfMaterial struct {
	Name        string                    `json:"name,omitempty"`
	Pbr         *gltfPbrMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	DoubleSided bool                      `json:"doubleSided,omitempty"`
}

type gltfPbrMetallicRoughness struct {
	BaseColorFactor  *[4]float32      `json:"baseColorFactor,omitempty"`
	BaseColorTexture *gltfTextureInfo `json:"baseColorTexture,omitempty"`
}

type gltfTextureInfo struct {
	Index int `json:"index"`
}

type gltfTexture struct {
	Source *int `json:"source,omitempty"`
}

// gltfImage is either an external or data URI, or a buffer view inside the file.
type gltfImage struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
}

// gltfGLBHeader is the 12-byte GLB file header.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
type gltfGLBHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// gltfGLBChunkHeader precedes each GLB chunk.
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

const (
	gltfGLBMagic     = 0x46546C67 // "glTF"
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON"
	gltfGLBChunkBIN  = 0x004E4942 // "BIN\0"
)
