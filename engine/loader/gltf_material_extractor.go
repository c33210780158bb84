package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-tour/engine/material"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// defaultMaterialName names the material shared by primitives that reference none.
const defaultMaterialName = "default"

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	parser *gltfParser
}

// gltfCollection is everything the extractor gathers from one document.
type gltfCollection struct {
	materials      []material.Material
	meshCount      int
	primitiveCount int
	boundingRadius float32
}

// gltfMaterialExtractor walks the default scene of a parsed document and collects the materials
// its primitives reference. Each glTF material becomes one material.Material no matter how many
// primitives share it, and every collected material is double-sided.
type gltfMaterialExtractor interface {
	// Collect walks the default scene and gathers materials, mesh statistics and bounds.
	// Documents without scenes contribute every mesh.
	//
	// Returns:
	//   - gltfCollection: the collected materials in first-use order, plus statistics
	//   - error: error if a primitive references a material or node out of range
	Collect() (gltfCollection, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a new material extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfMaterialExtractor: the material extractor
func newGLTFMaterialExtractor(parser *gltfParser) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{parser: parser}
}

func (e *gltfMaterialExtractorImpl) Collect() (gltfCollection, error) {
	doc := e.parser.Document()
	if doc == nil {
		return gltfCollection{}, fmt.Errorf("no document loaded")
	}

	meshes, err := e.sceneMeshes(doc)
	if err != nil {
		return gltfCollection{}, err
	}

	var out gltfCollection
	byIndex := make(map[int]material.Material)
	var fallback material.Material

	for _, mi := range meshes {
		mesh := &doc.Meshes[mi]
		out.meshCount++
		for pi, prim := range mesh.Primitives {
			out.primitiveCount++
			out.boundingRadius = math32.Max(out.boundingRadius, primitiveRadius(doc, prim))

			if prim.Material == nil {
				if fallback == nil {
					fallback = material.NewMaterial(
						material.WithName(defaultMaterialName),
						material.WithDoubleSided(true),
					)
					out.materials = append(out.materials, fallback)
				}
				continue
			}

			idx := *prim.Material
			if idx < 0 || idx >= len(doc.Materials) {
				return gltfCollection{}, fmt.Errorf("mesh %d primitive %d: material index %d out of range", mi, pi, idx)
			}
			if _, ok := byIndex[idx]; ok {
				continue
			}
			mat := e.convert(doc, idx)
			byIndex[idx] = mat
			out.materials = append(out.materials, mat)
		}
	}

	return out, nil
}

// sceneMeshes returns the distinct mesh indices reachable from the default scene, in
// depth-first node order.
func (e *gltfMaterialExtractorImpl) sceneMeshes(doc *gltfDocument) ([]int, error) {
	if len(doc.Scenes) == 0 {
		all := make([]int, len(doc.Meshes))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("default scene %d out of range", sceneIdx)
	}

	var meshes []int
	seenMesh := make(map[int]bool)
	visited := make(map[int]bool)

	var walk func(ni int) error
	walk = func(ni int) error {
		if ni < 0 || ni >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", ni)
		}
		if visited[ni] {
			return nil
		}
		visited[ni] = true

		node := &doc.Nodes[ni]
		if node.Mesh != nil {
			mi := *node.Mesh
			if mi < 0 || mi >= len(doc.Meshes) {
				return fmt.Errorf("node %d: mesh index %d out of range", ni, mi)
			}
			if !seenMesh[mi] {
				seenMesh[mi] = true
				meshes = append(meshes, mi)
			}
		}
		for _, child := range node.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range doc.Scenes[sceneIdx].Nodes {
		if err := walk(root); err != nil {
			return nil, err
		}
	}
	return meshes, nil
}

// convert builds the material for glTF material idx. The glTF doubleSided flag is ignored:
// every collected material renders both faces so clipped interiors stay visible.
func (e *gltfMaterialExtractorImpl) convert(doc *gltfDocument, idx int) material.Material {
	src := &doc.Materials[idx]

	name := src.Name
	if name == "" {
		name = fmt.Sprintf("material_%d", idx)
	}

	opts := []material.MaterialBuilderOption{
		material.WithName(name),
		material.WithDoubleSided(true),
	}
	if pbr := src.Pbr; pbr != nil {
		if pbr.BaseColorFactor != nil {
			opts = append(opts, material.WithBaseColor(*pbr.BaseColorFactor))
		}
		if pbr.BaseColorTexture != nil {
			if path := e.texturePath(doc, pbr.BaseColorTexture.Index); path != "" {
				opts = append(opts, material.WithTexturePath(path))
			}
		}
	}
	return material.NewMaterial(opts...)
}

// texturePath resolves a texture index to the file its image lives in. Embedded images
// (data URIs or buffer views) have no path.
func (e *gltfMaterialExtractorImpl) texturePath(doc *gltfDocument, texIdx int) string {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return ""
	}
	src := doc.Textures[texIdx].Source
	if src == nil || *src < 0 || *src >= len(doc.Images) {
		return ""
	}
	img := &doc.Images[*src]
	if img.URI == "" || strings.HasPrefix(img.URI, "data:") {
		return ""
	}
	return filepath.Join(e.parser.BaseDir(), img.URI)
}

// primitiveRadius returns the radius around the origin covering the primitive's POSITION
// accessor bounds, or 0 when the accessor carries none.
func primitiveRadius(doc *gltfDocument, prim gltfPrimitive) float32 {
	ai, ok := prim.Attributes[gltfAttributePosition]
	if !ok || ai < 0 || ai >= len(doc.Accessors) {
		return 0
	}
	acc := &doc.Accessors[ai]
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return 0
	}
	var extent mgl32.Vec3
	for i := range 3 {
		extent[i] = math32.Max(math32.Abs(acc.Min[i]), math32.Abs(acc.Max[i]))
	}
	return extent.Len()
}
