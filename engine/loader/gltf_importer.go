package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-tour/engine/model"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter defines the interface for orchestrating a glTF/GLB import.
// It combines the parser and the material extractor to produce a Model.
type gltfImporter interface {
	// Import loads a glTF/GLB file and collects its materials.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - model.Model: the imported model
	//   - error: error if import fails
	Import(path string) (model.Model, error)

	// ImportReader loads a glTF document from a reader and collects its materials.
	// The reader should provide a complete glTF JSON or GLB binary stream.
	//
	// Parameters:
	//   - r: the reader providing glTF/GLB data
	//   - isGLB: true if the reader provides GLB binary data, false for glTF JSON
	//   - label: recorded as the model's source and used as a naming fallback
	//
	// Returns:
	//   - model.Model: the imported model
	//   - error: error if import fails
	ImportReader(r io.Reader, isGLB bool, label string) (model.Model, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (model.Model, error) {
	parser := newGLTFParser(filepath.Dir(path))
	if err := parser.ParseFile(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return imp.importFromParser(parser, path)
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader, isGLB bool, label string) (model.Model, error) {
	parser := newGLTFParser("")
	if err := parser.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}

	return imp.importFromParser(parser, label)
}

// importFromParser collects materials from a parser that has already loaded a document.
//
// Parameters:
//   - parser: the glTF parser that has already loaded a document
//   - source: file path or label, used as a fallback for model naming
func (imp *gltfImporterImpl) importFromParser(parser *gltfParser, source string) (model.Model, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	collected, err := newGLTFMaterialExtractor(parser).Collect()
	if err != nil {
		return nil, fmt.Errorf("material collection failed: %w", err)
	}

	return model.NewModel(
		model.WithName(gltfExtractModelName(doc, source)),
		model.WithSource(source),
		model.WithMaterials(collected.materials...),
		model.WithCounts(collected.meshCount, collected.primitiveCount),
		model.WithBoundingRadius(collected.boundingRadius),
	), nil
}

// --- Helper Functions ---

// gltfExtractModelName derives a model name from the default scene or a file path fallback.
func gltfExtractModelName(doc *gltfDocument, fallbackPath string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}

	if fallbackPath != "" {
		base := filepath.Base(fallbackPath)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}

	return "unnamed_model"
}
