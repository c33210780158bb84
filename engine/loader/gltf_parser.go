package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Common errors returned by the parser
var (
	errInvalidGLTFVersion   = errors.New("invalid glTF version: must be 2.0")
	errInvalidGLBMagic      = errors.New("invalid GLB magic number")
	errInvalidGLBVersion    = errors.New("invalid GLB version: must be 2")
	errGLBTooSmall          = errors.New("GLB file too small")
	errMissingJSONChunk     = errors.New("GLB file missing JSON chunk")
	errInvalidBufferURI     = errors.New("invalid buffer URI")
	errBufferSizeMismatch   = errors.New("buffer size mismatch")
	errUnsupportedExtension = errors.New("unsupported required extension")
)

// supportedExtensions lists the required extensions the loader tolerates. Material collection
// does not decode geometry, so compressed-geometry extensions are harmless.
var supportedExtensions = map[string]bool{
	"KHR_materials_unlit":        true,
	"KHR_texture_transform":      true,
	"KHR_draco_mesh_compression": true,
	"EXT_meshopt_compression":    true,
}

// gltfParser decodes a glTF JSON document or GLB container and checks that every buffer it
// declares is present and large enough. Buffer contents are never kept: the tour only needs
// the document itself.
type gltfParser struct {
	baseDir  string
	document *gltfDocument
	binSize  int
	hasBin   bool
}

// newGLTFParser creates a parser. Relative URIs resolve against baseDir.
//
// Parameters:
//   - baseDir: the directory holding the document; "" for the working directory
//
// Returns:
//   - *gltfParser: the parser
func newGLTFParser(baseDir string) *gltfParser {
	return &gltfParser{baseDir: baseDir}
}

// Document returns the decoded document, or nil before a successful parse.
func (p *gltfParser) Document() *gltfDocument {
	return p.document
}

// BaseDir returns the directory relative URIs resolve against.
func (p *gltfParser) BaseDir() string {
	return p.baseDir
}

// ParseFile reads and parses the file at path. GLB is detected by extension or by its magic
// number, so a mislabelled binary file still loads.
//
// Parameters:
//   - path: path to the glTF or GLB file
//
// Returns:
//   - error: error if reading or parsing fails
func (p *gltfParser) ParseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	isGLB := strings.EqualFold(filepath.Ext(path), ".glb") ||
		len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic
	return p.Parse(data, isGLB)
}

// ParseReader reads everything from r and parses it.
//
// Parameters:
//   - r: reader containing glTF JSON or GLB data
//   - isGLB: true if the data is in GLB format
//
// Returns:
//   - error: error if reading or parsing fails
func (p *gltfParser) ParseReader(r io.Reader, isGLB bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	return p.Parse(data, isGLB)
}

// Parse decodes data as a GLB container or a JSON document.
//
// Parameters:
//   - data: the raw file contents
//   - isGLB: true if data is a GLB container
//
// Returns:
//   - error: error if the data is not a valid glTF 2.0 asset
func (p *gltfParser) Parse(data []byte, isGLB bool) error {
	if !isGLB {
		return p.decodeDocument(data)
	}
	jsonChunk, err := p.splitGLB(data)
	if err != nil {
		return err
	}
	return p.decodeDocument(jsonChunk)
}

// splitGLB walks the GLB chunks, returning the JSON chunk and recording the BIN chunk size.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
func (p *gltfParser) splitGLB(data []byte) ([]byte, error) {
	if len(data) < 12 {
		return nil, errGLBTooSmall
	}
	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read GLB header: %w", err)
	}
	switch {
	case header.Magic != gltfGLBMagic:
		return nil, errInvalidGLBMagic
	case header.Version != gltfGLBVersion:
		return nil, errInvalidGLBVersion
	}

	var jsonChunk []byte
	for {
		var chunk gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}
		if int64(chunk.ChunkLength) > int64(r.Len()) {
			return nil, fmt.Errorf("chunk of %d bytes overruns the file", chunk.ChunkLength)
		}

		switch chunk.ChunkType {
		case gltfGLBChunkJSON:
			jsonChunk = make([]byte, chunk.ChunkLength)
			if _, err := io.ReadFull(r, jsonChunk); err != nil {
				return nil, fmt.Errorf("failed to read JSON chunk: %w", err)
			}
		case gltfGLBChunkBIN:
			p.hasBin, p.binSize = true, int(chunk.ChunkLength)
			fallthrough
		default:
			if _, err := r.Seek(int64(chunk.ChunkLength), io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("failed to skip chunk: %w", err)
			}
		}
	}

	if jsonChunk == nil {
		return nil, errMissingJSONChunk
	}
	return jsonChunk, nil
}

// decodeDocument unmarshals the JSON, checks the version and required extensions and
// verifies the buffers.
func (p *gltfParser) decodeDocument(data []byte) error {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse glTF JSON: %w", err)
	}

	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return errInvalidGLTFVersion
	}
	for _, ext := range doc.ExtensionsRequired {
		if !supportedExtensions[ext] {
			return fmt.Errorf("%w: %s", errUnsupportedExtension, ext)
		}
	}

	for i, buf := range doc.Buffers {
		size, err := p.bufferSize(i, buf)
		if err != nil {
			return fmt.Errorf("failed to load buffers: buffer %d: %w", i, err)
		}
		if size < buf.ByteLength {
			return fmt.Errorf("failed to load buffers: buffer %d: %w", i, errBufferSizeMismatch)
		}
	}

	p.document = &doc
	return nil
}

// bufferSize returns how many bytes are available for a buffer: the GLB BIN chunk for an
// index-0 buffer without a URI, a decoded data URI, or an external file's size.
func (p *gltfParser) bufferSize(index int, buf gltfBuffer) (int, error) {
	switch {
	case buf.URI == "":
		if index == 0 && p.hasBin {
			return p.binSize, nil
		}
		return 0, fmt.Errorf("no URI and no GLB binary chunk")
	case strings.HasPrefix(buf.URI, "data:"):
		data, err := loadDataURI(buf.URI)
		return len(data), err
	default:
		info, err := os.Stat(filepath.Join(p.baseDir, buf.URI))
		if err != nil {
			return 0, fmt.Errorf("failed to load buffer file %q: %w", buf.URI, err)
		}
		return int(info.Size()), nil
	}
}

// loadDataURI decodes a base64 data URI.
// Format: data:[<mediatype>][;base64],<data>
func loadDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errInvalidBufferURI
	}
	if !strings.HasSuffix(header, ";base64") && header != "base64" {
		return nil, fmt.Errorf("unsupported data URI encoding: %s", header)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}
