package asset

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// triangleGLB returns a GLB holding one triangle under a translated, scaled
// parent node with an orange-ish material.
func triangleGLB(t *testing.T) []byte {
	t.Helper()

	var bin bytes.Buffer
	for _, v := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		binary.Write(&bin, binary.LittleEndian, math.Float32bits(v))
	}
	for _, ix := range []uint16{0, 1, 2} {
		binary.Write(&bin, binary.LittleEndian, ix)
	}

	doc := `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "robot", "nodes": [0]}],
  "nodes": [
    {"name": "base", "translation": [0, 2, 0], "scale": [2, 2, 2], "children": [1]},
    {"name": "arm", "mesh": 0}
  ],
  "meshes": [{"name": "link", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}],
  "materials": [{"pbrMetallicRoughness": {"baseColorFactor": [1, 0.5, 0, 1], "metallicFactor": 0.25, "roughnessFactor": 0.75}}],
  "buffers": [{"byteLength": 42}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ]
}`
	return buildGLB([]byte(doc), bin.Bytes())
}

// matrixGLB returns the same triangle under a node placed by a matrix:
// uniform scale 2 then translation (1, 2, 3).
func matrixGLB(t *testing.T) []byte {
	t.Helper()

	var bin bytes.Buffer
	for _, v := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		binary.Write(&bin, binary.LittleEndian, math.Float32bits(v))
	}

	doc := `{
  "asset": {"version": "2.0"},
  "scenes": [{"nodes": [0]}],
  "nodes": [{"name": "placed", "mesh": 0, "matrix": [2, 0, 0, 0, 0, 2, 0, 0, 0, 0, 2, 0, 1, 2, 3, 1]}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
  "buffers": [{"byteLength": 36}],
  "bufferViews": [{"buffer": 0, "byteOffset": 0, "byteLength": 36}],
  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]}]
}`
	return buildGLB([]byte(doc), bin.Bytes())
}

// unbackedGLB returns a GLB whose POSITION accessor has no buffer view.
func unbackedGLB() []byte {
	doc := `{
  "asset": {"version": "2.0"},
  "scenes": [{"nodes": [0]}],
  "nodes": [{"mesh": 0}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
  "accessors": [{"componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [0, 0, 0]}]
}`
	return buildGLB([]byte(doc), nil)
}

// emptySceneGLB returns a GLB whose only scene has no meshes.
func emptySceneGLB() []byte {
	doc := `{"asset": {"version": "2.0"}, "scene": 0, "scenes": [{"nodes": [0]}], "nodes": [{"name": "empty"}]}`
	return buildGLB([]byte(doc), nil)
}

func buildGLB(jsonChunk, binChunk []byte) []byte {
	pad := func(b []byte, fill byte) []byte {
		for len(b)%4 != 0 {
			b = append(b, fill)
		}
		return b
	}
	jsonChunk = pad(append([]byte(nil), jsonChunk...), ' ')
	binChunk = pad(append([]byte(nil), binChunk...), 0)

	total := 12 + 8 + len(jsonChunk)
	if len(binChunk) > 0 {
		total += 8 + len(binChunk)
	}

	var out bytes.Buffer
	out.WriteString("glTF")
	binary.Write(&out, binary.LittleEndian, uint32(2))
	binary.Write(&out, binary.LittleEndian, uint32(total))

	binary.Write(&out, binary.LittleEndian, uint32(len(jsonChunk)))
	out.WriteString("JSON")
	out.Write(jsonChunk)

	if len(binChunk) > 0 {
		binary.Write(&out, binary.LittleEndian, uint32(len(binChunk)))
		out.Write([]byte{'B', 'I', 'N', 0})
		out.Write(binChunk)
	}
	return out.Bytes()
}
