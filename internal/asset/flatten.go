package asset

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/orbitview/pkg/math"
)

// maxNodeDepth bounds the node walk; glTF forbids cycles but files lie.
const maxNodeDepth = 64

// Flatten walks the document's default scene and returns its triangle meshes
// in scene space.
func Flatten(doc *gltf.Document, ref Ref) (*Scene, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrEmptyScene
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: scene %d of %d", ErrInvalidAsset, sceneIdx, len(doc.Scenes))
	}

	root := doc.Scenes[sceneIdx]
	f := &flattener{
		doc:   doc,
		scene: &Scene{Name: root.Name, Source: ref},
	}
	for _, n := range root.Nodes {
		if err := f.walk(int(n), math.Identity(), 0); err != nil {
			return nil, err
		}
	}

	if len(f.scene.Meshes) == 0 {
		return nil, ErrEmptyScene
	}
	return f.scene, nil
}

type flattener struct {
	doc   *gltf.Document
	scene *Scene
}

func (f *flattener) walk(nodeIdx int, parent math.Mat4, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("%w: node hierarchy deeper than %d", ErrInvalidAsset, maxNodeDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(f.doc.Nodes) {
		return fmt.Errorf("%w: node %d out of range", ErrInvalidAsset, nodeIdx)
	}

	node := f.doc.Nodes[nodeIdx]
	world := parent.Mul(localMatrix(node))

	if node.Mesh != nil {
		if err := f.addMesh(int(*node.Mesh), node.Name, world); err != nil {
			return err
		}
	}
	for _, child := range node.Children {
		if err := f.walk(int(child), world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func localMatrix(node *gltf.Node) math.Mat4 {
	if m := node.MatrixOrDefault(); m != gltf.DefaultMatrix {
		return math.Mat4(m)
	}
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	return math.Compose(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
}

func (f *flattener) addMesh(meshIdx int, nodeName string, world math.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(f.doc.Meshes) {
		return fmt.Errorf("%w: mesh %d out of range", ErrInvalidAsset, meshIdx)
	}
	src := f.doc.Meshes[meshIdx]
	normalMat := world.NormalMatrix()

	for i, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		mesh, err := f.readPrimitive(prim)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", src.Name, i, err)
		}
		if mesh == nil {
			continue
		}

		mesh.Name = src.Name
		if mesh.Name == "" {
			mesh.Name = nodeName
		}
		for j, p := range mesh.Positions {
			mesh.Positions[j] = world.TransformPoint(p)
		}
		for j, n := range mesh.Normals {
			mesh.Normals[j] = transformNormal(normalMat, n)
		}

		f.scene.Bounds.Union(BoundsOf(mesh.Positions))
		f.scene.Meshes = append(f.scene.Meshes, mesh)
	}
	return nil
}

// readPrimitive returns nil for primitives without positions.
func (f *flattener) readPrimitive(prim *gltf.Primitive) (*Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	posAcc, err := f.accessor(int(posIdx))
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(f.doc, posAcc, nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		idxAcc, err := f.accessor(int(*prim.Indices))
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(f.doc, idxAcc, nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
		for _, ix := range indices {
			if int(ix) >= len(positions) {
				return nil, fmt.Errorf("%w: index %d exceeds %d vertices", ErrInvalidAsset, ix, len(positions))
			}
		}
	} else {
		indices = SequentialIndices(len(positions))
	}

	var normals [][3]float32
	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normAcc, err := f.accessor(int(normIdx))
		if err != nil {
			return nil, err
		}
		normals, err = modeler.ReadNormal(f.doc, normAcc, nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
	}
	if len(normals) != len(positions) {
		normals = ComputeNormals(positions, indices)
	}

	mesh := &Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		BaseColor: [4]float32{1, 1, 1, 1},
		Metallic:  1,
		Roughness: 1,
	}
	f.applyMaterial(mesh, prim)
	return mesh, nil
}

func (f *flattener) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(f.doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d out of range", ErrInvalidAsset, idx)
	}
	acc := f.doc.Accessors[idx]
	// modeler cannot read accessors without backing data.
	if acc.BufferView == nil && acc.Sparse == nil {
		return nil, fmt.Errorf("%w: accessor %d has no buffer view", ErrInvalidAsset, idx)
	}
	return acc, nil
}

// applyMaterial copies the metallic-roughness factors. Textures are ignored.
func (f *flattener) applyMaterial(mesh *Mesh, prim *gltf.Primitive) {
	if prim.Material == nil {
		return
	}
	matIdx := int(*prim.Material)
	if matIdx < 0 || matIdx >= len(f.doc.Materials) {
		return
	}
	pbr := f.doc.Materials[matIdx].PBRMetallicRoughness
	if pbr == nil {
		return
	}

	c := pbr.BaseColorFactorOrDefault()
	mesh.BaseColor = [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
	mesh.Metallic = float32(pbr.MetallicFactorOrDefault())
	mesh.Roughness = float32(pbr.RoughnessFactorOrDefault())
}

func transformNormal(m [9]float32, n [3]float32) [3]float32 {
	v := math.Vec3{
		X: m[0]*n[0] + m[3]*n[1] + m[6]*n[2],
		Y: m[1]*n[0] + m[4]*n[1] + m[7]*n[2],
		Z: m[2]*n[0] + m[5]*n[1] + m[8]*n[2],
	}.Normalize()
	if v == (math.Vec3{}) {
		return [3]float32{0, 1, 0}
	}
	return v.Array()
}
