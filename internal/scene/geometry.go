package scene

import "github.com/Faultbox/orbitview/internal/asset"

// Shared primitive meshes. They are never mutated after init.
var (
	unitBox   = newBox()
	unitPlane = newPlane()
)

// Box returns the unit cube centred on the origin.
func Box() *asset.Mesh {
	return unitBox
}

// Plane returns the unit plane in XY facing +Z.
func Plane() *asset.Mesh {
	return unitPlane
}

func newBox() *asset.Mesh {
	type face struct {
		normal [3]float32
		u, v   [3]float32
	}
	faces := []face{
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
	}
	m := &asset.Mesh{
		Name:      "box",
		BaseColor: [4]float32{1, 1, 1, 1},
		Roughness: 1,
	}
	corners := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	for _, f := range faces {
		base := uint32(len(m.Positions))
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = f.normal[i]*0.5 + f.u[i]*c[0] + f.v[i]*c[1]
			}
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, f.normal)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

func newPlane() *asset.Mesh {
	n := [3]float32{0, 0, 1}
	return &asset.Mesh{
		Name: "plane",
		Positions: [][3]float32{
			{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0}, {-0.5, 0.5, 0},
		},
		Normals:   [][3]float32{n, n, n, n},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
		BaseColor: [4]float32{1, 1, 1, 1},
		Roughness: 1,
	}
}
