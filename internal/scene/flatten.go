package scene

import (
	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/pkg/math"
)

// DrawItem is one mesh ready to draw.
type DrawItem struct {
	Name          string
	Mesh          *asset.Mesh
	Material      Material
	World         math.Mat4
	CastShadow    bool
	ReceiveShadow bool
}

// Flatten walks the description's nodes depth first and returns every
// drawable mesh with its world matrix.
func Flatten(desc *Description) []DrawItem {
	var items []DrawItem
	for _, n := range desc.Nodes {
		items = flattenNode(items, n, math.Identity())
	}
	return items
}

func flattenNode(items []DrawItem, n *Node, parent math.Mat4) []DrawItem {
	world := parent.Mul(n.Transform.Matrix())
	if n.Mesh != nil {
		items = append(items, DrawItem{
			Name:          n.Name,
			Mesh:          n.Mesh,
			Material:      n.Material,
			World:         world,
			CastShadow:    n.CastShadow,
			ReceiveShadow: n.ReceiveShadow,
		})
	}
	for _, c := range n.Children {
		items = flattenNode(items, c, world)
	}
	return items
}

// Bounds returns the world-space bounds of every node in the description.
func (d *Description) Bounds() asset.Bounds {
	var b asset.Bounds
	for _, n := range d.Nodes {
		nodeBounds(&b, n, math.Identity())
	}
	return b
}

func nodeBounds(b *asset.Bounds, n *Node, parent math.Mat4) {
	world := parent.Mul(n.Transform.Matrix())
	if !n.Bounds.Empty() {
		b.Union(n.Bounds.Transform(world))
		return
	}
	if n.Mesh != nil {
		b.Union(asset.BoundsOf(n.Mesh.Positions).Transform(world))
	}
	for _, c := range n.Children {
		nodeBounds(b, c, world)
	}
}

// SlotBounds returns the world-space bounds of the slot node, or empty
// bounds when there is none.
func (d *Description) SlotBounds() asset.Bounds {
	var b asset.Bounds
	if d.Slot != nil {
		nodeBounds(&b, d.Slot, math.Identity())
	}
	return b
}
