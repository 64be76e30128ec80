// Package scene assembles the declarative description of one frame.
//
// Build is a pure function of the compiled-in RenderConfig, the model
// slot's load state and the slot's transform. The host calls it every
// frame; when the slot resolves, the next description carries the model in
// place of the placeholder.
package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/internal/slot"
	"github.com/Faultbox/orbitview/pkg/math"
)

var (
	unitBoxBounds   = asset.BoundsOf(unitBox.Positions)
	unitPlaneBounds = asset.BoundsOf(unitPlane.Positions)
)

// Description is everything the renderer needs to draw one frame.
type Description struct {
	Camera      CameraConfig
	Controls    Controls
	Shadows     ShadowConfig
	ToneMapping ToneMapping
	Antialias   bool
	Samples     int
	Background  Color
	Environment Environment
	Lights      []Light
	Overlay     Overlay

	// Nodes holds the ground plane followed by Slot, when present.
	Nodes []*Node

	// Slot is the suspension boundary's subtree: the placeholder while
	// loading, the model once ready, nil after a failure.
	Slot    *Node
	Phase   slot.Phase
	Failure error
}

// Build assembles the frame description.
func Build(cfg RenderConfig, state slot.State, model slot.Transform) (*Description, error) {
	env, err := LookupEnvironment(cfg.Environment)
	if err != nil {
		return nil, err
	}

	desc := &Description{
		Camera:      cfg.Camera,
		Controls:    cfg.Controls,
		Shadows:     cfg.Shadows,
		ToneMapping: cfg.ToneMapping,
		Antialias:   cfg.Antialias,
		Samples:     cfg.Samples,
		Background:  cfg.Background,
		Environment: env,
		Lights:      append([]Light(nil), cfg.Lights...),
		Overlay: Overlay{
			Title: cfg.Overlay.Title,
			Lines: append([]string(nil), cfg.Overlay.Lines...),
		},
		Nodes: []*Node{groundNode(cfg.Ground)},
		Phase: state.Phase,
	}

	switch state.Phase {
	case slot.Loading:
		desc.Slot = Placeholder()
	case slot.Ready:
		if state.Scene == nil {
			return nil, errors.New("ready state without a scene")
		}
		desc.Slot = ModelNode(state.Scene, model)
	case slot.Failed:
		desc.Failure = state.Err
		desc.Overlay.Lines = append(desc.Overlay.Lines, FailureLine(state.Err))
	default:
		return nil, fmt.Errorf("unknown slot phase %d", state.Phase)
	}
	if desc.Slot != nil {
		desc.Nodes = append(desc.Nodes, desc.Slot)
	}
	return desc, nil
}

// FailureLine is the overlay text shown when the model could not load.
func FailureLine(err error) string {
	if err == nil {
		return "! Model failed to load"
	}
	return "! Model failed to load: " + err.Error()
}

// Placeholder is shown while the model loads: a unit cube scaled by 5,
// orange, at the origin.
func Placeholder() *Node {
	return &Node{
		Name:      "placeholder",
		Mesh:      Box(),
		Material:  Material{Color: placeholderColor, Opacity: 1, Roughness: 1},
		Transform: UniformScale(5),
		Bounds:    unitBoxBounds,
	}
}

// ModelNode wraps a loaded scene in a node placed by t. Meshes carry their
// world transforms already, so children use the identity.
func ModelNode(s *asset.Scene, t slot.Transform) *Node {
	root := &Node{
		Name: s.Name,
		Transform: Transform{
			Position: t.Position,
			Rotation: math.Vec3{Y: t.RotationY},
			Scale:    math.Vec3{X: t.Scale, Y: t.Scale, Z: t.Scale},
		},
		Bounds: s.Bounds,
	}
	root.Children = make([]*Node, 0, len(s.Meshes))
	for _, m := range s.Meshes {
		root.Children = append(root.Children, &Node{
			Name:          m.Name,
			Mesh:          m,
			Material:      MaterialOf(m),
			Transform:     IdentityTransform(),
			CastShadow:    true,
			ReceiveShadow: true,
		})
	}
	return root
}

func groundNode(g GroundConfig) *Node {
	return &Node{
		Name:     "ground",
		Mesh:     Plane(),
		Material: Material{Color: g.Color, Opacity: 1, Roughness: 1},
		Transform: Transform{
			Position: g.Position,
			Rotation: g.Rotation,
			Scale:    math.Vec3{X: g.Width, Y: g.Height, Z: 1},
		},
		ReceiveShadow: true,
		Bounds:        unitPlaneBounds,
	}
}
