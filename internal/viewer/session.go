// Package viewer drives one model viewport frame by frame.
//
// A Session owns the orbit camera, its controls and the model slot. Frame
// polls the slot and asks the scene package for the frame's description;
// it touches no GL state, so the whole load sequence can be exercised
// without a window.
package viewer

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/internal/slot"
)

// Session is the per-viewport state. Like the slot it wraps, it belongs to
// the render thread.
type Session struct {
	render   scene.RenderConfig
	slot     *slot.Slot
	camera   *camera.OrbitCamera
	controls *camera.OrbitControls
	log      *zap.Logger

	frames uint64
}

// ModelTransform returns the slot transform for the configured model
// placement and spin rate.
func ModelTransform(render scene.RenderConfig, spinRate float32) slot.Transform {
	return slot.Transform{
		Scale:    render.Model.Scale,
		Position: render.Model.Position,
		SpinRate: spinRate,
	}
}

// NewSession creates a session showing ref through loader.
func NewSession(render scene.RenderConfig, ref asset.Ref, loader asset.Loader, spinRate float32) *Session {
	cam := camera.NewOrbitCamera(render.Camera.Position, render.Controls.Target, render.Camera.FOV)
	cam.Near = render.Camera.Near
	cam.Far = render.Camera.Far

	controls := camera.NewOrbitControls(cam, camera.Limits{
		EnablePan:     render.Controls.EnablePan,
		EnableZoom:    render.Controls.EnableZoom,
		EnableRotate:  render.Controls.EnableRotate,
		MinDistance:   render.Controls.MinDistance,
		MaxDistance:   render.Controls.MaxDistance,
		MinPolarAngle: render.Controls.MinPolarAngle,
		MaxPolarAngle: render.Controls.MaxPolarAngle,
	})

	return &Session{
		render:   render,
		slot:     slot.New(ref, loader, ModelTransform(render, spinRate)),
		camera:   cam,
		controls: controls,
		log:      logger.Named("viewer"),
	}
}

// Mount starts the model load. Repeated calls are harmless.
func (s *Session) Mount(ctx context.Context) {
	s.slot.Mount(ctx)
}

// Frame advances the session by dt seconds and returns what to draw.
func (s *Session) Frame(dt float32) (*scene.Description, error) {
	s.frames++
	st, changed := s.slot.Poll()
	if changed {
		s.log.Debug("model slot settled",
			zap.Stringer("phase", st.Phase),
			zap.Uint64("frame", s.frames),
		)
	}
	s.slot.Update(dt)
	return scene.Build(s.render, st, s.slot.Transform())
}

// Resize tells the controls the new viewport size.
func (s *Session) Resize(width, height int) {
	s.controls.SetViewport(width, height)
}

// Camera returns the orbit camera.
func (s *Session) Camera() *camera.OrbitCamera {
	return s.camera
}

// Controls returns the pointer controls.
func (s *Session) Controls() *camera.OrbitControls {
	return s.controls
}

// Slot returns the model slot.
func (s *Session) Slot() *slot.Slot {
	return s.slot
}

// RenderConfig returns the compiled-in configuration the session uses.
func (s *Session) RenderConfig() scene.RenderConfig {
	return s.render
}

// Frames returns the number of frames produced so far.
func (s *Session) Frames() uint64 {
	return s.frames
}
