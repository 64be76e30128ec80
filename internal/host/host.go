// Package host runs the viewer in an SDL2 window with an OpenGL renderer.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/internal/config"
	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/engine/debug"
	"github.com/Faultbox/orbitview/internal/engine/input"
	"github.com/Faultbox/orbitview/internal/engine/overlay"
	"github.com/Faultbox/orbitview/internal/engine/renderer"
	"github.com/Faultbox/orbitview/internal/engine/screenshot"
	"github.com/Faultbox/orbitview/internal/engine/window"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/internal/slot"
	"github.com/Faultbox/orbitview/internal/viewer"
)

// Host owns the window, the GL resources and the frame loop.
type Host struct {
	cfg    *config.Config
	render scene.RenderConfig
	log    *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	overlay  *overlay.Overlay
	bounds   *debug.BoundsRenderer
	input    *input.Input
	shots    *screenshot.Capture
	session  *viewer.Session

	phase           slot.Phase
	failureReported bool
	wantScreenshot  bool
	showBounds      bool
}

// New creates the window and renderer and prepares a session for the
// configured model. The model is not requested until Run.
func New(cfg *config.Config, render scene.RenderConfig, loader asset.Loader) (*Host, error) {
	h := &Host{
		cfg:    cfg,
		render: render,
		log:    logger.Named("host"),
		input:  input.New(),
		shots:  screenshot.New(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}

	samples := 0
	if render.Antialias {
		samples = render.Samples
	}
	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    samples,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	h.window = win

	fbW, fbH := win.DrawableSize()
	h.renderer, err = renderer.New(renderer.Config{
		Width:       fbW,
		Height:      fbH,
		Multisample: win.Multisampled(),
	})
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	h.overlay, err = overlay.New(overlayContent(render.Overlay, false))
	if err != nil {
		h.renderer.Close()
		win.Close()
		return nil, fmt.Errorf("creating overlay: %w", err)
	}

	h.bounds, err = debug.NewBoundsRenderer()
	if err != nil {
		h.overlay.Destroy()
		h.renderer.Close()
		win.Close()
		return nil, fmt.Errorf("creating bounds renderer: %w", err)
	}

	win.SetTitle(windowTitle(cfg.Window.Title, slot.Loading))
	h.session = viewer.NewSession(render, asset.NewRef(cfg.Model.URL), loader, cfg.Model.SpinRate)
	h.resize()
	return h, nil
}

// Run mounts the model slot and renders until the window closes or ctx is
// cancelled.
func (h *Host) Run(ctx context.Context) error {
	h.log.Info("starting frame loop", zap.String("model", h.cfg.Model.URL))
	h.session.Mount(ctx)

	last := time.Now()
	fpsStart := last
	fpsFrames := 0

	for {
		if err := ctx.Err(); err != nil {
			h.log.Info("context cancelled, stopping")
			return nil
		}

		if h.input.Update() {
			h.log.Info("quit requested")
			return nil
		}
		if quit := h.handleEvents(); quit {
			return nil
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if err := h.frame(dt); err != nil {
			return err
		}

		fpsFrames++
		if elapsed := now.Sub(fpsStart); elapsed >= time.Second {
			h.log.Debug("frame stats",
				zap.Float64("fps", float64(fpsFrames)/elapsed.Seconds()),
				zap.Uint64("frames", h.session.Frames()),
			)
			fpsStart = now
			fpsFrames = 0
		}
	}
}

func (h *Host) frame(dt float32) error {
	desc, err := h.session.Frame(dt)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}
	if desc.Phase != h.phase {
		h.phase = desc.Phase
		h.window.SetTitle(windowTitle(h.cfg.Window.Title, h.phase))
	}
	if desc.Failure != nil && !h.failureReported {
		h.failureReported = true
		h.log.Error("model unavailable, showing empty slot",
			zap.String("model", h.cfg.Model.URL),
			zap.Error(desc.Failure),
		)
	}

	cam := h.session.Camera()
	w, ht := h.renderer.Size()
	view := renderer.View{
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(float32(w) / float32(max(ht, 1))),
		Position:   cam.Position(),
	}
	if err := h.renderer.Render(desc, view); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if h.showBounds {
		h.bounds.Draw(desc.SlotBounds(), view.Projection.Mul(view.View))
	}

	h.overlay.SetContent(overlayContent(desc.Overlay, desc.Failure != nil))
	h.overlay.Draw(w, ht)

	if h.wantScreenshot {
		h.wantScreenshot = false
		h.screenshot(w, ht)
	}

	h.window.SwapBuffers()
	return nil
}

func (h *Host) handleEvents() (quit bool) {
	ctl := h.session.Controls()
	for _, ev := range h.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			h.resize()
		case input.EventKeyDown:
			switch ev.Key {
			case sdl.SCANCODE_ESCAPE:
				h.log.Info("escape pressed, quitting")
				return true
			case sdl.SCANCODE_F3:
				h.showBounds = !h.showBounds
				h.log.Debug("bounds overlay toggled", zap.Bool("visible", h.showBounds))
			case sdl.SCANCODE_F12:
				h.wantScreenshot = true
			}
		case input.EventMouseDown:
			ctl.PointerDown(button(ev.Button))
		case input.EventMouseUp:
			ctl.PointerUp(button(ev.Button))
		case input.EventMouseMove:
			// Pointer deltas arrive in window coordinates; controls work in
			// framebuffer pixels.
			sx, sy := h.pixelScale()
			ctl.PointerMove(float32(ev.DeltaX)*sx, float32(ev.DeltaY)*sy)
		case input.EventMouseWheel:
			ctl.Wheel(ev.Wheel)
		}
	}
	return false
}

func (h *Host) resize() {
	w, ht := h.window.DrawableSize()
	h.renderer.Resize(w, ht)
	h.session.Resize(w, ht)
	sx, _ := h.pixelScale()
	h.overlay.Scale = sx
}

func (h *Host) pixelScale() (float32, float32) {
	ww, wh := h.window.GetSize()
	fw, fh := h.window.DrawableSize()
	if ww <= 0 || wh <= 0 {
		return 1, 1
	}
	return float32(fw) / float32(ww), float32(fh) / float32(wh)
}

func (h *Host) screenshot(w, ht int) {
	pixels := screenshot.ReadFramebuffer(w, ht)
	name, err := h.shots.CaptureFromPixels(pixels, w, ht)
	if err != nil {
		h.log.Error("screenshot failed", zap.Error(err))
		return
	}
	h.log.Info("screenshot saved", zap.String("path", name))
}

// Close releases GL resources and the window.
func (h *Host) Close() {
	h.bounds.Destroy()
	h.overlay.Destroy()
	h.renderer.Close()
	h.window.Close()
}

func button(b uint8) camera.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return camera.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return camera.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return camera.ButtonRight
	default:
		return camera.ButtonNone
	}
}

func overlayContent(o scene.Overlay, failed bool) overlay.Content {
	c := overlay.Content{Title: o.Title, Lines: o.Lines}
	if failed && len(o.Lines) > 0 {
		c.Highlight = map[int]bool{len(o.Lines) - 1: true}
	}
	return c
}

// windowTitle appends the model's load phase while it is not on screen.
func windowTitle(base string, phase slot.Phase) string {
	if phase == slot.Ready {
		return base
	}
	return base + " [" + phase.String() + "]"
}
