package camera

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

type action int

const (
	actionNone action = iota
	actionRotate
	actionPan
)

// Limits configures what the controls may do to the camera.
type Limits struct {
	EnablePan     bool
	EnableZoom    bool
	EnableRotate  bool
	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32
}

// OrbitControls maps pointer input onto an OrbitCamera: left drag rotates,
// right or middle drag pans, the wheel zooms.
type OrbitControls struct {
	cam    *OrbitCamera
	limits Limits
	action action
	button Button

	viewportHeight float32
}

// NewOrbitControls attaches controls to cam and applies limits to it.
func NewOrbitControls(cam *OrbitCamera, limits Limits) *OrbitControls {
	cam.MinDistance = limits.MinDistance
	cam.MaxDistance = limits.MaxDistance
	cam.MinPolar = limits.MinPolarAngle
	cam.MaxPolar = limits.MaxPolarAngle
	cam.clamp()
	return &OrbitControls{cam: cam, limits: limits, viewportHeight: 1}
}

// Camera returns the controlled camera.
func (c *OrbitControls) Camera() *OrbitCamera {
	return c.cam
}

// SetViewport records the viewport size used to scale pointer motion.
func (c *OrbitControls) SetViewport(width, height int) {
	if height > 0 {
		c.viewportHeight = float32(height)
	}
}

// PointerDown starts a drag.
func (c *OrbitControls) PointerDown(b Button) {
	if c.action != actionNone {
		return
	}
	switch b {
	case ButtonLeft:
		if c.limits.EnableRotate {
			c.action = actionRotate
		}
	case ButtonRight, ButtonMiddle:
		if c.limits.EnablePan {
			c.action = actionPan
		}
	}
	if c.action != actionNone {
		c.button = b
	}
}

// PointerUp ends the drag started by b.
func (c *OrbitControls) PointerUp(b Button) {
	if b == c.button {
		c.action = actionNone
		c.button = ButtonNone
	}
}

// PointerMove applies relative pointer motion in pixels.
func (c *OrbitControls) PointerMove(dx, dy float32) {
	switch c.action {
	case actionRotate:
		c.cam.Rotate(dx, dy, c.viewportHeight)
	case actionPan:
		c.cam.Pan(dx, dy, c.viewportHeight)
	}
}

// Wheel zooms by dy notches; positive is away from the user, towards the
// target.
func (c *OrbitControls) Wheel(dy float32) {
	if !c.limits.EnableZoom || dy == 0 {
		return
	}
	c.cam.Zoom(dy)
}

// Dragging reports whether a drag is in progress.
func (c *OrbitControls) Dragging() bool {
	return c.action != actionNone
}
