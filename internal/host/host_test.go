package host

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/internal/slot"
)

func TestButtonMapping(t *testing.T) {
	tests := []struct {
		in   uint8
		want camera.Button
	}{
		{sdl.BUTTON_LEFT, camera.ButtonLeft},
		{sdl.BUTTON_MIDDLE, camera.ButtonMiddle},
		{sdl.BUTTON_RIGHT, camera.ButtonRight},
		{sdl.BUTTON_X1, camera.ButtonNone},
	}
	for _, tt := range tests {
		if got := button(tt.in); got != tt.want {
			t.Errorf("button(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOverlayContentHighlightsFailure(t *testing.T) {
	o := scene.DefaultRenderConfig().Overlay

	c := overlayContent(o, false)
	if c.Title != o.Title || len(c.Lines) != len(o.Lines) || len(c.Highlight) != 0 {
		t.Errorf("unexpected content %+v", c)
	}

	o.Lines = append(o.Lines, scene.FailureLine(nil))
	c = overlayContent(o, true)
	if !c.Highlight[len(o.Lines)-1] || len(c.Highlight) != 1 {
		t.Errorf("failure line not highlighted: %+v", c.Highlight)
	}
}

func TestWindowTitle(t *testing.T) {
	tests := []struct {
		phase slot.Phase
		want  string
	}{
		{slot.Loading, "OrbitView [loading]"},
		{slot.Ready, "OrbitView"},
		{slot.Failed, "OrbitView [failed]"},
	}
	for _, tt := range tests {
		if got := windowTitle("OrbitView", tt.phase); got != tt.want {
			t.Errorf("windowTitle(%v) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
