// Package screenshot saves the rendered frame as PNG.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// Capture writes screenshots into a directory.
type Capture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// New creates a capture handler.
func New(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// FromPixels converts bottom-up RGBA rows, as read from OpenGL, into a
// top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	raw := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return transform.FlipV(raw), nil
}

// CaptureFromPixels flips and saves raw framebuffer pixels.
func (c *Capture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.CaptureFromImage(img)
}

// CaptureFromImage saves img under a fresh timestamped name.
func (c *Capture) CaptureFromImage(img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename, err := c.nextFilename()
	if err != nil {
		return "", err
	}
	if err := imgio.Save(filename, img, imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

// GenerateFilename returns the name a capture taken now would use, before
// de-duplication.
func (c *Capture) GenerateFilename() string {
	return c.filename("")
}

func (c *Capture) filename(suffix string) string {
	timestamp := c.now().Format("2006-01-02_15-04-05")
	name := fmt.Sprintf("%s_%s%s.png", c.prefix, timestamp, suffix)
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// nextFilename avoids overwriting captures taken within the same second.
func (c *Capture) nextFilename() (string, error) {
	name := c.filename("")
	for i := 1; ; i++ {
		_, err := os.Stat(name)
		if errors.Is(err, os.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", name, err)
		}
		name = c.filename(fmt.Sprintf("_%d", i))
	}
}
