package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/logger"
)

// Loader produces a scene for a reference. Implementations must be safe to
// call from a goroutine other than the render thread.
type Loader interface {
	Load(ctx context.Context, ref Ref) (*Scene, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, ref Ref) (*Scene, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, ref Ref) (*Scene, error) {
	return f(ctx, ref)
}

// GLTFLoader fetches and decodes glTF 2.0 assets.
type GLTFLoader struct {
	fetch *Fetcher
	log   *zap.Logger
}

// NewGLTFLoader creates a loader reading through fetch.
func NewGLTFLoader(fetch *Fetcher) *GLTFLoader {
	return &GLTFLoader{
		fetch: fetch,
		log:   logger.Named("asset"),
	}
}

// Load fetches, sniffs, decodes and flattens the asset.
func (l *GLTFLoader) Load(ctx context.Context, ref Ref) (*Scene, error) {
	start := time.Now()

	doc, err := l.decode(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scene, err := Flatten(doc, ref)
	if err != nil {
		return nil, fmt.Errorf("flattening %s: %w", ref, err)
	}

	l.log.Info("asset loaded",
		zap.Stringer("ref", ref),
		zap.Int("meshes", len(scene.Meshes)),
		zap.Int("triangles", scene.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return scene, nil
}

func (l *GLTFLoader) decode(ctx context.Context, ref Ref) (*gltf.Document, error) {
	if ref.Scheme() == "file" {
		return l.decodeFile(ref)
	}

	rc, err := l.fetch.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	format, err := Sniff(head(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	l.log.Debug("asset fetched", zap.Stringer("ref", ref), zap.Int("bytes", len(data)), zap.Stringer("format", format))

	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", ref, err)
	}
	return doc, nil
}

// decodeFile uses gltf.Open so .gltf files can reference sibling buffers.
func (l *GLTFLoader) decodeFile(ref Ref) (*gltf.Document, error) {
	path, err := l.fetch.Path(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	f.Close()
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	format, err := Sniff(buf[:n])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Debug("asset opened", zap.String("path", path), zap.Stringer("format", format))

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

func head(data []byte) []byte {
	if len(data) > sniffLen {
		return data[:sniffLen]
	}
	return data
}
