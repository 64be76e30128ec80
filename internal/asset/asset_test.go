package asset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orbitview/pkg/math"
)

func TestRefScheme(t *testing.T) {
	tests := []struct {
		url    string
		scheme string
	}{
		{"6DOF.glb", "file"},
		{"/srv/models/6DOF.glb", "file"},
		{"file:///srv/models/6DOF.glb", "file"},
		{"https://cdn.example.com/6DOF.glb", "https"},
		{"HTTP://cdn.example.com/6DOF.glb", "http"},
		{"s3://models/6DOF.glb", "s3"},
		{"://broken", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.scheme, NewRef(tt.url).Scheme())
		})
	}
}

func TestSniff(t *testing.T) {
	t.Run("glb", func(t *testing.T) {
		f, err := Sniff(triangleGLB(t)[:sniffLen])
		require.NoError(t, err)
		assert.Equal(t, FormatGLB, f)
	})
	t.Run("gltf json with leading whitespace", func(t *testing.T) {
		f, err := Sniff([]byte("\n  {\"asset\":{\"version\":\"2.0\"}}"))
		require.NoError(t, err)
		assert.Equal(t, FormatGLTF, f)
	})
	t.Run("gltf json with byte order mark", func(t *testing.T) {
		f, err := Sniff([]byte("\ufeff{\"asset\":{\"version\":\"2.0\"}}"))
		require.NoError(t, err)
		assert.Equal(t, FormatGLTF, f)
	})
	t.Run("png", func(t *testing.T) {
		_, err := Sniff([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
		require.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.Contains(t, err.Error(), "image/png")
	})
	t.Run("garbage", func(t *testing.T) {
		_, err := Sniff([]byte("not a model"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func assertTriangleScene(t *testing.T, scene *Scene) {
	t.Helper()

	require.Len(t, scene.Meshes, 1)
	m := scene.Meshes[0]
	assert.Equal(t, "link", m.Name)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)

	// Parent translate (0,2,0) and scale 2 are baked into the vertices.
	want := [][3]float32{{0, 2, 0}, {2, 2, 0}, {0, 4, 0}}
	for i, p := range m.Positions {
		assert.InDeltaSlice(t, want[i][:], p[:], 1e-5, "vertex %d", i)
	}
	for _, n := range m.Normals {
		assert.InDeltaSlice(t, []float32{0, 0, 1}, n[:], 1e-5)
	}

	assert.Equal(t, [4]float32{1, 0.5, 0, 1}, m.BaseColor)
	assert.InDelta(t, 0.25, m.Metallic, 1e-6)
	assert.InDelta(t, 0.75, m.Roughness, 1e-6)

	assert.Equal(t, math.Vec3{X: 0, Y: 2, Z: 0}, scene.Bounds.Min)
	assert.Equal(t, math.Vec3{X: 2, Y: 4, Z: 0}, scene.Bounds.Max)
	assert.Equal(t, 1, scene.TriangleCount())
}

func TestGLTFLoaderFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "6DOF.glb", triangleGLB(t))

	loader := NewGLTFLoader(NewFetcher(FetchConfig{Root: dir}))
	scene, err := loader.Load(context.Background(), NewRef("6DOF.glb"))
	require.NoError(t, err)

	assert.Equal(t, "robot", scene.Name)
	assert.Equal(t, "6DOF.glb", scene.Source.URL())
	assertTriangleScene(t, scene)
}

func TestGLTFLoaderNodeMatrix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "placed.glb", matrixGLB(t))

	loader := NewGLTFLoader(NewFetcher(FetchConfig{Root: dir}))
	scene, err := loader.Load(context.Background(), NewRef("placed.glb"))
	require.NoError(t, err)
	require.Len(t, scene.Meshes, 1)

	assert.Equal(t, "placed", scene.Meshes[0].Name)
	assert.Equal(t, [3]float32{1, 2, 3}, scene.Meshes[0].Positions[0])
	assert.Equal(t, [3]float32{3, 2, 3}, scene.Meshes[0].Positions[1])
	assert.InDelta(t, 1, scene.Bounds.Min.X, 1e-6)
	assert.InDelta(t, 2, scene.Bounds.Min.Y, 1e-6)
	assert.InDelta(t, 3, scene.Bounds.Max.X, 1e-6)
	assert.InDelta(t, 4, scene.Bounds.Max.Y, 1e-6)
	assert.InDelta(t, 3, scene.Bounds.Max.Z, 1e-6)
}

func TestGLTFLoaderFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image.glb", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	writeFile(t, dir, "empty.glb", emptySceneGLB())
	writeFile(t, dir, "unbacked.glb", unbackedGLB())
	loader := NewGLTFLoader(NewFetcher(FetchConfig{Root: dir}))

	tests := []struct {
		name string
		ref  string
		want error
	}{
		{"missing", "missing.glb", ErrNotFound},
		{"not a model", "image.glb", ErrUnsupportedFormat},
		{"no geometry", "empty.glb", ErrEmptyScene},
		{"accessor without data", "unbacked.glb", ErrInvalidAsset},
		{"unknown scheme", "ftp://example.com/6DOF.glb", ErrUnsupportedScheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := loader.Load(context.Background(), NewRef(tt.ref))
			assert.Nil(t, scene)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGLTFLoaderHTTP(t *testing.T) {
	glb := triangleGLB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/6DOF.glb" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "model/gltf-binary")
		w.Write(glb)
	}))
	defer srv.Close()

	loader := NewGLTFLoader(NewFetcher(FetchConfig{}))

	scene, err := loader.Load(context.Background(), NewRef(srv.URL+"/models/6DOF.glb"))
	require.NoError(t, err)
	assertTriangleScene(t, scene)

	_, err = loader.Load(context.Background(), NewRef(srv.URL+"/models/missing.glb"))
	assert.ErrorIs(t, err, ErrNotFound)
}

type fakeObjects struct {
	objects map[string][]byte
	calls   int
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls++
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestGLTFLoaderS3(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{
		"models/robots/6DOF.glb": triangleGLB(t),
	}}
	fetch := NewFetcher(FetchConfig{})
	fetch.s3 = objects
	loader := NewGLTFLoader(fetch)

	scene, err := loader.Load(context.Background(), NewRef("s3://models/robots/6DOF.glb"))
	require.NoError(t, err)
	assertTriangleScene(t, scene)

	_, err = loader.Load(context.Background(), NewRef("s3://models/robots/missing.glb"))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = loader.Load(context.Background(), NewRef("s3://models"))
	assert.ErrorIs(t, err, ErrInvalidAsset)

	assert.Equal(t, 2, objects.calls)
}

func TestCacheCollapsesConcurrentLoads(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	want := &Scene{Name: "robot"}

	cache := NewCache(LoaderFunc(func(ctx context.Context, ref Ref) (*Scene, error) {
		calls.Add(1)
		<-release
		return want, nil
	}))

	const n = 8
	var wg sync.WaitGroup
	results := make([]*Scene, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := cache.Load(context.Background(), NewRef("6DOF.glb"))
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}

	// Let the goroutines pile up on the in-flight call before releasing it.
	for calls.Load() == 0 {
		runtime.Gosched()
	}
	close(release)
	wg.Wait()

	// Later loads are served from memory.
	s, err := cache.Load(context.Background(), NewRef("6DOF.glb"))
	require.NoError(t, err)
	assert.Same(t, want, s)

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Same(t, want, r)
	}
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	var calls int
	cache := NewCache(LoaderFunc(func(ctx context.Context, ref Ref) (*Scene, error) {
		calls++
		if calls == 1 {
			return nil, ErrNotFound
		}
		return &Scene{}, nil
	}))

	_, err := cache.Load(context.Background(), NewRef("6DOF.glb"))
	require.True(t, errors.Is(err, ErrNotFound))

	_, err = cache.Load(context.Background(), NewRef("6DOF.glb"))
	require.NoError(t, err)

	cache.Evict(NewRef("6DOF.glb"))
	_, err = cache.Load(context.Background(), NewRef("6DOF.glb"))
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestComputeNormals(t *testing.T) {
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}, {5, 5, 5}}
	normals := ComputeNormals(positions, []uint32{0, 1, 2})

	require.Len(t, normals, 4)
	for i := 0; i < 3; i++ {
		assert.InDeltaSlice(t, []float32{0, 1, 0}, normals[i][:], 1e-6)
	}
	// Unreferenced vertex.
	assert.Equal(t, [3]float32{0, 1, 0}, normals[3])
}

func TestBoundsTransform(t *testing.T) {
	b := BoundsOf([][3]float32{{-1, -1, -1}, {1, 1, 1}})
	assert.InDelta(t, 1.7320508, b.Radius(), 1e-5)

	scaled := b.Transform(math.Translate(0, -2, 0).Mul(math.Scale(0.25, 0.25, 0.25)))
	assert.Equal(t, math.Vec3{X: -0.25, Y: -2.25, Z: -0.25}, scaled.Min)
	assert.Equal(t, math.Vec3{X: 0.25, Y: -1.75, Z: 0.25}, scaled.Max)

	var empty Bounds
	assert.True(t, empty.Transform(math.Identity()).Empty())
}
