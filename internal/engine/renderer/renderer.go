// Package renderer draws scene descriptions with OpenGL.
//
// Each frame runs an optional depth pass into the directional shadow map,
// then a lit pass that tone maps and sRGB-encodes in the fragment shader.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/asset"
	"github.com/Faultbox/orbitview/internal/engine/lighting"
	"github.com/Faultbox/orbitview/internal/engine/mesh"
	"github.com/Faultbox/orbitview/internal/engine/shader"
	"github.com/Faultbox/orbitview/internal/engine/shaders"
	"github.com/Faultbox/orbitview/internal/engine/shadow"
	"github.com/Faultbox/orbitview/internal/engine/tonemap"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	Multisample bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	meshProgram  *shader.Program
	depthProgram *shader.Program

	meshes    *mesh.Cache
	broken    map[*asset.Mesh]bool
	shadowMap *shadow.Map
	rig       *lighting.Rig
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: mesh.NewCache(),
		broken: make(map[*asset.Mesh]bool),
		rig:    lighting.NewRig(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	frag, err := shader.Expand(shaders.MeshFragmentShader, map[string]string{"tonemap": tonemap.GLSL})
	if err != nil {
		return nil, err
	}
	if r.meshProgram, err = shader.New("mesh", shaders.MeshVertexShader, frag); err != nil {
		return nil, err
	}
	if r.depthProgram, err = shader.New("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
		r.meshProgram.Delete()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if cfg.Multisample {
		gl.Enable(gl.MULTISAMPLE)
	}
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", r.meshes.Len()))
	r.meshes.Release()
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	r.meshProgram.Delete()
	r.depthProgram.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the framebuffer size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Render draws one frame of desc as seen from view.
func (r *Renderer) Render(desc *scene.Description, view View) error {
	items := drawOrder(scene.Flatten(desc))
	buildRig(r.rig, desc)

	caster := -1
	lightViewProj := math.Identity()
	if desc.Shadows.Enabled {
		if err := r.ensureShadowMap(desc.Shadows); err != nil {
			return err
		}
		caster = r.rig.ShadowCaster()
	}
	if caster >= 0 {
		dir := math.V3(r.rig.Directional[caster].Direction)
		lightViewProj = shadow.DirectionalLightMatrix(dir, desc.Bounds())
		r.shadowPass(items, lightViewProj)
	}

	r.mainPass(desc, items, view, caster, lightViewProj)
	return nil
}

func (r *Renderer) ensureShadowMap(cfg scene.ShadowConfig) error {
	w, h := int32(cfg.Width), int32(cfg.Height)
	if r.shadowMap.IsValid() && r.shadowMap.Width == w && r.shadowMap.Height == h {
		return nil
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	sm, err := shadow.NewMap(w, h)
	if err != nil {
		return err
	}
	r.shadowMap = sm
	r.log.Debug("shadow map created", zap.Int32("width", sm.Width), zap.Int32("height", sm.Height))
	return nil
}

func (r *Renderer) shadowPass(items []scene.DrawItem, lightViewProj math.Mat4) {
	r.shadowMap.Bind()
	r.depthProgram.Use()
	r.depthProgram.SetMat4("uLightViewProj", (*[16]float32)(&lightViewProj))

	for i := range items {
		it := &items[i]
		if !it.CastShadow {
			continue
		}
		g := r.gpuMesh(it.Mesh)
		if g == nil {
			continue
		}
		r.depthProgram.SetMat4("uModel", (*[16]float32)(&it.World))
		g.Draw()
	}

	r.shadowMap.Unbind()
}

func (r *Renderer) mainPass(desc *scene.Description, items []scene.DrawItem, view View, caster int, lightViewProj math.Mat4) {
	bg := desc.Background.SRGB()
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	p := r.meshProgram
	p.Use()

	viewProj := view.Projection.Mul(view.View)
	p.SetMat4("uViewProj", (*[16]float32)(&viewProj))
	p.SetVec3("uCameraPos", view.Position.Array())

	rig := r.rig
	p.SetVec3("uAmbient", rig.Ambient)
	p.SetVec3("uSkyColor", rig.Hemisphere.Sky)
	p.SetVec3("uGroundColor", rig.Hemisphere.Ground)
	p.SetInt("uDirCount", int32(len(rig.Directional)))
	p.SetVec3Array("uDirDirections", rig.DirectionalDirections())
	p.SetVec3Array("uDirColors", rig.DirectionalColors())
	p.SetInt("uShadowLight", int32(caster))
	p.SetInt("uPointCount", int32(len(rig.Points)))
	p.SetVec3Array("uPointPositions", rig.PointPositions())
	p.SetVec3Array("uPointColors", rig.PointColors())
	p.SetFloatArray("uPointRanges", rig.PointRanges())
	p.SetFloatArray("uPointDecays", rig.PointDecays())

	p.SetInt("uToneMapping", int32(desc.ToneMapping.Mode))
	p.SetFloat("uExposure", desc.ToneMapping.Exposure)

	shadows := caster >= 0
	p.SetInt("uShadowsEnabled", boolInt(shadows))
	p.SetInt("uShadowMap", 1)
	if shadows {
		texMatrix := shadow.TextureMatrix(lightViewProj)
		p.SetMat4("uShadowMatrix", (*[16]float32)(&texMatrix))
		gl.Uniform2f(p.Location("uShadowTexel"), 1/float32(r.shadowMap.Width), 1/float32(r.shadowMap.Height))
		r.shadowMap.BindTexture(gl.TEXTURE1)
	}

	blending := false
	for i := range items {
		it := &items[i]
		g := r.gpuMesh(it.Mesh)
		if g == nil {
			continue
		}
		if translucent := it.Material.Opacity < 1; translucent != blending {
			blending = translucent
			if blending {
				gl.Enable(gl.BLEND)
				gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
				gl.DepthMask(false)
			} else {
				gl.Disable(gl.BLEND)
				gl.DepthMask(true)
			}
		}

		p.SetMat4("uModel", (*[16]float32)(&it.World))
		p.SetMat3("uNormalMatrix", it.World.NormalMatrix())
		p.SetVec3("uBaseColor", [3]float32(it.Material.Color))
		p.SetFloat("uOpacity", it.Material.Opacity)
		p.SetFloat("uMetallic", it.Material.Metallic)
		p.SetFloat("uRoughness", it.Material.Roughness)
		p.SetInt("uReceiveShadow", boolInt(it.ReceiveShadow))
		g.Draw()
	}
	if blending {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

// gpuMesh uploads on first use. A mesh that fails to upload is logged once
// and skipped afterwards.
func (r *Renderer) gpuMesh(m *asset.Mesh) *mesh.GPUMesh {
	if r.broken[m] {
		return nil
	}
	g, err := r.meshes.Get(m)
	if err != nil {
		r.broken[m] = true
		r.log.Error("mesh upload failed", zap.String("mesh", m.Name), zap.Error(err))
		return nil
	}
	return g
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
