package scene

import (
	"fmt"
	"io/fs"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lakeside/internal/engine/framebuffer"
	"github.com/Faultbox/lakeside/internal/engine/gpu"
	"github.com/Faultbox/lakeside/internal/engine/mesh"
	"github.com/Faultbox/lakeside/internal/engine/model"
	"github.com/Faultbox/lakeside/internal/engine/shader"
	"github.com/Faultbox/lakeside/internal/engine/shadow"
	"github.com/Faultbox/lakeside/internal/engine/texture"
	"github.com/Faultbox/lakeside/internal/logger"
)

// noClip keeps every vertex when no clip plane is active.
var noClip = [4]float32{0, 0, 0, 1}

// Renderer owns the GPU side of a model and executes planned frames.
// All methods must run on the GL goroutine.
type Renderer struct {
	dev      gpu.Device
	sources  fs.FS
	log      *zap.Logger
	model    *model.Model
	textures *texture.Manager

	programs   [programCount]*shader.Program
	shadowMap  *shadow.Map
	reflection *framebuffer.Framebuffer
	records    []*mesh.Record

	width, height int32 // last observed drawable size
}

// NewRenderer links every program from sources, allocates the shadow map and
// uploads m. Textures are requested from textures and start as placeholders.
func NewRenderer(dev gpu.Device, sources fs.FS, m *model.Model, textures *texture.Manager, cfg Config) (*Renderer, error) {
	r := &Renderer{
		dev:      dev,
		sources:  sources,
		log:      logger.Named("scene"),
		model:    m,
		textures: textures,
	}

	for k := range Descriptors {
		p, err := shader.Build(Descriptors[k], sources)
		if err != nil {
			r.Destroy()
			return nil, err
		}
		r.programs[k] = p
	}

	var err error
	r.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
	if err != nil {
		r.Destroy()
		return nil, err
	}

	if _, ok := m.WaterHeight(); ok && cfg.Reflection {
		r.reflection, err = framebuffer.New(max(cfg.ReflectionWidth, 1), max(cfg.ReflectionHeight, 1))
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("reflection target: %w", err)
		}
	}

	layout := meshLayout(r.programs[ProgramScene])
	depth := mesh.PositionOnly(r.programs[ProgramDepth].Attributes.Get(attrPosition))
	for _, it := range m.Items {
		rec, err := mesh.Upload(dev, it.Mesh, layout, &depth)
		if err != nil {
			r.Destroy()
			return nil, fmt.Errorf("uploading %s/%s: %w", it.Object, it.Mesh.MaterialName, err)
		}
		rec.Texture = textures.Load(it.TexturePath)
		r.records = append(r.records, rec)
	}

	r.log.Info("scene uploaded",
		zap.String("model", m.Name),
		zap.Int("items", len(m.Items)),
		zap.Int32("shadowResolution", r.shadowMap.Resolution),
		zap.Bool("reflection", r.reflection != nil))
	return r, nil
}

// Reload rebuilds one program from its sources. On failure the previous
// program stays in use and the error is returned.
func (r *Renderer) Reload(kind ProgramKind) error {
	p, err := shader.Build(Descriptors[kind], r.sources)
	if err != nil {
		r.log.Warn("shader reload failed, keeping previous program", zap.Stringer("program", kind), zap.Error(err))
		return err
	}
	if old := r.programs[kind]; old != nil {
		old.Delete()
	}
	r.programs[kind] = p
	r.log.Info("shader reloaded", zap.Stringer("program", kind))
	return nil
}

// Execute performs every pass of f in order and leaves the default
// framebuffer bound.
func (r *Renderer) Execute(f *Frame) {
	if f.Width != r.width || f.Height != r.height {
		r.log.Debug("viewport resized", zap.Int32("width", f.Width), zap.Int32("height", f.Height))
		r.width, r.height = f.Width, f.Height
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	for i := range f.Passes {
		p := &f.Passes[i]
		if p.Target == TargetReflection && r.reflection == nil {
			continue
		}
		r.runPass(f, p)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (r *Renderer) runPass(f *Frame, p *Pass) {
	gl.DepthMask(true)

	switch p.Target {
	case TargetShadowMap:
		r.shadowMap.Bind()
	case TargetReflection:
		if r.reflection.Resize(p.Viewport[2], p.Viewport[3]) {
			r.log.Debug("reflection target resized", zap.Int32("width", p.Viewport[2]), zap.Int32("height", p.Viewport[3]))
		}
		r.reflection.Bind()
	default:
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(p.Viewport[0], p.Viewport[1], p.Viewport[2], p.Viewport[3])
	}

	if p.Target != TargetShadowMap {
		var mask uint32
		if p.ClearColor != nil {
			c := p.ClearColor
			gl.ClearColor(c[0], c[1], c[2], c[3])
			mask |= gl.COLOR_BUFFER_BIT
		}
		if p.ClearDepth {
			mask |= gl.DEPTH_BUFFER_BIT
		}
		if mask != 0 {
			gl.Clear(mask)
		}
	}

	clip := noClip
	if p.ClipPlane != nil {
		clip = *p.ClipPlane
		gl.Enable(gl.CLIP_DISTANCE0)
	}

	for _, d := range p.Draws {
		r.draw(f, p, d, clip)
	}

	gl.Disable(gl.CLIP_DISTANCE0)
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	setCull(CullBack)
}

func (r *Renderer) draw(f *Frame, p *Pass, d Draw, clip [4]float32) {
	rec := r.records[d.Item]
	it := &r.model.Items[d.Item]
	prog := r.programs[d.Program]

	setCull(d.Cull)
	if d.Blend {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
	} else {
		gl.Disable(gl.BLEND)
		gl.DepthMask(true)
	}

	prog.Use()
	prog.SetMat4("u_model", d.Model)
	prog.SetMat4("u_view", p.View)
	prog.SetMat4("u_projection", p.Projection)

	mat := it.Material()
	state := f.State

	switch d.Program {
	case ProgramDepth:
		gl.BindVertexArray(rec.DepthVAO)
		gl.DrawArrays(gl.TRIANGLES, 0, rec.Count)
		gl.BindVertexArray(0)
		return

	case ProgramScene:
		bindTexture(unitDiffuse, rec.Texture.ID)
		prog.SetInt("u_diffuseMap", unitDiffuse)
		prog.SetVec3("u_diffuseColor", mat.DiffuseColor())
		prog.SetFloat("u_alpha", mat.Alpha())
		prog.SetVec3("u_specularColor", mat.SpecularColor())
		prog.SetFloat("u_shininess", mat.SpecularExponent())
		prog.SetVec3("u_lightPos", state.Light.Position.Array())
		prog.SetFloat("u_lightIntensity", state.LightIntensity)
		prog.SetVec3("u_eye", p.Eye.Array())
		prog.SetVec4("u_clipPlane", clip)
		prog.SetMat4("u_lightMatrix", f.Light.Texture)
		prog.SetFloat("u_shadowBias", f.ShadowBias)
		prog.SetInt("u_shadowMap", unitShadow)
		r.shadowMap.BindTexture(unitShadow)
		if d.ReceiveShadow {
			prog.SetInt("u_receiveShadow", 1)
		} else {
			prog.SetInt("u_receiveShadow", 0)
		}

	case ProgramSky:
		bindTexture(unitDiffuse, rec.Texture.ID)
		prog.SetInt("u_starMap", unitDiffuse)
		prog.SetVec3("u_skyColor", state.SkyColor)
		stars := state.StarVisibility
		if it.TexturePath == "" {
			stars = 0
		}
		prog.SetFloat("u_starVisibility", stars)
		prog.SetVec4("u_clipPlane", clip)

	case ProgramWater:
		bindTexture(unitDiffuse, rec.Texture.ID)
		prog.SetInt("u_diffuseMap", unitDiffuse)
		prog.SetInt("u_reflectionMap", unitReflection)
		if d.Reflection && r.reflection != nil {
			bindTexture(unitReflection, r.reflection.ColorTexture())
			prog.SetInt("u_hasReflection", 1)
		} else {
			prog.SetInt("u_hasReflection", 0)
		}
		prog.SetVec3("u_diffuseColor", mat.DiffuseColor())
		prog.SetFloat("u_alpha", mat.Alpha())
		prog.SetFloat("u_phase", f.WaterPhase)
		prog.SetFloat("u_lightIntensity", state.LightIntensity)
	}

	gl.BindVertexArray(rec.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, rec.Count)
	gl.BindVertexArray(0)
}

func bindTexture(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func setCull(c Cull) {
	switch c {
	case CullNone:
		gl.Disable(gl.CULL_FACE)
	case CullFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
}

// Destroy releases programs, targets and mesh buffers. Textures belong to
// the texture manager.
func (r *Renderer) Destroy() {
	for _, rec := range r.records {
		rec.Delete(r.dev)
	}
	r.records = nil
	for k, p := range r.programs {
		if p != nil {
			p.Delete()
			r.programs[k] = nil
		}
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	if r.reflection != nil {
		r.reflection.Destroy()
		r.reflection = nil
	}
}
