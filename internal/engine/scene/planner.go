// Package scene sequences the shadow, reflection and main passes of a frame.
// Planning is pure: Planner.Plan turns scene state into a Frame value that
// Renderer.Execute then performs against OpenGL.
package scene

import (
	"github.com/Faultbox/lakeside/internal/engine/camera"
	"github.com/Faultbox/lakeside/internal/engine/lighting"
	"github.com/Faultbox/lakeside/internal/engine/model"
	"github.com/Faultbox/lakeside/internal/engine/shadow"
	"github.com/Faultbox/lakeside/internal/engine/water"
	"github.com/Faultbox/lakeside/pkg/math"
)

// PassKind identifies a render pass.
type PassKind int

const (
	PassShadow PassKind = iota
	PassReflection
	PassMain
)

func (k PassKind) String() string {
	switch k {
	case PassShadow:
		return "shadow"
	case PassReflection:
		return "reflection"
	default:
		return "main"
	}
}

// Target is the framebuffer a pass renders into.
type Target int

const (
	TargetDefault Target = iota
	TargetShadowMap
	TargetReflection
)

// ProgramKind selects one of the scene programs.
type ProgramKind int

const (
	ProgramDepth ProgramKind = iota
	ProgramScene
	ProgramSky
	ProgramWater
	programCount
)

// Cull is the face culling mode for a draw.
type Cull int

const (
	CullBack Cull = iota
	CullFront
	CullNone
)

// Draw is one mesh drawn with one program.
type Draw struct {
	Item    int // index into Model.Items
	Program ProgramKind
	Cull    Cull
	Blend   bool
	Model   math.Mat4

	ReceiveShadow bool // bind the shadow map and the light texture matrix
	Reflection    bool // bind the reflection target
}

// Pass is one render target switch with its draws in order.
type Pass struct {
	Kind       PassKind
	Target     Target
	Viewport   [4]int32
	ClearColor *[4]float32 // nil leaves colour untouched
	ClearDepth bool
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
	ClipPlane  *[4]float32 // user clip plane, nil when disabled
	Draws      []Draw
}

// Frame is the complete, ordered description of one frame.
type Frame struct {
	Width, Height int32
	State         lighting.State
	Light         shadow.LightMatrices
	ShadowBias    float32
	WaterPhase    float32
	Passes        []Pass
}

// Pass returns the pass of the given kind, or nil.
func (f *Frame) Pass(kind PassKind) *Pass {
	for i := range f.Passes {
		if f.Passes[i].Kind == kind {
			return &f.Passes[i]
		}
	}
	return nil
}

// Config holds the planner's fixed settings.
type Config struct {
	ShadowResolution int32
	ShadowBias       float32
	ShadowProjection shadow.Projection

	Reflection       bool
	ReflectionWidth  int32 // 0 follows the viewport
	ReflectionHeight int32
	ClipOffset       float32
	WaterHeight      *float32 // overrides the height taken from the water mesh
	WaterPeriodMs    float64
}

// DefaultConfig returns the settings used when no configuration overrides them.
func DefaultConfig() Config {
	return Config{
		ShadowResolution: shadow.DefaultResolution,
		ShadowBias:       0.006,
		ShadowProjection: shadow.DefaultProjection(),
		Reflection:       true,
		ReflectionWidth:  1024,
		ReflectionHeight: 512,
		ClipOffset:       0.05,
		WaterPeriodMs:    20000,
	}
}

// FrameInput is the per-frame observed state.
type FrameInput struct {
	Width, Height int32 // drawable size in pixels
	ElapsedMs     float64
	Camera        *camera.OrbitCamera
}

// Planner builds frames for a loaded model.
type Planner struct {
	Model  *model.Model
	Clock  lighting.Clock
	Config Config
}

// NewPlanner returns a planner for m.
func NewPlanner(m *model.Model, clock lighting.Clock, cfg Config) *Planner {
	return &Planner{Model: m, Clock: clock, Config: cfg}
}

// Plan computes every matrix and draw of the frame.
func (p *Planner) Plan(in FrameInput) Frame {
	state := p.Clock.Advance(in.ElapsedMs)
	light := shadow.ComputeLight(state.Light.Position, math.Vec3{}, p.Config.ShadowProjection)

	w, h := max(in.Width, 1), max(in.Height, 1)
	frame := Frame{
		Width:      w,
		Height:     h,
		State:      state,
		Light:      light,
		ShadowBias: p.Config.ShadowBias,
		WaterPhase: water.Phase(in.ElapsedMs, p.Config.WaterPeriodMs),
	}

	frame.Passes = append(frame.Passes, p.shadowPass(light))

	projection := in.Camera.Projection(float32(w) / float32(h))
	eye := in.Camera.Position()

	hasReflection := false
	if height, ok := p.waterHeight(); ok && p.Config.Reflection {
		frame.Passes = append(frame.Passes, p.reflectionPass(in, projection, height, state))
		hasReflection = true
	}

	frame.Passes = append(frame.Passes, p.mainPass(in.Camera.ViewMatrix(), projection, eye, w, h, state, hasReflection))
	return frame
}

func (p *Planner) waterHeight() (float32, bool) {
	h, ok := p.Model.WaterHeight()
	if !ok {
		return 0, false
	}
	if p.Config.WaterHeight != nil {
		h = *p.Config.WaterHeight
	}
	return h, true
}

func (p *Planner) shadowPass(light shadow.LightMatrices) Pass {
	res := p.Config.ShadowResolution
	pass := Pass{
		Kind:       PassShadow,
		Target:     TargetShadowMap,
		Viewport:   [4]int32{0, 0, res, res},
		ClearDepth: true,
		View:       light.View,
		Projection: light.Projection,
	}

	for i, it := range p.Model.Items {
		if !it.CastsShadow || it.Transparent || it.Role != model.RoleRegular {
			continue
		}
		cull := CullFront
		if it.DoubleSided {
			cull = CullNone
		}
		pass.Draws = append(pass.Draws, Draw{Item: i, Program: ProgramDepth, Cull: cull, Model: math.Identity()})
	}
	return pass
}

func (p *Planner) reflectionPass(in FrameInput, projection math.Mat4, height float32, state lighting.State) Pass {
	rw, rh := p.Config.ReflectionWidth, p.Config.ReflectionHeight
	if rw <= 0 || rh <= 0 {
		rw, rh = max(in.Width, 1), max(in.Height, 1)
	}

	mirror := water.MirrorCamera(in.Camera.Position(), in.Camera.Target(), height)
	clip := water.ClipPlane(height, p.Config.ClipOffset)
	clear := skyClear(state)

	pass := Pass{
		Kind:       PassReflection,
		Target:     TargetReflection,
		Viewport:   [4]int32{0, 0, rw, rh},
		ClearColor: &clear,
		ClearDepth: true,
		View:       mirror.View,
		Projection: projection,
		Eye:        mirror.Eye,
		ClipPlane:  &clip,
	}

	for i, it := range p.Model.Items {
		if it.Role == model.RoleRegular && !it.Transparent {
			cull := CullBack
			if it.DoubleSided {
				cull = CullNone
			}
			pass.Draws = append(pass.Draws, Draw{Item: i, Program: ProgramScene, Cull: cull, Model: math.Identity()})
		}
	}
	pass.Draws = append(pass.Draws, p.skyDraws()...)
	return pass
}

func (p *Planner) mainPass(view, projection math.Mat4, eye math.Vec3, w, h int32, state lighting.State, reflection bool) Pass {
	clear := skyClear(state)
	pass := Pass{
		Kind:       PassMain,
		Target:     TargetDefault,
		Viewport:   [4]int32{0, 0, w, h},
		ClearColor: &clear,
		ClearDepth: true,
		View:       view,
		Projection: projection,
		Eye:        eye,
	}

	// Opaque, then sky, then transparent.
	for i, it := range p.Model.Items {
		if it.Role == model.RoleRegular && !it.Transparent {
			cull := CullBack
			if it.DoubleSided {
				cull = CullNone
			}
			pass.Draws = append(pass.Draws, Draw{Item: i, Program: ProgramScene, Cull: cull, Model: math.Identity(), ReceiveShadow: true})
		}
	}

	pass.Draws = append(pass.Draws, p.skyDraws()...)

	for i, it := range p.Model.Items {
		if !it.Transparent || it.Role == model.RoleSky {
			continue
		}
		d := Draw{Item: i, Program: ProgramScene, Cull: CullBack, Blend: true, Model: math.Identity(), ReceiveShadow: true}
		if it.DoubleSided {
			d.Cull = CullNone
		}
		if it.Role == model.RoleWater {
			d.Program = ProgramWater
			d.ReceiveShadow = false
			d.Reflection = reflection
		}
		pass.Draws = append(pass.Draws, d)
	}
	return pass
}

// skyDraws draws the sky sphere from inside, so culling is off.
func (p *Planner) skyDraws() []Draw {
	var draws []Draw
	for i, it := range p.Model.Items {
		if it.Role == model.RoleSky {
			draws = append(draws, Draw{Item: i, Program: ProgramSky, Cull: CullNone, Model: math.Identity()})
		}
	}
	return draws
}

func skyClear(state lighting.State) [4]float32 {
	return [4]float32{state.SkyColor[0], state.SkyColor[1], state.SkyColor[2], 1}
}
