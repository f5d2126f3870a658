// Package app wires the window, the asset sources and the scene renderer
// into the viewer's frame loop.
package app

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lakeside/internal/assets"
	"github.com/Faultbox/lakeside/internal/config"
	"github.com/Faultbox/lakeside/internal/engine/camera"
	"github.com/Faultbox/lakeside/internal/engine/debug"
	"github.com/Faultbox/lakeside/internal/engine/gpu"
	"github.com/Faultbox/lakeside/internal/engine/input"
	"github.com/Faultbox/lakeside/internal/engine/model"
	"github.com/Faultbox/lakeside/internal/engine/scene"
	"github.com/Faultbox/lakeside/internal/engine/scene/shaders"
	"github.com/Faultbox/lakeside/internal/engine/texture"
	"github.com/Faultbox/lakeside/internal/engine/window"
	"github.com/Faultbox/lakeside/internal/logger"
)

// App is the viewer instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	assets   *assets.Manager
	model    *model.Model
	window   *window.Window
	input    *input.Input
	textures *texture.Manager
	renderer *scene.Renderer
	planner  *scene.Planner
	camera   *camera.OrbitCamera
	watcher  *assets.Watcher
	shots    *debug.ScreenshotCapture

	status texture.Status
	fps    int
}

// New loads the model, opens the window and builds the GPU pipeline.
// Malformed geometry and shader failures are fatal.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    logger.Named("app"),
		input:  input.New(),
		camera: cameraFrom(cfg),
		shots:  debug.NewScreenshotCapture("screenshots", "lakeside"),
	}

	a.assets = assets.NewManager()
	if err := a.assets.AddDir(cfg.Scene.AssetDir); err != nil {
		return nil, err
	}

	var err error
	a.model, err = model.Load(a.assets.Load, "", cfg.Scene.Model, modelOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	a.window, err = window.New(window.Config{
		Title:      appName,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if _, err := gpu.Init(); err != nil {
		a.Close()
		return nil, err
	}

	decoder := texture.FileDecoder{Load: a.assets.Load, MaxSize: cfg.Textures.MaxSize}
	a.textures = texture.NewManager(gpu.GL{}, decoder, textureOptions(cfg))
	a.textures.OnStatus(func(s texture.Status) {
		a.status = s
		a.log.Info("texture loading", zap.Stringer("status", s))
		a.window.SetTitle(windowTitle(s, a.fps, cfg.Graphics.ShowFPS))
	})

	sources := a.shaderSources()
	planCfg := plannerConfig(cfg)
	a.renderer, err = scene.NewRenderer(gpu.GL{}, sources, a.model, a.textures, planCfg)
	if err != nil {
		a.window.SetTitle(appName + ": shader error")
		a.Close()
		return nil, fmt.Errorf("building scene pipeline: %w", err)
	}
	a.planner = scene.NewPlanner(a.model, clockFrom(cfg), planCfg)

	if cfg.Shaders.Watch {
		a.watcher, err = assets.Watch(cfg.Shaders.Dir, ".vert", ".frag")
		if err != nil {
			// Hot reload is a convenience; run without it.
			a.log.Warn("shader watch disabled", zap.Error(err))
		}
	}

	a.log.Info("viewer initialized",
		zap.String("model", cfg.Scene.Model),
		zap.Int("items", len(a.model.Items)),
		zap.Int("textures", len(a.model.TexturePaths())))
	return a, nil
}

func (a *App) shaderSources() fs.FS {
	if a.cfg.Shaders.Dir != "" {
		a.log.Info("loading shaders from disk", zap.String("dir", a.cfg.Shaders.Dir))
		return os.DirFS(a.cfg.Shaders.Dir)
	}
	return shaders.FS
}

// Run drives frames until the window closes or Escape is pressed.
func (a *App) Run() error {
	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	var frameBudget time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	a.log.Info("starting frame loop")

	for {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		// 1. Process input
		quit := a.input.Update()
		ww, wh := a.window.GetSize()
		act := applyInput(a.camera, a.input.Events(), ww, wh)
		if quit || act.quit {
			break
		}

		// 2. Frame boundary work
		a.reloadShaders()
		a.textures.Poll()

		// 3. Plan and render
		dw, dh := a.window.DrawableSize()
		frame := a.planner.Plan(scene.FrameInput{
			Width:     dw,
			Height:    dh,
			ElapsedMs: float64(frameStart.Sub(start)) / float64(time.Millisecond),
			Camera:    a.camera,
		})
		a.renderer.Execute(&frame)

		if act.screenshot {
			a.screenshot(frame.Width, frame.Height)
		}

		// 4. Present (swap buffers)
		a.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.fps = frameCount
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			if a.cfg.Graphics.ShowFPS {
				a.window.SetTitle(windowTitle(a.status, a.fps, true))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// reloadShaders rebuilds programs whose sources changed on disk. Failures
// keep the previous program and are already logged by the renderer.
func (a *App) reloadShaders() {
	if a.watcher == nil {
		return
	}
	seen := make(map[scene.ProgramKind]bool)
	for _, name := range a.watcher.Drain() {
		for _, kind := range scene.ProgramsUsing(name) {
			if !seen[kind] {
				seen[kind] = true
				_ = a.renderer.Reload(kind)
			}
		}
	}
}

func (a *App) screenshot(width, height int32) {
	pixels := debug.ReadDefaultFramebuffer(width, height)
	name, err := a.shots.CaptureFromPixels(pixels, int(width), int(height))
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

// Close releases everything in reverse order of creation.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.renderer != nil {
		a.renderer.Destroy()
	}
	if a.textures != nil {
		a.textures.Close()
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
	if a.assets != nil {
		a.assets.Close()
	}
}
