package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagAssets     = flag.String("assets", "", "Directory holding the model and its textures")
	flagModel      = flag.String("model", "", "Model base name (<name>.obj and <name>.mtl)")
	flagShaders    = flag.String("shaders", "", "Load shaders from this directory and reload them on change")
	flagRate       = flag.Float64("rate", 0, "Day/night speed in degrees per millisecond")
	flagNoReflect  = flag.Bool("no-reflection", false, "Disable the water reflection pass")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Graphics.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagAssets != "" {
		cfg.Scene.AssetDir = *flagAssets
	}
	if *flagModel != "" {
		cfg.Scene.Model = *flagModel
	}
	if *flagShaders != "" {
		cfg.Shaders.Dir = *flagShaders
		cfg.Shaders.Watch = true
	}
	if *flagRate > 0 {
		cfg.Cycle.Rate = float32(*flagRate)
	}
	if *flagNoReflect {
		cfg.Reflection.Enabled = false
	}
}
