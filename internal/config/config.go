// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Scene      SceneConfig      `yaml:"scene"`
	Cycle      CycleConfig      `yaml:"cycle"`
	Sky        SkyConfig        `yaml:"sky"`
	Camera     CameraConfig     `yaml:"camera"`
	Shadow     ShadowConfig     `yaml:"shadow"`
	Reflection ReflectionConfig `yaml:"reflection"`
	Textures   TexturesConfig   `yaml:"textures"`
	Shaders    ShadersConfig    `yaml:"shaders"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	ShowFPS    bool `yaml:"show_fps"`
}

// SceneConfig names the model and how its objects are treated.
type SceneConfig struct {
	AssetDir      string   `yaml:"asset_dir"`
	Model         string   `yaml:"model"` // base name; <model>.obj and <model>.mtl are loaded
	SkyObject     string   `yaml:"sky_object"`
	WaterObject   string   `yaml:"water_object"`
	WaterMaterial string   `yaml:"water_material"`
	DoubleSided   []string `yaml:"double_sided"`
	NoShadow      []string `yaml:"no_shadow"`
}

// CycleConfig drives the day/night clock.
type CycleConfig struct {
	BaseOffset    float32 `yaml:"base_offset"`    // degrees at elapsed 0
	Rate          float32 `yaml:"rate"`           // degrees per millisecond
	LightDistance float32 `yaml:"light_distance"` // radius of the sun path
	LightTilt     float32 `yaml:"light_tilt"`     // +Z offset as a fraction of the radius
}

// SkyConfig holds the sky endpoint colours as 0-255 RGB.
type SkyConfig struct {
	Day   [3]uint8 `yaml:"day"`
	Night [3]uint8 `yaml:"night"`
}

// CameraConfig holds the orbit rig limits and speeds.
type CameraConfig struct {
	Distance    float32 `yaml:"distance"`
	Pitch       float32 `yaml:"pitch"` // radians
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	MinPitch    float32 `yaml:"min_pitch"`
	MaxPitch    float32 `yaml:"max_pitch"`
	DragSpeed   float32 `yaml:"drag_speed"` // radians per full-viewport drag
	ZoomSpeed   float32 `yaml:"zoom_speed"`
	PinchSpeed  float32 `yaml:"pinch_speed"`
	FovY        float32 `yaml:"fov_y"` // degrees
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
}

// ShadowConfig holds the shadow pass settings.
type ShadowConfig struct {
	Resolution int32   `yaml:"resolution"`
	Bias       float32 `yaml:"bias"`
	FovY       float32 `yaml:"fov_y"` // degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// ReflectionConfig holds the water reflection settings. A zero width or
// height makes the reflection target follow the viewport.
type ReflectionConfig struct {
	Enabled     bool     `yaml:"enabled"`
	Width       int32    `yaml:"width"`
	Height      int32    `yaml:"height"`
	ClipOffset  float32  `yaml:"clip_offset"`
	WaterHeight *float32 `yaml:"water_height,omitempty"`
	PeriodMs    float64  `yaml:"period_ms"`
}

// TexturesConfig holds the decode settings.
type TexturesConfig struct {
	MaxConcurrent int64 `yaml:"max_concurrent"`
	MaxSize       int   `yaml:"max_size"` // 0 keeps the source size
	Mipmaps       bool  `yaml:"mipmaps"`
}

// ShadersConfig enables hot reload from a source directory. Empty uses
// the embedded sources.
type ShadersConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			AssetDir:      "assets",
			Model:         "scene",
			SkyObject:     "Sky",
			WaterObject:   "Water",
			WaterMaterial: "Water",
			DoubleSided:   []string{"Trees", "Clouds"},
			NoShadow:      []string{"Clouds"},
		},
		Cycle: CycleConfig{
			BaseOffset:    60,
			Rate:          0.006,
			LightDistance: 40,
			LightTilt:     0.3,
		},
		Sky: SkyConfig{
			Day:   [3]uint8{183, 210, 245},
			Night: [3]uint8{22, 27, 47},
		},
		Camera: CameraConfig{
			Distance:    30,
			Pitch:       0.35,
			MinDistance: 5,
			MaxDistance: 120,
			MinPitch:    0.05,
			MaxPitch:    1.5,
			DragSpeed:   3.14159265,
			ZoomSpeed:   0.1,
			PinchSpeed:  2,
			FovY:        60,
			Near:        0.1,
			Far:         1000,
		},
		Shadow: ShadowConfig{
			Resolution: 2048,
			Bias:       0.006,
			FovY:       120,
			Near:       1,
			Far:        200,
		},
		Reflection: ReflectionConfig{
			Enabled:    true,
			Width:      1024,
			Height:     512,
			ClipOffset: 0.05,
			PeriodMs:   20000,
		},
		Textures: TexturesConfig{
			MaxConcurrent: 4,
			MaxSize:       2048,
			Mipmaps:       true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}
