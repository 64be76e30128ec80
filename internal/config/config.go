// Package config handles viewer configuration loading and management.
//
// Only the ambient settings live here (window, asset source, logging,
// screenshots). The render configuration of the scene is compiled in; see
// scene.DefaultRenderConfig.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Model       ModelConfig      `yaml:"model"`
	Assets      AssetsConfig     `yaml:"assets"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// ModelConfig identifies the asset shown in the model slot.
type ModelConfig struct {
	URL string `yaml:"url"`
	// SpinRate drives the per-frame rotation hook, in radians per second.
	// Zero keeps the model static.
	SpinRate float32 `yaml:"spin_rate"`
}

// AssetsConfig controls how asset references are resolved.
type AssetsConfig struct {
	// Root is prepended to relative file references.
	Root        string        `yaml:"root"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	S3          S3Config      `yaml:"s3"`
}

// S3Config holds settings for s3:// references. Empty credentials fall back
// to the default AWS credential chain.
type S3Config struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "GLTF Model Viewer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Model: ModelConfig{
			URL: "6DOF.glb",
		},
		Assets: AssetsConfig{
			HTTPTimeout: 30 * time.Second,
			S3: S3Config{
				Region: "auto",
			},
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "orbitview",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
