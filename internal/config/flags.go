package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMesh       = flag.String("mesh", "", "Path to a Wavefront OBJ file")
	flagTexture    = flag.String("texture", "", "Path to a texture image")
	flagStyle      = flag.String("style", "", "Draw style: fill, line or point")
	flagNoReindex  = flag.Bool("no-reindex", false, "Upload per-corner data without deduplication")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
	if *flagMesh == "" && flag.NArg() > 0 {
		*flagMesh = flag.Arg(0)
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Mesh.Path = *flagMesh
	}
	if *flagTexture != "" {
		cfg.Mesh.Texture = *flagTexture
	}
	if *flagStyle != "" {
		cfg.Render.DrawStyle = *flagStyle
	}
	if *flagNoReindex {
		cfg.Mesh.Reindex = false
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
