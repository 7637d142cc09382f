package config

// EngineConfig is the root config for engine.toml
type EngineConfig struct {
	Display DisplayConfig `toml:"display"`
	Scenes  ScenesConfig  `toml:"scenes"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

type DisplayConfig struct {
	Title        string `toml:"title"`
	ScreenWidth  int    `toml:"width"`
	ScreenHeight int    `toml:"height"`
	Scale        int    `toml:"scale"`
	TPS          int    `toml:"tps"` // fixed updates per second; dt = 1/TPS
}

type ScenesConfig struct {
	Initial    string   `toml:"initial"`
	FadeFrames int      `toml:"fade_frames"`
	Layouts    []string `toml:"layouts"` // names under scenes/, without extension
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
}

// DT returns the fixed update step in seconds.
func (d DisplayConfig) DT() float64 {
	if d.TPS <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(d.TPS)
}

func defaults() *EngineConfig {
	return &EngineConfig{
		Display: DisplayConfig{
			Title:        "scenekit",
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			TPS:          60,
		},
		Scenes: ScenesConfig{
			Initial:    "title",
			FadeFrames: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Address: ":9090",
		},
	}
}
