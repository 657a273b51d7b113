// Package config handles installation configuration loading and management.
package config

// Config holds all installation settings.
type Config struct {
	Castle   CastleParams   `yaml:"castle"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Player   PlayerConfig   `yaml:"player"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CastleParams drives the procedural castle generator. It is a plain value
// struct: the UI mutates a copy and passes it to Generate on regeneration.
// All geometric parameters must be > 0; the generator does not defend against
// degenerate values.
type CastleParams struct {
	Seed int64 `yaml:"seed"`

	// WindowCount is the number of wall segments (window slots). When 0 the
	// generator uses the number of supplied materials.
	WindowCount int `yaml:"window_count"`

	TowerCount  int     `yaml:"tower_count"`
	TowerRadius float32 `yaml:"tower_radius"`
	TowerHeight float32 `yaml:"tower_height"`

	WallHeight    float32 `yaml:"wall_height"`
	WallThickness float32 `yaml:"wall_thickness"`
	BaseRadius    float32 `yaml:"base_radius"`

	// Nominal window dimensions; per-window sizes derive from each
	// material's aspect ratio around the area windowWidth*windowHeight.
	WindowWidth  float32 `yaml:"window_width"`
	WindowHeight float32 `yaml:"window_height"`

	CrenelationHeight float32 `yaml:"crenelation_height"`
	CrenelationCount  int     `yaml:"crenelation_count"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// PlayerConfig holds walkthrough movement tuning.
type PlayerConfig struct {
	MoveSpeed float32 `yaml:"move_speed"`
	Gravity   float32 `yaml:"gravity"`
	JumpSpeed float32 `yaml:"jump_speed"`
	// Height is the eye height the player stands at; Radius is the capsule radius.
	Height float32 `yaml:"height"`
	Radius float32 `yaml:"radius"`
	// MinColliderSize excludes meshes whose bounding-box diagonal is smaller
	// than this from the collision set.
	MinColliderSize  float32 `yaml:"min_collider_size"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the installation's reference values.
func Default() *Config {
	return &Config{
		Castle: CastleParams{
			Seed:              42,
			WindowCount:       0,
			TowerCount:        8,
			TowerRadius:       0.12,
			TowerHeight:       2.4,
			WallHeight:        2.0,
			WallThickness:     0.12,
			BaseRadius:        1.0,
			WindowWidth:       0.35,
			WindowHeight:      0.5,
			CrenelationHeight: 0.12,
			CrenelationCount:  3,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Player: PlayerConfig{
			MoveSpeed:        1.6,
			Gravity:          9.8,
			JumpSpeed:        3.2,
			Height:           0.55,
			Radius:           0.18,
			MinColliderSize:  0.05,
			MouseSensitivity: 0.0025,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
