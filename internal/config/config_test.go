package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Castle.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Castle.Seed)
	}
	if cfg.Castle.BaseRadius != 1.0 {
		t.Errorf("expected base radius 1.0, got %f", cfg.Castle.BaseRadius)
	}
	if cfg.Castle.WindowWidth != 0.35 {
		t.Errorf("expected window width 0.35, got %f", cfg.Castle.WindowWidth)
	}
	if cfg.Castle.WindowHeight != 0.5 {
		t.Errorf("expected window height 0.5, got %f", cfg.Castle.WindowHeight)
	}
	if cfg.Castle.TowerCount < 1 {
		t.Errorf("tower count must be >= 1, got %d", cfg.Castle.TowerCount)
	}
	if cfg.Castle.CrenelationCount < 1 {
		t.Errorf("crenelation count must be >= 1, got %d", cfg.Castle.CrenelationCount)
	}

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Player.Gravity <= 0 {
		t.Errorf("expected positive gravity, got %f", cfg.Player.Gravity)
	}
	if cfg.Player.Height <= cfg.Player.Radius {
		t.Errorf("player height %f should exceed capsule radius %f", cfg.Player.Height, cfg.Player.Radius)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "vitrail.yaml")

	yamlContent := `
castle:
  seed: 7
  window_count: 6
  wall_height: 3.5
  base_radius: 2.0

graphics:
  width: 1920
  height: 1080
  fullscreen: true

player:
  move_speed: 2.5

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Castle.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Castle.Seed)
	}
	if cfg.Castle.WindowCount != 6 {
		t.Errorf("expected window count 6, got %d", cfg.Castle.WindowCount)
	}
	if cfg.Castle.WallHeight != 3.5 {
		t.Errorf("expected wall height 3.5, got %f", cfg.Castle.WallHeight)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen true")
	}
	if cfg.Player.MoveSpeed != 2.5 {
		t.Errorf("expected move speed 2.5, got %f", cfg.Player.MoveSpeed)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	// Values not in the file keep their defaults.
	if cfg.Castle.WindowWidth != 0.35 {
		t.Errorf("expected default window width 0.35, got %f", cfg.Castle.WindowWidth)
	}
	if cfg.Player.Gravity != 9.8 {
		t.Errorf("expected default gravity 9.8, got %f", cfg.Player.Gravity)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "vitrail.yaml")

	cfg := Default()
	cfg.Castle.Seed = 1234
	cfg.Castle.WindowCount = 9

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	reloaded := Default()
	if err := loadFromFile(reloaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if reloaded.Castle.Seed != 1234 {
		t.Errorf("expected seed 1234 after reload, got %d", reloaded.Castle.Seed)
	}
	if reloaded.Castle.WindowCount != 9 {
		t.Errorf("expected window count 9 after reload, got %d", reloaded.Castle.WindowCount)
	}
}
