package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/1siamBot/terrain-rts/engine/camera"
	"github.com/1siamBot/terrain-rts/engine/terrain"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// Default returns the hardcoded configuration the embedded YAML mirrors
func Default() Config {
	return Config{
		Sim: SimConfig{
			TickRate:     60,
			AIInterval:   0.5,
			MaxFrameTime: 0.25,
			MaxUnits:     1024,
		},
		Terrain: TerrainConfig{
			HeightScale: terrain.DefaultHeightScale,
			Width:       128,
			Height:      128,
		},
		Camera: camera.DefaultConfig(),
		Input:  InputConfig{MinDragArea: 64},
		Combat: CombatConfig{
			FleeThreshold:    0.25,
			DeadTargetPolicy: "overkill",
		},
		Clips: map[string]int{"idle": 60, "move": 24, "attack": 20, "die": 40},
		Units: map[string]UnitTemplate{
			"robot": {
				Dimensions:      [3]float64{1, 4, 1},
				DimensionOffset: [3]float64{0, 2, 0},
				Scale:           1,
				HP:              100,
				AttackRadius:    3,
				AttackDamage:    25,
				AttackCooldown:  1,
				MoveSpeed:       4,
			},
		},
	}
}

// Load loads the game configuration.
// Search order: path -> ~/.terrain-rts/game.yaml -> ./configs/game.yaml -> embedded default.
// The chosen file is layered over the embedded default, so keys it omits
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Embedded()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		return overlay(cfg, data, path)
	}

	for _, candidate := range []string{userConfigPath("game.yaml"), filepath.Join("configs", "game.yaml")} {
		if candidate == "" {
			continue
		}
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		return overlay(cfg, data, candidate)
	}

	return cfg, cfg.Validate()
}

// Embedded returns the embedded default configuration
func Embedded() Config {
	cfg := Default()
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return Default() // Fallback to hardcoded if embed fails
	}
	return cfg
}

func overlay(cfg Config, data []byte, name string) (Config, error) {
	base := make(map[string]UnitTemplate, len(cfg.Units))
	for k, v := range cfg.Units {
		base[k] = v
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", name, err)
	}
	if err := mergeUnits(&cfg, base, data); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", name, err)
	}
	return cfg, nil
}

// mergeUnits decodes each units entry of data over the template it
// replaces, so a file can override single keys of a known template.
// yaml decodes map values into fresh zero values otherwise.
func mergeUnits(cfg *Config, base map[string]UnitTemplate, data []byte) error {
	var doc struct {
		Units map[string]yaml.Node `yaml:"units"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for name, node := range doc.Units {
		tmpl, ok := base[name]
		if !ok {
			continue
		}
		if err := node.Decode(&tmpl); err != nil {
			return fmt.Errorf("units.%s: %w", name, err)
		}
		cfg.Units[name] = tmpl
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".terrain-rts", filename)
}
