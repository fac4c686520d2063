// Package config provides YAML-based game configuration with embedded
// defaults.
package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/1siamBot/terrain-rts/engine/camera"
	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/math3d"
	"github.com/1siamBot/terrain-rts/engine/systems"
)

// Config contains the whole game configuration
type Config struct {
	Sim      SimConfig               `yaml:"sim"`
	Terrain  TerrainConfig           `yaml:"terrain"`
	Camera   camera.Config           `yaml:"camera"`
	Input    InputConfig             `yaml:"input"`
	Combat   CombatConfig            `yaml:"combat"`
	Clips    map[string]int          `yaml:"clips"`
	Units    map[string]UnitTemplate `yaml:"units"`
	Scenario []SpawnGroup            `yaml:"scenario"`
}

// SimConfig defines the simulation clock
type SimConfig struct {
	TickRate     float64 `yaml:"tick_rate"`
	AIInterval   float64 `yaml:"ai_interval"`
	MaxFrameTime float64 `yaml:"max_frame_time"`
	MaxUnits     int     `yaml:"max_units"`
}

// TerrainConfig defines the height field source
type TerrainConfig struct {
	Path        string  `yaml:"path"`
	HeightScale float64 `yaml:"height_scale"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
}

type InputConfig struct {
	MinDragArea float64 `yaml:"min_drag_area"`
}

// CombatConfig defines AI and attack resolution rules
type CombatConfig struct {
	FleeThreshold    float64 `yaml:"flee_threshold"`
	DeadTargetPolicy string  `yaml:"dead_target_policy"`
}

// UnitTemplate holds the stats shared by every unit spawned from it
type UnitTemplate struct {
	Dimensions      [3]float64 `yaml:"dimensions"`
	DimensionOffset [3]float64 `yaml:"dimension_offset"`
	OffsetY         float64    `yaml:"offset_y"`
	Scale           float64    `yaml:"scale"`
	HP              float64    `yaml:"hp"`
	AttackRadius    float64    `yaml:"attack_radius"`
	AttackDamage    float64    `yaml:"attack_damage"`
	AttackCooldown  float64    `yaml:"attack_cooldown"`
	MoveSpeed       float64    `yaml:"move_speed"`
}

// SpawnGroup places Count units of a template in a row along X
type SpawnGroup struct {
	Template string  `yaml:"template"`
	Team     string  `yaml:"team"`
	X        float64 `yaml:"x"`
	Z        float64 `yaml:"z"`
	Count    int     `yaml:"count"`
	Spacing  float64 `yaml:"spacing"`
}

// Validate checks the config for values the simulation cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim.tick_rate must be positive, got %v", c.Sim.TickRate))
	}
	if c.Sim.AIInterval <= 0 {
		errs = append(errs, fmt.Errorf("sim.ai_interval must be positive, got %v", c.Sim.AIInterval))
	}
	if c.Terrain.Path == "" && (c.Terrain.Width < 2 || c.Terrain.Height < 2) {
		errs = append(errs, fmt.Errorf("terrain extents %dx%d too small", c.Terrain.Width, c.Terrain.Height))
	}
	if _, err := systems.ParseDeadTargetPolicy(c.Combat.DeadTargetPolicy); err != nil {
		errs = append(errs, fmt.Errorf("combat: %w", err))
	}
	if _, err := c.ClipSet(); err != nil {
		errs = append(errs, err)
	}
	for i, g := range c.Scenario {
		if _, ok := c.Units[g.Template]; !ok {
			errs = append(errs, fmt.Errorf("scenario[%d]: unknown template %q", i, g.Template))
		}
		if _, err := core.ParseTeam(g.Team); err != nil {
			errs = append(errs, fmt.Errorf("scenario[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// ClipSet converts the clip table into frame counts
func (c *Config) ClipSet() (core.ClipSet, error) {
	cs := core.DefaultClips()
	names := make([]string, 0, len(c.Clips))
	for name := range c.Clips {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		clip, err := core.ParseClip(name)
		if err != nil {
			return nil, fmt.Errorf("clips: %w", err)
		}
		if n := c.Clips[name]; n <= 0 {
			return nil, fmt.Errorf("clips.%s: frame count must be positive, got %d", name, n)
		}
		cs[clip] = c.Clips[name]
	}
	return cs, nil
}

// Policy returns the parsed dead-target policy
func (c *Config) Policy() systems.DeadTargetPolicy {
	p, _ := systems.ParseDeadTargetPolicy(c.Combat.DeadTargetPolicy)
	return p
}

// Spawns expands the scenario into unit specs, in file order
func (c *Config) Spawns() ([]core.UnitSpec, error) {
	var specs []core.UnitSpec
	for i, g := range c.Scenario {
		tmpl, ok := c.Units[g.Template]
		if !ok {
			return nil, fmt.Errorf("scenario[%d]: unknown template %q", i, g.Template)
		}
		team, err := core.ParseTeam(g.Team)
		if err != nil {
			return nil, fmt.Errorf("scenario[%d]: %w", i, err)
		}
		count := g.Count
		if count <= 0 {
			count = 1
		}
		for n := 0; n < count; n++ {
			specs = append(specs, tmpl.Spec(team, math3d.V2(g.X+float64(n)*g.Spacing, g.Z)))
		}
	}
	return specs, nil
}

// Spec builds a unit spec from the template at a ground position
func (t UnitTemplate) Spec(team core.Team, pos math3d.Vec2) core.UnitSpec {
	return core.UnitSpec{
		Team:              team,
		Position:          pos,
		Scale:             t.Scale,
		Dimensions:        math3d.V3(t.Dimensions[0], t.Dimensions[1], t.Dimensions[2]),
		DimensionOffset:   math3d.V3(t.DimensionOffset[0], t.DimensionOffset[1], t.DimensionOffset[2]),
		OffsetY:           t.OffsetY,
		HP:                t.HP,
		AttackRadius:      t.AttackRadius,
		AttackDamage:      t.AttackDamage,
		AttackCooldownMax: t.AttackCooldown,
		MoveSpeed:         t.MoveSpeed,
	}
}
