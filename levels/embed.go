package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/platformer/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Dir is checked before the embedded levels.
var Dir = "levels"

const DefaultLevel = "demo.yaml"

type Level struct {
	Name   string           `yaml:"name"`
	Spawn  prefabs.Vec3Spec `yaml:"spawn"`
	Player string           `yaml:"player"`
	Camera string           `yaml:"camera"`
	// KillY respawns the player once it falls below this height. Unset disables it.
	KillY   *float64 `yaml:"kill_y,omitempty"`
	Objects []Object `yaml:"objects"`
	Water   *Water   `yaml:"water,omitempty"`
}

// Object is a solid box. Moving, Disappearing and Anchor turn it into a platform.
type Object struct {
	Name         string                                     `yaml:"name"`
	Center       prefabs.Vec3Spec                           `yaml:"center"`
	Extents      prefabs.Vec3Spec                           `yaml:"extents"`
	Moving       *prefabs.MovingPlatformComponentSpec       `yaml:"moving,omitempty"`
	Disappearing *prefabs.DisappearingPlatformComponentSpec `yaml:"disappearing,omitempty"`
	Anchor       bool                                       `yaml:"anchor,omitempty"`
}

type Water struct {
	Center                     prefabs.Vec3Spec `yaml:"center"`
	prefabs.WaterComponentSpec `yaml:",inline"`
}

func LoadLevelFromFS(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join(Dir, clean))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	if lvl.Player == "" {
		lvl.Player = "player.yaml"
	}
	if lvl.Camera == "" {
		lvl.Camera = "camera.yaml"
	}
	return &lvl, nil
}

// Validate rejects boxes with non-positive extents.
func (l *Level) Validate() error {
	for i, o := range l.Objects {
		if o.Extents.X <= 0 || o.Extents.Y <= 0 || o.Extents.Z <= 0 {
			return fmt.Errorf("levels: object %d (%q) has non-positive extents", i, o.Name)
		}
		if o.Moving != nil && o.Moving.Speed < 0 {
			return fmt.Errorf("levels: object %d (%q) has negative speed", i, o.Name)
		}
	}
	return nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
