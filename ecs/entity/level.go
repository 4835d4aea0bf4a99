package entity

import (
	"fmt"
	"log/slog"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// LoadLevelToWorld creates one solid entity per level object, plus a water
// entity when the level has one. It returns the object entities in file order.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, log *slog.Logger) ([]ecs.Entity, error) {
	if w == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world and level are required")
	}

	objects := make([]ecs.Entity, 0, len(lvl.Objects))
	for i, obj := range lvl.Objects {
		components := map[string]any{
			"world_object": map[string]any{"name": obj.Name},
			"transform":    prefabs.TransformComponentSpec{Position: obj.Center},
			"collider":     prefabs.ColliderComponentSpec{Extents: obj.Extents},
			"solid_tag":    nil,
		}
		if obj.Moving != nil {
			components["moving_platform"] = *obj.Moving
		}
		if obj.Disappearing != nil {
			components["disappearing_platform"] = *obj.Disappearing
		}
		if obj.Anchor {
			components["anchor"] = nil
		}

		name := fmt.Sprintf("%s#%d", lvl.Name, i)
		e, err := BuildEntityFromSpec(w, name, prefabs.EntityBuildSpec{Name: obj.Name, Components: components}, log)
		if err != nil {
			return nil, fmt.Errorf("load level: %w", err)
		}
		objects = append(objects, e)
	}

	if lvl.Water != nil {
		_, err := BuildEntityFromSpec(w, lvl.Name+"#water", prefabs.EntityBuildSpec{
			Name: "water",
			Components: map[string]any{
				"world_object": map[string]any{"name": "Water"},
				"transform":    prefabs.TransformComponentSpec{Position: lvl.Water.Center},
				"water":        lvl.Water.WaterComponentSpec,
			},
		}, log)
		if err != nil {
			return nil, fmt.Errorf("load level: %w", err)
		}
	}

	return objects, nil
}
