package entity

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/ecs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

func NewPlayerAt(w *ecs.World, prefab string, pos mgl64.Vec3, log *slog.Logger) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "player.yaml"
	}
	entity, err := BuildEntityWithLogger(w, prefab, log)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, pos, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}
