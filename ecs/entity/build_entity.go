package entity

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/effects"
	"github.com/milk9111/platformer/locomotion"
	"github.com/milk9111/platformer/logger"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/world"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Log        *slog.Logger
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":            addPlayerTag,
	"camera_tag":            addCameraTag,
	"solid_tag":             addSolidTag,
	"world_object":          addWorldObject,
	"player":                addPlayer,
	"transform":             addTransform,
	"collider":              addCollider,
	"input":                 addInput,
	"probe":                 addProbe,
	"locomotion":            addLocomotion,
	"camera":                addCamera,
	"moving_platform":       addMovingPlatform,
	"disappearing_platform": addDisappearingPlatform,
	"anchor":                addAnchor,
	"water":                 addWater,
}

// Builders later in the list read components added by earlier ones.
var componentBuildOrder = []string{
	"world_object",
	"transform",
	"collider",
	"player_tag",
	"camera_tag",
	"solid_tag",
	"player",
	"input",
	"probe",
	"locomotion",
	"camera",
	"moving_platform",
	"disappearing_platform",
	"anchor",
	"water",
}

var ErrMissingDependency = errors.New("build entity: missing dependency")

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityWithLogger(w, prefabPath, nil)
}

func BuildEntityWithLogger(w *ecs.World, prefabPath string, log *slog.Logger) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec, log)
}

// BuildEntityFromSpec builds an entity from an in-memory spec. The entity is
// destroyed again if any component fails to build.
func BuildEntityFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, log *slog.Logger) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	if log == nil {
		log = logger.L()
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Log: log}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	if len(remaining) > 0 {
		extra := make([]string, 0, len(remaining))
		for name := range remaining {
			extra = append(extra, name)
		}
		sort.Strings(extra)
		names = append(names, extra...)
	}

	for _, name := range names {
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Yaw = yaw
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addSolidTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SolidTagComponent.Kind(), &component.SolidTag{})
}

func addWorldObject(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[struct {
		Name string `yaml:"name"`
	}](raw)
	if err != nil {
		return fmt.Errorf("decode world object spec: %w", err)
	}
	if spec.Name == "" {
		spec.Name = world.DefaultObjectName
	}
	return ecs.Add(w, e, component.WorldObjectComponent.Kind(), &component.WorldObject{Name: spec.Name})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec := prefabs.DefaultPlayerSpec()
	if err := prefabs.DecodeComponentSpecInto[playerSpec](raw, &spec); err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	tuning := spec.Tuning()
	if err := tuning.Validate(); err != nil {
		return err
	}
	if spec.Mass <= 0 {
		return fmt.Errorf("player mass must be positive, got %v", spec.Mass)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Tuning: tuning,
		Mass:   spec.Mass,
	})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position.Vec3(),
		Yaw:      spec.Yaw,
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	ext := spec.Extents.Vec3()
	if ext.X() <= 0 || ext.Y() <= 0 || ext.Z() <= 0 {
		return fmt.Errorf("collider extents must be positive, got %v", ext)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Extents: ext})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

// addProbe leaves the probe itself to the probe system, which owns the ray caster.
func addProbe(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ProbeComponent.Kind(), &component.Probe{})
}

func addLocomotion(w *ecs.World, e ecs.Entity, _ any, ctx *buildContext) error {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("%w: locomotion needs player", ErrMissingDependency)
	}
	controller, err := locomotion.NewMovementController(player.Tuning, ctx.Log)
	if err != nil {
		return err
	}
	machine := locomotion.NewStateMachine()
	return ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{
		Machine:    machine,
		Controller: controller,
		State:      machine.State(),
		Facing:     controller.Facing(),
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	cam := NewCameraComponent(spec)
	return ecs.Add(w, e, component.CameraComponent.Kind(), &cam)
}

type movingPlatformSpec = prefabs.MovingPlatformComponentSpec

func addMovingPlatform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[movingPlatformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode moving platform spec: %w", err)
	}
	col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return fmt.Errorf("%w: moving_platform needs collider", ErrMissingDependency)
	}
	left, right := FixedTargets(spec.Left.Vec3(), spec.Right.Vec3(), col.Extents)
	return ecs.Add(w, e, component.MovingPlatformComponent.Kind(), &component.MovingPlatform{
		Left:    left,
		Right:   right,
		Speed:   spec.Speed,
		Heading: 1,
	})
}

// FixedTargets pulls both targets inward by the platform's half size along
// the travel axis so the platform's edges, not its centre, stop at them.
func FixedTargets(left, right, extents mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	axis := left.Sub(right)
	if axis.Len() == 0 {
		return left, right
	}
	axis = axis.Normalize()
	half := locomotion.Bounds{Extents: extents}.HalfExtentAlong(axis)
	if 2*half >= left.Sub(right).Len() {
		mid := left.Add(right).Mul(0.5)
		return mid, mid
	}
	return left.Sub(axis.Mul(half)), right.Add(axis.Mul(half))
}

type disappearingPlatformSpec = prefabs.DisappearingPlatformComponentSpec

func addDisappearingPlatform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[disappearingPlatformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode disappearing platform spec: %w", err)
	}
	if spec.DisappearRate <= 0 {
		return fmt.Errorf("disappear_rate must be positive, got %v", spec.DisappearRate)
	}
	if spec.Reappear && spec.ReappearRate <= 0 {
		return fmt.Errorf("reappear_rate must be positive, got %v", spec.ReappearRate)
	}
	return ecs.Add(w, e, component.DisappearingPlatformComponent.Kind(), &component.DisappearingPlatform{
		DisappearAfter: spec.DisappearAfter,
		DisappearRate:  spec.DisappearRate,
		Reappear:       spec.Reappear,
		ReappearRate:   spec.ReappearRate,
		ReappearDelay:  spec.ReappearDelay,
		Alpha:          1,
		Solid:          true,
	})
}

func addAnchor(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AnchorComponent.Kind(), &component.Anchor{})
}

type waterSpec = prefabs.WaterComponentSpec

func addWater(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[waterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode water spec: %w", err)
	}
	var center mgl64.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		center = t.Position
	}

	water := &component.Water{}
	if verts, normals := effects.Grid(center, spec.Width, spec.Depth, spec.Cols, spec.Rows); verts != nil {
		water.Wave, err = effects.NewWaveField(spec.Wave, center.Y(), verts, normals)
		if err != nil {
			return err
		}
	}
	if spec.Fish != nil && spec.Fish.Count > 0 {
		cfg := *spec.Fish
		cfg.Center = center
		cfg.Bounds = mgl64.Vec3{spec.Depth, 0, spec.Width}
		water.School, err = effects.NewSchool(cfg)
		if err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.WaterComponent.Kind(), water)
}
